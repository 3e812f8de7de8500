package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ByID struct {
	ID uuid.UUID
}

func (s ByID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

// ByIDs matches any of the ids. An empty list matches nothing.
type ByIDs struct {
	IDs []uuid.UUID
}

func (s ByIDs) Apply(db *gorm.DB) *gorm.DB {
	if len(s.IDs) == 0 {
		return db.Where("1 = 0")
	}
	return db.Where("id IN ?", s.IDs)
}

// sortable columns shared by topics, links and users
var sortable = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"title":      true,
	"url":        true,
	"email":      true,
}

func orderColumn(field string) string {
	if sortable[field] {
		return field
	}
	return "created_at"
}

// OrderBy sorts on a known column, anything else sorts on created_at
type OrderBy struct {
	Field string
	Desc  bool
}

func (s OrderBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Order(clause.OrderByColumn{
		Column: clause.Column{Name: orderColumn(s.Field)},
		Desc:   s.Desc,
	})
}

// Pagination with a zero Limit leaves the query unbounded
type Pagination struct {
	Limit  int
	Offset int
}

func (s Pagination) Apply(db *gorm.DB) *gorm.DB {
	if s.Limit > 0 {
		db = db.Limit(s.Limit)
	}
	if s.Offset > 0 {
		db = db.Offset(s.Offset)
	}
	return db
}
