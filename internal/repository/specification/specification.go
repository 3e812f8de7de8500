package specification

import "gorm.io/gorm"

// Specification narrows a gorm query. Repositories apply them in order.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}

// All applies every spec it holds, in order
type All []Specification

func (s All) Apply(db *gorm.DB) *gorm.DB {
	for _, spec := range s {
		if spec != nil {
			db = spec.Apply(db)
		}
	}
	return db
}
