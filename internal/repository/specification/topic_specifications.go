package specification

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VisibleTo matches rows owned by the user plus the shared rows owned by
// nobody (the root topic).
type VisibleTo struct {
	UserID uuid.UUID
}

func (s VisibleTo) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id IN ?", []uuid.UUID{s.UserID, uuid.Nil})
}

// ChildOf matches rows whose parent_topic_ids contains ParentID
type ChildOf struct {
	ParentID uuid.UUID
}

func (s ChildOf) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("parent_topic_ids @> ?::jsonb", containsJSON(s.ParentID))
}

// ChildOfAny matches rows with at least one parent in ParentIDs. An empty
// list matches nothing.
type ChildOfAny struct {
	ParentIDs []uuid.UUID
}

func (s ChildOfAny) Apply(db *gorm.DB) *gorm.DB {
	if len(s.ParentIDs) == 0 {
		return db.Where("1 = 0")
	}
	clauses := make([]string, len(s.ParentIDs))
	args := make([]interface{}, len(s.ParentIDs))
	for i, id := range s.ParentIDs {
		clauses[i] = "parent_topic_ids @> ?::jsonb"
		args[i] = containsJSON(id)
	}
	return db.Where("("+strings.Join(clauses, " OR ")+")", args...)
}

func containsJSON(id uuid.UUID) string {
	b, _ := json.Marshal([]string{id.String()})
	return string(b)
}

func likePattern(phrase string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(phrase) + "%"
}

// ByName compares names case-insensitively
type ByName struct {
	Name string
}

func (s ByName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(name) = LOWER(?)", s.Name)
}
