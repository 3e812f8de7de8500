package entity

import (
	"time"

	"digraph-be/pkg/searchquery"

	"github.com/google/uuid"
)

type Topic struct {
	Id             uuid.UUID
	Name           string
	Description    string
	ParentTopicIds []uuid.UUID
	UserId         uuid.UUID // uuid.Nil for the shared root topic
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}

// HasParent reports whether id is one of the topic's parents
func (t *Topic) HasParent(id uuid.UUID) bool {
	for _, p := range t.ParentTopicIds {
		if p == id {
			return true
		}
	}
	return false
}

// RootTopicID is the shared "Everything" topic every tree hangs off
var RootTopicID = uuid.MustParse(searchquery.RootTopicID)

func (t *Topic) IsRoot() bool {
	return t.Id == RootTopicID
}
