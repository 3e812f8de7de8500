package entity

import (
	"time"

	"github.com/google/uuid"
)

type Link struct {
	Id             uuid.UUID
	Url            string
	Title          string
	ParentTopicIds []uuid.UUID
	UserId         uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}

func (l *Link) HasParent(id uuid.UUID) bool {
	for _, p := range l.ParentTopicIds {
		if p == id {
			return true
		}
	}
	return false
}
