package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Topic struct {
	Id             uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name           string                      `gorm:"type:varchar(255);not null"`
	Description    string                      `gorm:"type:text"`
	ParentTopicIds datatypes.JSONSlice[string] `gorm:"type:jsonb;not null;default:'[]'"`
	UserId         uuid.UUID                   `gorm:"type:uuid;not null;index"`
	CreatedAt      time.Time                   `gorm:"autoCreateTime"`
	UpdatedAt      time.Time                   `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt              `gorm:"index"`
}

func (Topic) TableName() string {
	return "topics"
}
