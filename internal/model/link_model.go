package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Link struct {
	Id             uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Url            string                      `gorm:"type:text;not null;uniqueIndex:idx_links_user_url,priority:2"`
	Title          string                      `gorm:"type:text"`
	ParentTopicIds datatypes.JSONSlice[string] `gorm:"type:jsonb;not null;default:'[]'"`
	UserId         uuid.UUID                   `gorm:"type:uuid;not null;uniqueIndex:idx_links_user_url,priority:1"`
	CreatedAt      time.Time                   `gorm:"autoCreateTime"`
	UpdatedAt      time.Time                   `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt              `gorm:"index"`
}

func (Link) TableName() string {
	return "links"
}
