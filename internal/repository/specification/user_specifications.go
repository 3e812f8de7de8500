package specification

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByEmail matches addresses the way signup stores them, trimmed and
// case-insensitive
type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(s.Email)))
}

// UserOwnedBy restricts topics and links to a single owner. Unlike VisibleTo
// it excludes the shared root.
type UserOwnedBy struct {
	UserID uuid.UUID
}

func (s UserOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}
