package entity

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserStatus string

const (
	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked"
)

// User owns topics and links. Emails are stored trimmed and lower-cased.
type User struct {
	Id           uuid.UUID
	Email        string
	PasswordHash *string // nil for accounts that cannot sign in with a password
	FullName     string
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PasswordMatches compares plain against the stored bcrypt hash
func (u *User) PasswordMatches(plain string) bool {
	if u.PasswordHash == nil {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(plain)) == nil
}

func (u *User) Blocked() bool {
	return u.Status == UserStatusBlocked
}
