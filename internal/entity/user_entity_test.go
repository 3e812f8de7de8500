package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUser_PasswordMatches(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)
	h := string(hash)

	tests := []struct {
		name  string
		user  User
		plain string
		want  bool
	}{
		{"match", User{PasswordHash: &h}, "hunter22", true},
		{"wrong password", User{PasswordHash: &h}, "hunter2", false},
		{"no password set", User{}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.PasswordMatches(tt.plain))
		})
	}
}

func TestUser_Blocked(t *testing.T) {
	assert.True(t, (&User{Status: UserStatusBlocked}).Blocked())
	assert.False(t, (&User{Status: UserStatusActive}).Blocked())
}
