package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserProfileResponse struct {
	Id        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type UpdateProfileRequest struct {
	FullName string `json:"full_name" validate:"required,max=255"`
	Email    string `json:"email" validate:"omitempty,email"`
}

type DeleteAccountRequest struct {
	Password string `json:"password" validate:"required"`
}
