package contract

import (
	"context"

	"digraph-be/internal/entity"
	"digraph-be/internal/repository/specification"

	"github.com/google/uuid"
)

// UserRepository stores accounts. FindOne returns nil, nil on a miss.
type UserRepository interface {
	// Create defaults an empty status to active
	Create(ctx context.Context, user *entity.User) error
	// Update writes the profile columns and reloads the row
	Update(ctx context.Context, user *entity.User) error
	// DeleteUnscoped removes the row for good, the email becomes free again
	DeleteUnscoped(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
}
