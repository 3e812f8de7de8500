package contract

import (
	"context"

	"digraph-be/internal/entity"
	"digraph-be/internal/repository/specification"

	"github.com/google/uuid"
)

type LinkRepository interface {
	Create(ctx context.Context, link *entity.Link) error
	Update(ctx context.Context, link *entity.Link) error
	UpdateTitle(ctx context.Context, id uuid.UUID, title string) error
	Delete(ctx context.Context, id uuid.UUID) error // Hard delete, frees the url for the user
	DeleteAllByUserIdUnscoped(ctx context.Context, userId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Link, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Link, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
