package contract

import (
	"context"

	"digraph-be/internal/entity"
	"digraph-be/internal/repository/specification"

	"github.com/google/uuid"
)

type TopicRepository interface {
	Create(ctx context.Context, topic *entity.Topic) error
	Update(ctx context.Context, topic *entity.Topic) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAllByUserIdUnscoped(ctx context.Context, userId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Topic, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Topic, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
