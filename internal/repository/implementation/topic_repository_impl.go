package implementation

import (
	"context"

	"digraph-be/internal/entity"
	"digraph-be/internal/mapper"
	"digraph-be/internal/model"
	"digraph-be/internal/repository/contract"
	"digraph-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TopicRepositoryImpl struct {
	gormRepository[model.Topic, entity.Topic]
}

func NewTopicRepository(db *gorm.DB) contract.TopicRepository {
	return &TopicRepositoryImpl{gormRepository[model.Topic, entity.Topic]{
		db:     db,
		mapper: mapper.NewTopicMapper(),
	}}
}

func (r *TopicRepositoryImpl) Create(ctx context.Context, topic *entity.Topic) error {
	return r.create(ctx, topic)
}

func (r *TopicRepositoryImpl) Update(ctx context.Context, topic *entity.Topic) error {
	return r.save(ctx, topic)
}

// Delete is soft
func (r *TopicRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Topic{}).Error
}

func (r *TopicRepositoryImpl) DeleteAllByUserIdUnscoped(ctx context.Context, userId uuid.UUID) error {
	return r.purge(ctx, "user_id", userId)
}

func (r *TopicRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Topic, error) {
	return r.findOne(ctx, specs)
}

func (r *TopicRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Topic, error) {
	return r.findAll(ctx, specs)
}

func (r *TopicRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return r.count(ctx, specs)
}
