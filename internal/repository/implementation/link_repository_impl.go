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

type LinkRepositoryImpl struct {
	gormRepository[model.Link, entity.Link]
}

func NewLinkRepository(db *gorm.DB) contract.LinkRepository {
	return &LinkRepositoryImpl{gormRepository[model.Link, entity.Link]{
		db:     db,
		mapper: mapper.NewLinkMapper(),
	}}
}

func (r *LinkRepositoryImpl) Create(ctx context.Context, link *entity.Link) error {
	return r.create(ctx, link)
}

func (r *LinkRepositoryImpl) Update(ctx context.Context, link *entity.Link) error {
	return r.save(ctx, link)
}

// UpdateTitle touches only the title column, the background fetch must not
// overwrite a concurrent edit of the parents
func (r *LinkRepositoryImpl) UpdateTitle(ctx context.Context, id uuid.UUID, title string) error {
	return r.db.WithContext(ctx).Model(&model.Link{}).Where("id = ?", id).Update("title", title).Error
}

func (r *LinkRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.purge(ctx, "id", id)
}

func (r *LinkRepositoryImpl) DeleteAllByUserIdUnscoped(ctx context.Context, userId uuid.UUID) error {
	return r.purge(ctx, "user_id", userId)
}

func (r *LinkRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Link, error) {
	return r.findOne(ctx, specs)
}

func (r *LinkRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Link, error) {
	return r.findAll(ctx, specs)
}

func (r *LinkRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return r.count(ctx, specs)
}
