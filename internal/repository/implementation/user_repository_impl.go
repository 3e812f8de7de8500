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

type UserRepositoryImpl struct {
	gormRepository[model.User, entity.User]
}

func NewUserRepository(db *gorm.DB) contract.UserRepository {
	return &UserRepositoryImpl{gormRepository[model.User, entity.User]{
		db:     db,
		mapper: mapper.NewUserMapper(),
	}}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *entity.User) error {
	if user.Status == "" {
		user.Status = entity.UserStatusActive
	}
	return r.create(ctx, user)
}

// Update never rewrites created_at, profile edits arrive without it
func (r *UserRepositoryImpl) Update(ctx context.Context, user *entity.User) error {
	row := r.mapper.ToModel(user)
	err := r.db.WithContext(ctx).Model(row).
		Select("email", "password_hash", "full_name", "status", "updated_at").
		Updates(row).Error
	if err != nil {
		return err
	}
	found, err := r.findOne(ctx, []specification.Specification{specification.ByID{ID: user.Id}})
	if err != nil || found == nil {
		return err
	}
	*user = *found
	return nil
}

func (r *UserRepositoryImpl) DeleteUnscoped(ctx context.Context, id uuid.UUID) error {
	return r.purge(ctx, "id", id)
}

func (r *UserRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	return r.findOne(ctx, specs)
}
