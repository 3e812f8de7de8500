package implementation

import (
	"context"
	"errors"

	"digraph-be/internal/repository/specification"

	"gorm.io/gorm"
)

type rowMapper[M any, E any] interface {
	ToEntity(*M) *E
	ToModel(*E) *M
}

// gormRepository holds the queries every table shares. M is the gorm model,
// E the domain entity the mapper converts it to.
type gormRepository[M any, E any] struct {
	db     *gorm.DB
	mapper rowMapper[M, E]
}

func (r gormRepository[M, E]) query(ctx context.Context, specs []specification.Specification) *gorm.DB {
	return specification.All(specs).Apply(r.db.WithContext(ctx).Model(new(M)))
}

// create inserts the entity and copies back the generated columns
func (r gormRepository[M, E]) create(ctx context.Context, e *E) error {
	row := r.mapper.ToModel(e)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	*e = *r.mapper.ToEntity(row)
	return nil
}

func (r gormRepository[M, E]) save(ctx context.Context, e *E) error {
	row := r.mapper.ToModel(e)
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return err
	}
	*e = *r.mapper.ToEntity(row)
	return nil
}

// findOne returns nil, nil when nothing matches
func (r gormRepository[M, E]) findOne(ctx context.Context, specs []specification.Specification) (*E, error) {
	var row M
	if err := r.query(ctx, specs).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&row), nil
}

func (r gormRepository[M, E]) findAll(ctx context.Context, specs []specification.Specification) ([]*E, error) {
	var rows []*M
	if err := r.query(ctx, specs).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*E, len(rows))
	for i, row := range rows {
		out[i] = r.mapper.ToEntity(row)
	}
	return out, nil
}

func (r gormRepository[M, E]) count(ctx context.Context, specs []specification.Specification) (int64, error) {
	var n int64
	if err := r.query(ctx, specs).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// purge hard deletes every row matching the condition
func (r gormRepository[M, E]) purge(ctx context.Context, column string, value any) error {
	return r.db.WithContext(ctx).Unscoped().Where(column+" = ?", value).Delete(new(M)).Error
}
