package unitofwork

import (
	"context"

	"gorm.io/gorm"
)

// RepositoryFactory hands out a UnitOfWork per request
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}

type gormFactory struct {
	db *gorm.DB
}

func NewRepositoryFactory(db *gorm.DB) RepositoryFactory {
	return gormFactory{db: db}
}

// NewUnitOfWork binds ctx to every query the unit runs, a cancelled request
// aborts its statements
func (f gormFactory) NewUnitOfWork(ctx context.Context) UnitOfWork {
	return NewUnitOfWork(f.db.WithContext(ctx))
}
