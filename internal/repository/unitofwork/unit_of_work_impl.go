package unitofwork

import (
	"context"
	"errors"

	"digraph-be/internal/repository/contract"
	"digraph-be/internal/repository/implementation"

	"gorm.io/gorm"
)

var (
	ErrTxActive   = errors.New("unitofwork: transaction already started")
	ErrTxInactive = errors.New("unitofwork: no transaction in progress")
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{db: db}
}

func (u *UnitOfWorkImpl) conn() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return ErrTxActive
	}
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	u.tx = tx
	return nil
}

func (u *UnitOfWorkImpl) Commit() error {
	return u.finish((*gorm.DB).Commit)
}

// Rollback after a successful Commit returns ErrTxInactive, callers may defer
// it unconditionally and ignore the result
func (u *UnitOfWorkImpl) Rollback() error {
	return u.finish((*gorm.DB).Rollback)
}

func (u *UnitOfWorkImpl) finish(end func(*gorm.DB) *gorm.DB) error {
	if u.tx == nil {
		return ErrTxInactive
	}
	tx := u.tx
	u.tx = nil
	return end(tx).Error
}

func (u *UnitOfWorkImpl) Transaction(ctx context.Context, fn func(tx UnitOfWork) error) error {
	if u.tx != nil {
		return ErrTxActive
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UnitOfWorkImpl{db: tx, tx: tx})
	})
}

func (u *UnitOfWorkImpl) UserRepository() contract.UserRepository {
	return implementation.NewUserRepository(u.conn())
}

func (u *UnitOfWorkImpl) TopicRepository() contract.TopicRepository {
	return implementation.NewTopicRepository(u.conn())
}

func (u *UnitOfWorkImpl) LinkRepository() contract.LinkRepository {
	return implementation.NewLinkRepository(u.conn())
}
