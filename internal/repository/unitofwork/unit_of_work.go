package unitofwork

import (
	"context"

	"digraph-be/internal/repository/contract"
)

// UnitOfWork groups the repositories over one connection. Between Begin and
// Commit/Rollback they share a transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	// Transaction runs fn inside a transaction and commits when it returns
	// nil. The UnitOfWork passed to fn must be used for every write.
	Transaction(ctx context.Context, fn func(tx UnitOfWork) error) error

	UserRepository() contract.UserRepository
	TopicRepository() contract.TopicRepository
	LinkRepository() contract.LinkRepository
}
