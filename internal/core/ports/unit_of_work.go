package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each
// request/command. This ensures proper isolation between concurrent
// operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. It provides
// transaction control over the repositories it hands out; client code must
// explicitly manage the transaction lifecycle. Per-record serialization
// (no lost updates on the same job or location row) comes from running each
// mutation inside one of these transactions.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// JobRepository returns a JobRepository bound to the current transaction.
	JobRepository() JobRepository

	// UserRepository returns a UserRepository bound to the current transaction.
	UserRepository() UserRepository

	// LocationRepository returns a LocationRepository bound to the current
	// transaction.
	LocationRepository() LocationRepository
}
