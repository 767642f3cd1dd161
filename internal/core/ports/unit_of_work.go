package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork for every command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
//
// Repositories returned by a unit of work are bound to its transaction and
// record every delivery they write. Commit drains the domain events buffered
// on those deliveries into the outbox before the transaction commits, so an
// event is stored if and only if its state change is.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit flushes pending domain events to the outbox and commits.
	// Returns an error if no transaction is active.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction. Calling it after Commit
	// is a no-op, so handlers may defer it unconditionally.
	Rollback(ctx context.Context) error

	CourierRepository() CourierRepository
	DeliveryRepository() DeliveryRepository
	OutboxRepository() OutboxRepository
}
