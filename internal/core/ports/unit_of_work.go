package ports

import (
	"context"
)

type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork scopes repositories to one transaction. Events recorded by
// aggregates written through its repositories are appended to the outbox
// on Commit, inside the same transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	Commit(ctx context.Context) error

	Rollback(ctx context.Context) error

	TripRepository() TripRepository

	RequestRepository() RequestRepository

	GeneralOrderRepository() GeneralOrderRepository

	CapacityLedger() CapacityLedger

	EventOutbox() EventOutbox
}
