// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"parcel/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler asks only for the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	TripRepoFactory interface {
		TripRepository() ports.TripRepository
	}

	RequestRepoFactory interface {
		RequestRepository() ports.RequestRepository
	}

	GeneralOrderRepoFactory interface {
		GeneralOrderRepository() ports.GeneralOrderRepository
	}

	CapacityLedgerFactory interface {
		CapacityLedger() ports.CapacityLedger
	}

	EventOutboxFactory interface {
		EventOutbox() ports.EventOutbox
	}

	// TripUoW manages transactions for trip-only operations.
	TripUoW interface {
		TxManager
		TripRepoFactory
	}

	TripUoWFactory interface {
		Create() TripUoW
	}

	// RequestUoW manages transactions that touch a single request.
	RequestUoW interface {
		TxManager
		RequestRepoFactory
	}

	RequestUoWFactory interface {
		Create() RequestUoW
	}

	// GeneralOrderUoW manages transactions for general order operations.
	GeneralOrderUoW interface {
		TxManager
		GeneralOrderRepoFactory
	}

	GeneralOrderUoWFactory interface {
		Create() GeneralOrderUoW
	}

	// OutboxUoW manages transactions over the event outbox.
	OutboxUoW interface {
		TxManager
		EventOutboxFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}

	// UoW spans trips, requests, general orders and the capacity ledger.
	// Used by operations that must change several of them atomically, such
	// as accepting a request.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   req, err := uow.RequestRepository().Get(ctx, id)
	//   err = uow.CapacityLedger().Reserve(ctx, req.TripID(), req.ID(), weight)
	//   err = uow.RequestRepository().Update(ctx, req)
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		TripRepoFactory
		RequestRepoFactory
		GeneralOrderRepoFactory
		CapacityLedgerFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
