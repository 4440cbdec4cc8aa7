// Package postgres provides the GORM-based Unit of Work.
//
// A unit of work owns one database transaction. Repositories obtained from it
// while the transaction is open run inside it; repositories obtained before
// Begin use the plain connection.
//
// Aggregates written through the repositories are tracked. On Commit the
// events they recorded are appended to the outbox inside the same
// transaction, so an event exists if and only if its state change does.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	req, err := uow.RequestRepository().Get(ctx, id)
//	if err != nil {
//	    return err
//	}
//	if err = uow.CapacityLedger().Reserve(ctx, req.TripID(), req.ID(), weight); err != nil {
//	    return err
//	}
//	if err = uow.RequestRepository().Update(ctx, req); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each goroutine must use its own UnitOfWork.
package postgres

import (
	"context"

	"parcel/internal/adapters/out/postgres/generalorderrepo"
	"parcel/internal/adapters/out/postgres/outboxrepo"
	"parcel/internal/adapters/out/postgres/requestrepo"
	"parcel/internal/adapters/out/postgres/triprepo"
	"parcel/internal/core/domain/model/event"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/ports"

	"gorm.io/gorm"
)

// eventSource is implemented by aggregates that embed event.Recorder.
type eventSource interface {
	DomainEvents() []event.Event
	ClearDomainEvents()
}

// trackedAggregate is an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection
// pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create returns a fresh unit of work with no open transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one transaction and the aggregates written in
// it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin opens the transaction. Calling it again while one is open is a
// no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit appends the tracked aggregates' events to the outbox and commits.
// If either step fails the transaction is rolled back and the events stay
// on their aggregates.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	events := uow.pendingEvents()
	if err := outboxrepo.NewGormEventOutbox(uow.tx).Append(ctx, events...); err != nil {
		_ = uow.tx.Rollback()
		uow.tx = nil
		return err
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		return err
	}

	uow.clearEvents()
	return nil
}

// Rollback discards the transaction. It returns gorm.ErrInvalidTransaction
// when none is open, which callers deferring it after Commit ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) TripRepository() ports.TripRepository {
	return triprepo.NewGormTripRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) RequestRepository() ports.RequestRepository {
	return requestrepo.NewGormRequestRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) GeneralOrderRepository() ports.GeneralOrderRepository {
	return generalorderrepo.NewGormGeneralOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) CapacityLedger() ports.CapacityLedger {
	return triprepo.NewGormCapacityLedger(uow.conn())
}

func (uow *GormUnitOfWork) EventOutbox() ports.EventOutbox {
	return outboxrepo.NewGormEventOutbox(uow.conn())
}

// TrackAggregate registers an aggregate written through one of the
// repositories. Called by the repositories themselves.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// pendingEvents collects events once per aggregate even when it was
// written several times.
func (uow *GormUnitOfWork) pendingEvents() []event.Event {
	seen := make(map[any]struct{}, len(uow.trackedAggregates))
	var events []event.Event
	for _, tracked := range uow.trackedAggregates {
		source, ok := tracked.Aggregate.(eventSource)
		if !ok {
			continue
		}
		if _, dup := seen[tracked.Aggregate]; dup {
			continue
		}
		seen[tracked.Aggregate] = struct{}{}
		events = append(events, source.DomainEvents()...)
	}
	return events
}

func (uow *GormUnitOfWork) clearEvents() {
	for _, tracked := range uow.trackedAggregates {
		if source, ok := tracked.Aggregate.(eventSource); ok {
			source.ClearDomainEvents()
		}
	}
	uow.trackedAggregates = uow.trackedAggregates[:0]
}
