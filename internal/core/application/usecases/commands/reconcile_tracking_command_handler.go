package commands

import (
	"context"
	"errors"

	"parcel/internal/core/domain/model/kernel"
)

// ReconcileTrackingCommandHandler finishes the second step of acceptance for
// requests where it failed. Every request is reconciled in its own
// transaction, so one conflicting request does not hold back the rest.
type ReconcileTrackingCommandHandler struct {
	uowFactory RequestUoWFactory
}

func NewReconcileTrackingCommandHandler(uowFactory RequestUoWFactory) ReconcileTrackingCommandHandler {
	return ReconcileTrackingCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns how many requests were moved to item_accepted. Per-request
// failures are joined into the returned error.
func (h ReconcileTrackingCommandHandler) Handle(ctx context.Context, cmd ReconcileTrackingCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	ids, err := h.awaiting(ctx, cmd.Limit())
	if err != nil {
		return 0, err
	}

	var (
		reconciled int
		failures   []error
	)
	for _, id := range ids {
		changed, recErr := h.reconcile(ctx, id)
		if recErr != nil {
			failures = append(failures, recErr)
			continue
		}
		if changed {
			reconciled++
		}
	}

	return reconciled, errors.Join(failures...)
}

func (h ReconcileTrackingCommandHandler) awaiting(ctx context.Context, limit int) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requests, err := uow.RequestRepository().GetAwaitingTrackingReconciliation(ctx, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(requests))
	for _, req := range requests {
		ids = append(ids, req.ID())
	}
	return ids, nil
}

func (h ReconcileTrackingCommandHandler) reconcile(ctx context.Context, id kernel.UUID) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requests := uow.RequestRepository()
	req, err := requests.Get(ctx, id)
	if err != nil {
		return false, err
	}

	changed, err := req.ReconcileTracking()
	if err != nil || !changed {
		return false, err
	}

	if err = requests.Update(ctx, req); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return true, nil
}
