package commands

import (
	"context"
	"log/slog"

	"parcel/internal/core/domain/model/request"
	"parcel/internal/core/domain/services"
	"parcel/internal/core/ports"
)

// AcceptResult is the accepted request plus the outcome of the best-effort
// tracking step that follows acceptance.
type AcceptResult struct {
	Request *request.Request

	// TrackingWarning is set when the request was accepted but could not be
	// moved to item_accepted. The reconciliation job retries it.
	TrackingWarning error
}

// AcceptRequestCommandHandler accepts a request in two steps.
//
// The first step is atomic: the capacity ledger decrements the trip's free
// capacity with a compare-and-swap and the request flips to accepted,
// conditional on the version that was read. Either both happen or neither.
//
// The second step moves tracking to item_accepted in its own transaction.
// Its failure does not undo the acceptance.
//
// Example:
//
//	handler := NewAcceptRequestCommandHandler(uowFactory, identity, logger)
//	cmd, err := NewAcceptRequestCommand(requestID, travelerID)
//	res, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrInsufficientCapacity):
//	    // trip cannot carry the parcel any more
//	case errors.Is(err, errs.ErrConflict):
//	    // someone else changed the request, reload and retry
//	case err != nil:
//	    return err
//	case res.TrackingWarning != nil:
//	    // accepted; tracking still at waiting_approval until reconciled
//	}
type AcceptRequestCommandHandler struct {
	uowFactory UoWFactory
	identity   ports.IdentityProvider
	logger     *slog.Logger
}

// NewAcceptRequestCommandHandler creates the handler. The UoWFactory must
// expose the capacity ledger alongside the trip and request repositories.
func NewAcceptRequestCommandHandler(
	uowFactory UoWFactory,
	identity ports.IdentityProvider,
	logger *slog.Logger,
) AcceptRequestCommandHandler {
	return AcceptRequestCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
		logger:     logger.With("component", "AcceptRequestCommandHandler"),
	}
}

// Handle runs both steps. Only the traveler of the request's trip may accept,
// and only while the request is pending. An error from the first step means
// nothing changed; a TrackingWarning means the acceptance stands.
func (h AcceptRequestCommandHandler) Handle(ctx context.Context, cmd AcceptRequestCommand) (AcceptResult, error) {
	if err := cmd.Validate(); err != nil {
		return AcceptResult{}, err
	}

	req, err := h.accept(ctx, cmd)
	if err != nil {
		return AcceptResult{}, err
	}

	result := AcceptResult{Request: req}
	tracked, err := h.markItemAccepted(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "request accepted but tracking step failed",
			"request_id", req.ID().String(),
			"error", err,
		)
		result.TrackingWarning = err
	} else {
		result.Request = tracked
	}

	return result, nil
}

func (h AcceptRequestCommandHandler) accept(ctx context.Context, cmd AcceptRequestCommand) (*request.Request, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requests := uow.RequestRepository()
	req, err := requests.Get(ctx, cmd.RequestID())
	if err != nil {
		return nil, err
	}

	t, err := uow.TripRepository().Get(ctx, req.TripID())
	if err != nil {
		return nil, err
	}

	party, err := resolveRequestParty(ctx, h.identity, cmd.ActorID(), req)
	if err != nil {
		return nil, err
	}

	if err = services.NewAcceptor().Accept(party, t, req); err != nil {
		return nil, err
	}

	if err = uow.CapacityLedger().Reserve(ctx, t.ID(), req.ID(), req.Shipment().Weight()); err != nil {
		return nil, err
	}

	if err = requests.Update(ctx, req); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return req, nil
}

func (h AcceptRequestCommandHandler) markItemAccepted(
	ctx context.Context,
	accepted *request.Request,
) (*request.Request, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requests := uow.RequestRepository()
	req, err := requests.Get(ctx, accepted.ID())
	if err != nil {
		return nil, err
	}

	changed, err := req.ReconcileTracking()
	if err != nil {
		return nil, err
	}
	if !changed {
		return req, nil
	}

	if err = requests.Update(ctx, req); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return req, nil
}
