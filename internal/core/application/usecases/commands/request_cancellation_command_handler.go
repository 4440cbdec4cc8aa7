package commands

import (
	"context"

	"parcel/internal/core/domain/model/request"
	"parcel/internal/core/ports"
)

// CancellationResult reports what a cancellation vote did. Request is nil
// when the cancellation was finalized and the request deleted.
type CancellationResult struct {
	Outcome request.CancellationOutcome
	Request *request.Request
}

// RequestCancellationCommandHandler runs the two-party cancellation
// protocol. Both the first vote and the finalizing delete are written
// conditionally on the version read, so two parties voting at the same time
// cannot both record a first vote.
type RequestCancellationCommandHandler struct {
	uowFactory RequestUoWFactory
	identity   ports.IdentityProvider
}

func NewRequestCancellationCommandHandler(
	uowFactory RequestUoWFactory,
	identity ports.IdentityProvider,
) RequestCancellationCommandHandler {
	return RequestCancellationCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
	}
}

func (h RequestCancellationCommandHandler) Handle(
	ctx context.Context,
	cmd RequestCancellationCommand,
) (CancellationResult, error) {
	if err := cmd.Validate(); err != nil {
		return CancellationResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CancellationResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requests := uow.RequestRepository()
	req, err := requests.Get(ctx, cmd.RequestID())
	if err != nil {
		return CancellationResult{}, err
	}

	party, err := resolveRequestParty(ctx, h.identity, cmd.ActorID(), req)
	if err != nil {
		return CancellationResult{}, err
	}

	outcome, err := req.RequestCancellation(party)
	if err != nil {
		return CancellationResult{}, err
	}

	result := CancellationResult{Outcome: outcome}
	switch outcome {
	case request.CancellationFinalized:
		err = requests.Delete(ctx, req)
	default:
		err = requests.Update(ctx, req)
		result.Request = req
	}
	if err != nil {
		return CancellationResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CancellationResult{}, err
	}

	return result, nil
}
