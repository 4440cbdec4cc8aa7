package commands

import (
	"context"

	"parcel/internal/core/ports"
)

// CancelPendingRequestCommandHandler deletes a pending request on the
// sender's behalf.
type CancelPendingRequestCommandHandler struct {
	uowFactory RequestUoWFactory
	identity   ports.IdentityProvider
}

func NewCancelPendingRequestCommandHandler(
	uowFactory RequestUoWFactory,
	identity ports.IdentityProvider,
) CancelPendingRequestCommandHandler {
	return CancelPendingRequestCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
	}
}

func (h CancelPendingRequestCommandHandler) Handle(ctx context.Context, cmd CancelPendingRequestCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requests := uow.RequestRepository()
	req, err := requests.Get(ctx, cmd.RequestID())
	if err != nil {
		return err
	}

	party, err := resolveRequestParty(ctx, h.identity, cmd.ActorID(), req)
	if err != nil {
		return err
	}

	if err = req.CancelPending(party); err != nil {
		return err
	}

	if err = requests.Delete(ctx, req); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
