package commands

import (
	"context"

	"parcel/internal/core/domain/model/actor"
	"parcel/internal/core/domain/model/request"
	"parcel/internal/core/ports"
)

// AdvanceTrackingCommandHandler applies a single tracking step. The payment
// status is read fresh from storage inside the transaction.
//
// Example:
//
//	handler := NewAdvanceTrackingCommandHandler(uowFactory, identity)
//	cmd, err := NewAdvanceTrackingCommand(requestID, travelerID, request.TravelerOnTheWay)
//	req, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrInvalidTransition):
//	    // not the next stage, or the request is not accepted
//	case errors.Is(err, errs.ErrInspectionRequired):
//	    // inspection photos missing
//	case errors.Is(err, errs.ErrNotAuthorized):
//	    // a sender cannot report the traveler's progress
//	}
type AdvanceTrackingCommandHandler struct {
	uowFactory RequestUoWFactory
	identity   ports.IdentityProvider
}

func NewAdvanceTrackingCommandHandler(uowFactory RequestUoWFactory, identity ports.IdentityProvider) AdvanceTrackingCommandHandler {
	return AdvanceTrackingCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
	}
}

func (h AdvanceTrackingCommandHandler) Handle(ctx context.Context, cmd AdvanceTrackingCommand) (*request.Request, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return mutateRequest(ctx, h.uowFactory, h.identity, cmd.requestActor,
		func(req *request.Request, p actor.Party) error {
			return req.Advance(p, cmd.Target())
		})
}
