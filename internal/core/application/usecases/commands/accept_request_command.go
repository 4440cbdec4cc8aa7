package commands

import (
	"errors"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/guard"
)

var ErrAcceptRequestCommandIsNotConstructed = errors.New(
	"AcceptRequestCommand must be created via NewAcceptRequestCommand constructor",
)

// AcceptRequestCommand is the traveler's acceptance of a pending request.
//
// Example:
//
//	cmd, err := NewAcceptRequestCommand(requestID, travelerID)
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrInsufficientCapacity):
//	    // trip is full
//	case errors.Is(err, errs.ErrConflict):
//	    // someone changed the request meanwhile
//	case err != nil:
//	    return err
//	case result.TrackingWarning != nil:
//	    // accepted; tracking will be reconciled later
//	}
type AcceptRequestCommand struct {
	requestActor

	guard guard.ConstructorGuard
}

func NewAcceptRequestCommand(requestID, actorID kernel.UUID) (AcceptRequestCommand, error) {
	ra, err := newRequestActor(requestID, actorID)
	if err != nil {
		return AcceptRequestCommand{}, err
	}
	return AcceptRequestCommand{requestActor: ra, guard: guard.NewConstructorGuard()}, nil
}

func (c AcceptRequestCommand) Validate() error {
	return c.guard.Validate(ErrAcceptRequestCommandIsNotConstructed)
}
