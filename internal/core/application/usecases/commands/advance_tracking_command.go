package commands

import (
	"errors"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/request"
	"parcel/internal/pkg/guard"
)

var ErrAdvanceTrackingCommandIsNotConstructed = errors.New(
	"AdvanceTrackingCommand must be created via NewAdvanceTrackingCommand constructor",
)

// AdvanceTrackingCommand moves an accepted request one tracking stage
// forward.
type AdvanceTrackingCommand struct { //nolint:recvcheck //using for validation
	requestActor
	target request.Stage

	guard guard.ConstructorGuard
}

func NewAdvanceTrackingCommand(requestID, actorID kernel.UUID, target request.Stage) (AdvanceTrackingCommand, error) {
	ra, raErr := newRequestActor(requestID, actorID)
	if err := errors.Join(raErr, target.Validate()); err != nil {
		return AdvanceTrackingCommand{}, err
	}
	return AdvanceTrackingCommand{requestActor: ra, target: target, guard: guard.NewConstructorGuard()}, nil
}

func (c AdvanceTrackingCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceTrackingCommandIsNotConstructed)
}

func (c AdvanceTrackingCommand) Target() request.Stage {
	return c.target
}
