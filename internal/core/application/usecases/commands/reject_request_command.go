package commands

import (
	"errors"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/guard"
)

var ErrRejectRequestCommandIsNotConstructed = errors.New(
	"RejectRequestCommand must be created via NewRejectRequestCommand constructor",
)

// RejectRequestCommand is the traveler's terminal refusal of a pending request.
type RejectRequestCommand struct {
	requestActor

	guard guard.ConstructorGuard
}

func NewRejectRequestCommand(requestID, actorID kernel.UUID) (RejectRequestCommand, error) {
	ra, err := newRequestActor(requestID, actorID)
	if err != nil {
		return RejectRequestCommand{}, err
	}
	return RejectRequestCommand{requestActor: ra, guard: guard.NewConstructorGuard()}, nil
}

func (c RejectRequestCommand) Validate() error {
	return c.guard.Validate(ErrRejectRequestCommandIsNotConstructed)
}
