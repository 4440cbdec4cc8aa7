package commands

import (
	"errors"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/guard"
)

var ErrRequestCancellationCommandIsNotConstructed = errors.New(
	"RequestCancellationCommand must be created via NewRequestCancellationCommand constructor",
)

// RequestCancellationCommand is one party's vote to cancel an accepted
// request. The request is deleted once both parties voted.
type RequestCancellationCommand struct {
	requestActor

	guard guard.ConstructorGuard
}

func NewRequestCancellationCommand(requestID, actorID kernel.UUID) (RequestCancellationCommand, error) {
	ra, err := newRequestActor(requestID, actorID)
	if err != nil {
		return RequestCancellationCommand{}, err
	}
	return RequestCancellationCommand{requestActor: ra, guard: guard.NewConstructorGuard()}, nil
}

func (c RequestCancellationCommand) Validate() error {
	return c.guard.Validate(ErrRequestCancellationCommandIsNotConstructed)
}
