package commands

import (
	"errors"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/guard"
)

var ErrCancelPendingRequestCommandIsNotConstructed = errors.New(
	"CancelPendingRequestCommand must be created via NewCancelPendingRequestCommand constructor",
)

// CancelPendingRequestCommand withdraws a request nobody accepted yet.
type CancelPendingRequestCommand struct {
	requestActor

	guard guard.ConstructorGuard
}

func NewCancelPendingRequestCommand(requestID, actorID kernel.UUID) (CancelPendingRequestCommand, error) {
	ra, err := newRequestActor(requestID, actorID)
	if err != nil {
		return CancelPendingRequestCommand{}, err
	}
	return CancelPendingRequestCommand{requestActor: ra, guard: guard.NewConstructorGuard()}, nil
}

func (c CancelPendingRequestCommand) Validate() error {
	return c.guard.Validate(ErrCancelPendingRequestCommandIsNotConstructed)
}
