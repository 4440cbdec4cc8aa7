package commands

import (
	"errors"

	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/guard"
)

var ErrRelayEventsCommandIsNotConstructed = errors.New(
	"RelayEventsCommand must be created via NewRelayEventsCommand constructor",
)

// RelayEventsCommand hands up to limit pending outbox events to the
// notifier.
type RelayEventsCommand struct { //nolint:recvcheck //using for validation
	limit int

	guard guard.ConstructorGuard
}

func NewRelayEventsCommand(limit int) (RelayEventsCommand, error) {
	if limit <= 0 {
		return RelayEventsCommand{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, maxBatch)
	}
	return RelayEventsCommand{limit: min(limit, maxBatch), guard: guard.NewConstructorGuard()}, nil
}

func (c RelayEventsCommand) Validate() error {
	return c.guard.Validate(ErrRelayEventsCommandIsNotConstructed)
}

func (c RelayEventsCommand) Limit() int {
	return c.limit
}
