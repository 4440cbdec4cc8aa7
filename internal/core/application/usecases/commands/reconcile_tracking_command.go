package commands

import (
	"errors"

	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/guard"
)

var ErrReconcileTrackingCommandIsNotConstructed = errors.New(
	"ReconcileTrackingCommand must be created via NewReconcileTrackingCommand constructor",
)

// ReconcileTrackingCommand processes up to limit accepted requests whose
// tracking is still at waiting_approval.
type ReconcileTrackingCommand struct { //nolint:recvcheck //using for validation
	limit int

	guard guard.ConstructorGuard
}

func NewReconcileTrackingCommand(limit int) (ReconcileTrackingCommand, error) {
	if limit <= 0 {
		return ReconcileTrackingCommand{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, maxBatch)
	}
	return ReconcileTrackingCommand{limit: min(limit, maxBatch), guard: guard.NewConstructorGuard()}, nil
}

func (c ReconcileTrackingCommand) Validate() error {
	return c.guard.Validate(ErrReconcileTrackingCommandIsNotConstructed)
}

func (c ReconcileTrackingCommand) Limit() int {
	return c.limit
}

const maxBatch = 500
