package commands

import (
	"errors"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/guard"
)

var ErrReviewPaymentProofCommandIsNotConstructed = errors.New(
	"ReviewPaymentProofCommand must be created via NewReviewPaymentProofCommand constructor",
)

// ReviewPaymentProofCommand is an admin's decision on a submitted payment.
type ReviewPaymentProofCommand struct { //nolint:recvcheck //using for validation
	requestActor
	approve bool

	guard guard.ConstructorGuard
}

func NewReviewPaymentProofCommand(requestID, actorID kernel.UUID, approve bool) (ReviewPaymentProofCommand, error) {
	ra, err := newRequestActor(requestID, actorID)
	if err != nil {
		return ReviewPaymentProofCommand{}, err
	}
	return ReviewPaymentProofCommand{requestActor: ra, approve: approve, guard: guard.NewConstructorGuard()}, nil
}

func (c ReviewPaymentProofCommand) Validate() error {
	return c.guard.Validate(ErrReviewPaymentProofCommandIsNotConstructed)
}

func (c ReviewPaymentProofCommand) Approve() bool {
	return c.approve
}
