package commands

import (
	"errors"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/request"
	"parcel/internal/pkg/guard"
)

var ErrSubmitPaymentProofCommandIsNotConstructed = errors.New(
	"SubmitPaymentProofCommand must be created via NewSubmitPaymentProofCommand constructor",
)

// SubmitPaymentProofCommand carries the sender's payment evidence.
type SubmitPaymentProofCommand struct { //nolint:recvcheck //using for validation
	requestActor
	proof request.PaymentProof

	guard guard.ConstructorGuard
}

func NewSubmitPaymentProofCommand(
	requestID, actorID kernel.UUID,
	method, proofURL string,
	amount kernel.Money,
) (SubmitPaymentProofCommand, error) {
	ra, raErr := newRequestActor(requestID, actorID)
	proof, proofErr := request.NewPaymentProof(method, proofURL, amount)
	if err := errors.Join(raErr, proofErr); err != nil {
		return SubmitPaymentProofCommand{}, err
	}

	return SubmitPaymentProofCommand{
		requestActor: ra,
		proof:        proof,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c SubmitPaymentProofCommand) Validate() error {
	return c.guard.Validate(ErrSubmitPaymentProofCommandIsNotConstructed)
}

func (c SubmitPaymentProofCommand) Proof() request.PaymentProof {
	return c.proof
}
