package commands

import (
	"context"

	"parcel/internal/core/domain/model/actor"
	"parcel/internal/core/domain/model/request"
	"parcel/internal/core/ports"
)

// ReviewPaymentProofCommandHandler records an admin's payment decision.
// Approval also brings tracking up to payment_done.
type ReviewPaymentProofCommandHandler struct {
	uowFactory RequestUoWFactory
	identity   ports.IdentityProvider
}

func NewReviewPaymentProofCommandHandler(
	uowFactory RequestUoWFactory,
	identity ports.IdentityProvider,
) ReviewPaymentProofCommandHandler {
	return ReviewPaymentProofCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
	}
}

func (h ReviewPaymentProofCommandHandler) Handle(ctx context.Context, cmd ReviewPaymentProofCommand) (*request.Request, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return mutateRequest(ctx, h.uowFactory, h.identity, cmd.requestActor,
		func(req *request.Request, p actor.Party) error {
			return req.ReviewProof(p, cmd.Approve())
		})
}
