package commands

import (
	"context"

	"parcel/internal/core/domain/model/actor"
	"parcel/internal/core/domain/model/request"
	"parcel/internal/core/ports"
)

type SubmitPaymentProofCommandHandler struct {
	uowFactory RequestUoWFactory
	identity   ports.IdentityProvider
}

func NewSubmitPaymentProofCommandHandler(
	uowFactory RequestUoWFactory,
	identity ports.IdentityProvider,
) SubmitPaymentProofCommandHandler {
	return SubmitPaymentProofCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
	}
}

func (h SubmitPaymentProofCommandHandler) Handle(ctx context.Context, cmd SubmitPaymentProofCommand) (*request.Request, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return mutateRequest(ctx, h.uowFactory, h.identity, cmd.requestActor,
		func(req *request.Request, p actor.Party) error {
			return req.SubmitProof(p, cmd.Proof())
		})
}
