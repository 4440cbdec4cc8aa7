package commands

import (
	"context"

	"parcel/internal/core/domain/model/actor"
	"parcel/internal/core/domain/model/request"
	"parcel/internal/core/ports"
)

type RejectRequestCommandHandler struct {
	uowFactory RequestUoWFactory
	identity   ports.IdentityProvider
}

func NewRejectRequestCommandHandler(uowFactory RequestUoWFactory, identity ports.IdentityProvider) RejectRequestCommandHandler {
	return RejectRequestCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
	}
}

func (h RejectRequestCommandHandler) Handle(ctx context.Context, cmd RejectRequestCommand) (*request.Request, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return mutateRequest(ctx, h.uowFactory, h.identity, cmd.requestActor,
		func(req *request.Request, p actor.Party) error {
			return req.Reject(p)
		})
}
