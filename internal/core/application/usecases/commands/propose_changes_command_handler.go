package commands

import (
	"context"

	"parcel/internal/core/domain/model/actor"
	"parcel/internal/core/domain/model/request"
	"parcel/internal/core/ports"
)

// ProposeChangesCommandHandler stores the sender's proposal, replacing any
// earlier one.
type ProposeChangesCommandHandler struct {
	uowFactory RequestUoWFactory
	identity   ports.IdentityProvider
}

func NewProposeChangesCommandHandler(uowFactory RequestUoWFactory, identity ports.IdentityProvider) ProposeChangesCommandHandler {
	return ProposeChangesCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
	}
}

func (h ProposeChangesCommandHandler) Handle(ctx context.Context, cmd ProposeChangesCommand) (*request.Request, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return mutateRequest(ctx, h.uowFactory, h.identity, cmd.requestActor,
		func(req *request.Request, p actor.Party) error {
			return req.Propose(p, cmd.Proposal())
		})
}
