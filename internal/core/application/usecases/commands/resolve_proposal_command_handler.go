package commands

import (
	"context"

	"parcel/internal/core/domain/model/actor"
	"parcel/internal/core/domain/model/request"
	"parcel/internal/core/domain/services"
	"parcel/internal/core/ports"
)

// ResolveProposalCommandHandler merges or discards a proposal. A merged
// proposal is re-priced against the trip.
type ResolveProposalCommandHandler struct {
	uowFactory UoWFactory
	identity   ports.IdentityProvider
	pricer     ports.Pricer
}

func NewResolveProposalCommandHandler(
	uowFactory UoWFactory,
	identity ports.IdentityProvider,
	pricer ports.Pricer,
) ResolveProposalCommandHandler {
	return ResolveProposalCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
		pricer:     pricer,
	}
}

func (h ResolveProposalCommandHandler) Handle(ctx context.Context, cmd ResolveProposalCommand) (*request.Request, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requests := uow.RequestRepository()
	req, err := requests.Get(ctx, cmd.RequestID())
	if err != nil {
		return nil, err
	}

	party, err := resolveRequestParty(ctx, h.identity, cmd.ActorID(), req)
	if err != nil {
		return nil, err
	}

	if cmd.Accept() {
		err = h.acceptProposal(ctx, uow, req, party)
	} else {
		err = req.RejectProposal(party)
	}
	if err != nil {
		return nil, err
	}

	if err = requests.Update(ctx, req); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return req, nil
}

func (h ResolveProposalCommandHandler) acceptProposal(
	ctx context.Context,
	trips TripRepoFactory,
	req *request.Request,
	party actor.Party,
) error {
	price := req.Price()
	if proposal, ok := req.PendingProposal(); ok {
		t, err := trips.TripRepository().Get(ctx, req.TripID())
		if err != nil {
			return err
		}
		price, err = h.pricer.Quote(services.PriceQuery{
			Route:      t.Route(),
			PricePerKg: t.PricePerKg(),
			Weight:     proposal.Weight(),
			ItemType:   req.Shipment().ItemType(),
			ItemSize:   req.Shipment().ItemSize(),
		})
		if err != nil {
			return err
		}
	}
	return req.AcceptProposal(party, price)
}
