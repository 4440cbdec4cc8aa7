package commands

import (
	"errors"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/request"
	"parcel/internal/pkg/guard"
)

var ErrProposeChangesCommandIsNotConstructed = errors.New(
	"ProposeChangesCommand must be created via NewProposeChangesCommand constructor",
)

// ProposeChangesCommand carries a sender's revised weight and description
// for a pending request.
type ProposeChangesCommand struct { //nolint:recvcheck //using for validation
	requestActor
	proposal request.Proposal

	guard guard.ConstructorGuard
}

func NewProposeChangesCommand(
	requestID, actorID kernel.UUID,
	weight kernel.Weight,
	description string,
) (ProposeChangesCommand, error) {
	ra, raErr := newRequestActor(requestID, actorID)
	proposal, proposalErr := request.NewProposal(weight, description)
	if err := errors.Join(raErr, proposalErr); err != nil {
		return ProposeChangesCommand{}, err
	}

	return ProposeChangesCommand{
		requestActor: ra,
		proposal:     proposal,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c ProposeChangesCommand) Validate() error {
	return c.guard.Validate(ErrProposeChangesCommandIsNotConstructed)
}

func (c ProposeChangesCommand) Proposal() request.Proposal {
	return c.proposal
}
