package commands

import (
	"errors"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/guard"
)

var ErrResolveProposalCommandIsNotConstructed = errors.New(
	"ResolveProposalCommand must be created via NewResolveProposalCommand constructor",
)

// ResolveProposalCommand is the traveler's decision on the pending proposal.
type ResolveProposalCommand struct { //nolint:recvcheck //using for validation
	requestActor
	accept bool

	guard guard.ConstructorGuard
}

func NewResolveProposalCommand(requestID, actorID kernel.UUID, accept bool) (ResolveProposalCommand, error) {
	ra, err := newRequestActor(requestID, actorID)
	if err != nil {
		return ResolveProposalCommand{}, err
	}
	return ResolveProposalCommand{requestActor: ra, accept: accept, guard: guard.NewConstructorGuard()}, nil
}

func (c ResolveProposalCommand) Validate() error {
	return c.guard.Validate(ErrResolveProposalCommandIsNotConstructed)
}

// Accept reports whether the proposal is merged (true) or discarded (false).
func (c ResolveProposalCommand) Accept() bool {
	return c.accept
}
