package commands

import (
	"context"
	"errors"

	"parcel/internal/core/domain/model/actor"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/request"
	"parcel/internal/core/ports"
	"parcel/internal/pkg/errs"
)

// requestActor is embedded by every command that acts on one request on
// behalf of one authenticated actor.
type requestActor struct {
	requestID kernel.UUID
	actorID   kernel.UUID
}

func newRequestActor(requestID, actorID kernel.UUID) (requestActor, error) {
	var ra requestActor
	if err := errors.Join(ra.setRequestID(requestID), ra.setActorID(actorID)); err != nil {
		return requestActor{}, err
	}
	return ra, nil
}

// RequestID returns the request the command acts on.
func (c requestActor) RequestID() kernel.UUID {
	return c.requestID
}

// ActorID returns the authenticated actor issuing the command.
func (c requestActor) ActorID() kernel.UUID {
	return c.actorID
}

func (c *requestActor) setRequestID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("request id", err)
	}
	c.requestID = id
	return nil
}

func (c *requestActor) setActorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actor id", err)
	}
	c.actorID = id
	return nil
}

// resolveRequestParty resolves the actor's roles on req.
func resolveRequestParty(
	ctx context.Context,
	identity ports.IdentityProvider,
	actorID kernel.UUID,
	req *request.Request,
) (actor.Party, error) {
	isAdmin, err := identity.IsAdmin(ctx, actorID)
	if err != nil {
		return actor.Party{}, err
	}
	return actor.Resolve(actorID, isAdmin, req.SenderID(), req.TravelerID()), nil
}

// mutateRequest loads a request, resolves the acting party, applies mutate
// and writes the result back conditionally on the version it read, all in
// one transaction.
func mutateRequest(
	ctx context.Context,
	uowFactory RequestUoWFactory,
	identity ports.IdentityProvider,
	ids requestActor,
	mutate func(*request.Request, actor.Party) error,
) (*request.Request, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requests := uow.RequestRepository()
	req, err := requests.Get(ctx, ids.RequestID())
	if err != nil {
		return nil, err
	}

	party, err := resolveRequestParty(ctx, identity, ids.ActorID(), req)
	if err != nil {
		return nil, err
	}

	if err = mutate(req, party); err != nil {
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
