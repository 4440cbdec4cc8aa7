package commands

import (
	"context"

	"parcel/internal/core/domain/model/actor"
	"parcel/internal/core/domain/model/request"
	"parcel/internal/core/ports"
)

// SubmitPhotosCommandHandler runs the two compound photo operations:
// item photos for the sender and inspection photos for the traveler. Both
// are blocked until the payment is confirmed.
type SubmitPhotosCommandHandler struct {
	uowFactory RequestUoWFactory
	identity   ports.IdentityProvider
}

func NewSubmitPhotosCommandHandler(uowFactory RequestUoWFactory, identity ports.IdentityProvider) SubmitPhotosCommandHandler {
	return SubmitPhotosCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
	}
}

func (h SubmitPhotosCommandHandler) Handle(ctx context.Context, cmd SubmitPhotosCommand) (*request.Request, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return mutateRequest(ctx, h.uowFactory, h.identity, cmd.requestActor,
		func(req *request.Request, p actor.Party) error {
			if cmd.Kind() == InspectionPhotos {
				return req.SubmitInspectionAndAdvance(p, cmd.URLs())
			}
			return req.SubmitItemPhotosAndAdvance(p, cmd.URLs())
		})
}
