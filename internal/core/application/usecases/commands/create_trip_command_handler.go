package commands

import (
	"context"

	"parcel/internal/core/domain/model/trip"
)

// CreateTripCommandHandler persists a new trip with all capacity free.
type CreateTripCommandHandler struct {
	uowFactory TripUoWFactory
}

func NewCreateTripCommandHandler(uowFactory TripUoWFactory) CreateTripCommandHandler {
	return CreateTripCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h CreateTripCommandHandler) Handle(ctx context.Context, cmd CreateTripCommand) (*trip.Trip, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	t, err := trip.NewTrip(cmd.TripID(), cmd.TravelerID(), cmd.Route(), cmd.DepartureAt(), cmd.Capacity(), cmd.PricePerKg())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.TripRepository().Add(ctx, t); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return t, nil
}
