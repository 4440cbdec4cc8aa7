package ports

import (
	"context"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/trip"
)

type TripRepository interface {
	Add(ctx context.Context, aggregate *trip.Trip) error

	Get(ctx context.Context, id kernel.UUID) (*trip.Trip, error)
}
