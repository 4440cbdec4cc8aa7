package ports

import (
	"context"

	"parcel/internal/core/domain/model/kernel"
)

// CapacityLedger owns the free capacity of trips.
//
// Reserve atomically decrements the trip's free capacity by weight and
// records a hold for requestID. It returns errs.InsufficientCapacityError
// when free capacity no longer covers weight; concurrent reservations on one
// trip never drive it below zero.
type CapacityLedger interface {
	Reserve(ctx context.Context, tripID, requestID kernel.UUID, weight kernel.Weight) error

	Held(ctx context.Context, tripID kernel.UUID) (kernel.Weight, error)
}
