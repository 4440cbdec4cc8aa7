package errs

import (
	"errors"
	"fmt"
)

var ErrInsufficientCapacity = errors.New("insufficient capacity")

// InsufficientCapacityError carries the requested and available amounts in grams.
// Available is -1 when the amount was not observed, e.g. after a lost
// compare-and-swap.
type InsufficientCapacityError struct {
	TripID    string
	Requested int64
	Available int64
}

func NewInsufficientCapacityError(tripID string, requested, available int64) *InsufficientCapacityError {
	return &InsufficientCapacityError{
		TripID:    tripID,
		Requested: requested,
		Available: available,
	}
}

func (e *InsufficientCapacityError) Error() string {
	if e.Available < 0 {
		return fmt.Sprintf("%s: trip %s cannot hold %dg", ErrInsufficientCapacity, e.TripID, e.Requested)
	}
	return fmt.Sprintf("%s: trip %s has %dg free, %dg requested",
		ErrInsufficientCapacity, e.TripID, e.Available, e.Requested)
}

func (e *InsufficientCapacityError) Unwrap() error {
	return ErrInsufficientCapacity
}
