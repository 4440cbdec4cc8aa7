package trip

import (
	"errors"
	"fmt"
	"time"

	"parcel/internal/core/domain/model/event"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"
)

var ErrTripIsNotConstructed = errors.New("Trip must be created via NewTrip constructor")

// Trip is owned by a single traveler. The invariant free <= capacity holds at
// all times and free never drops below zero.
type Trip struct {
	event.Recorder

	id          kernel.UUID
	travelerID  kernel.UUID
	route       kernel.Route
	departureAt time.Time
	capacity    kernel.Weight
	free        kernel.Weight
	pricePerKg  kernel.Money
	createdAt   time.Time

	isConstructed bool
}

// NewTrip creates a trip with all of its capacity free.
func NewTrip(
	id kernel.UUID,
	travelerID kernel.UUID,
	route kernel.Route,
	departureAt time.Time,
	capacity kernel.Weight,
	pricePerKg kernel.Money,
) (*Trip, error) {
	t := &Trip{
		pricePerKg:    pricePerKg,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		t.setID(id),
		t.setTraveler(travelerID),
		t.setRoute(route),
		t.setDepartureAt(departureAt),
		t.setCapacity(capacity),
	); err != nil {
		return nil, err
	}
	t.free = capacity

	t.Record(event.New(t.id, event.TripCreated, travelerID, map[string]string{
		"capacity": capacity.String(),
		"route":    route.String(),
	}))
	return t, nil
}

// RestoreTrip rebuilds a trip from storage without recording events.
func RestoreTrip(
	id kernel.UUID,
	travelerID kernel.UUID,
	route kernel.Route,
	departureAt time.Time,
	capacity kernel.Weight,
	free kernel.Weight,
	pricePerKg kernel.Money,
	createdAt time.Time,
) (*Trip, error) {
	t := &Trip{
		departureAt:   departureAt,
		pricePerKg:    pricePerKg,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		t.setID(id),
		t.setTraveler(travelerID),
		t.setRoute(route),
		t.setCapacity(capacity),
		free.Validate(),
	); err != nil {
		return nil, err
	}

	if !capacity.Covers(free) {
		return nil, errs.NewValueIsOutOfRangeError("free", free.Grams(), 0, capacity.Grams())
	}
	t.free = free

	return t, nil
}

func (t *Trip) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTripIsNotConstructed
	}
	return nil
}

func (t *Trip) ID() kernel.UUID               { return t.id }
func (t *Trip) TravelerID() kernel.UUID       { return t.travelerID }
func (t *Trip) Route() kernel.Route           { return t.route }
func (t *Trip) DepartureAt() time.Time        { return t.departureAt }
func (t *Trip) Capacity() kernel.Weight       { return t.capacity }
func (t *Trip) Free() kernel.Weight           { return t.free }
func (t *Trip) PricePerKg() kernel.Money      { return t.pricePerKg }
func (t *Trip) CreatedAt() time.Time          { return t.createdAt }
func (t *Trip) IsOwnedBy(id kernel.UUID) bool { return t.travelerID.IsEqual(id) }

// CanCarry reports whether the remaining free capacity covers weight.
func (t *Trip) CanCarry(weight kernel.Weight) bool {
	return t.free.Covers(weight)
}

// Reserve decrements free capacity by weight or returns an
// InsufficientCapacityError leaving the trip unchanged.
func (t *Trip) Reserve(weight kernel.Weight) error {
	if err := weight.Validate(); err != nil {
		return err
	}
	if !t.CanCarry(weight) {
		return errs.NewInsufficientCapacityError(t.id.String(), weight.Grams(), t.free.Grams())
	}

	free, err := t.free.Sub(weight)
	if err != nil {
		return err
	}
	t.free = free
	return nil
}

func (t *Trip) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Trip) setTraveler(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("traveler", err)
	}
	t.travelerID = id
	return nil
}

func (t *Trip) setRoute(route kernel.Route) error {
	if err := route.Validate(); err != nil {
		return err
	}
	t.route = route
	return nil
}

func (t *Trip) setDepartureAt(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("departure date")
	}
	t.departureAt = at.UTC()
	return nil
}

func (t *Trip) setCapacity(capacity kernel.Weight) error {
	if err := capacity.Validate(); err != nil {
		return err
	}
	if capacity.IsZero() {
		return errs.NewValueIsInvalidErrorWithCause("capacity", fmt.Errorf("%s is not greater than 0", capacity))
	}
	t.capacity = capacity
	return nil
}
