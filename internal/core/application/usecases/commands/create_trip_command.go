package commands

import (
	"errors"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/guard"
)

var ErrCreateTripCommandIsNotConstructed = errors.New(
	"CreateTripCommand must be created via NewCreateTripCommand constructor",
)

// CreateTripCommand announces a traveler's trip and its spare capacity.
//
// Example:
//
//	capacity, _ := kernel.WeightFromKilograms(8)
//	cmd, err := NewCreateTripCommand(kernel.NewUUID(), travelerID, "Germany", "Armenia",
//	    departure, capacity, pricePerKg)
//	if err != nil {
//	    return fmt.Errorf("invalid trip: %w", err)
//	}
//	trip, err := handler.Handle(ctx, cmd)
type CreateTripCommand struct { //nolint:recvcheck //using for validation
	tripID      kernel.UUID
	travelerID  kernel.UUID
	route       kernel.Route
	departureAt time.Time
	capacity    kernel.Weight
	pricePerKg  kernel.Money

	guard guard.ConstructorGuard
}

// NewCreateTripCommand validates identifiers, route and capacity.
func NewCreateTripCommand(
	tripID, travelerID kernel.UUID,
	origin, destination string,
	departureAt time.Time,
	capacity kernel.Weight,
	pricePerKg kernel.Money,
) (CreateTripCommand, error) {
	cmd := CreateTripCommand{
		departureAt: departureAt,
		pricePerKg:  pricePerKg,
		guard:       guard.NewConstructorGuard(),
	}

	route, routeErr := kernel.NewRoute(origin, destination)
	cmd.route = route

	if err := errors.Join(
		cmd.setTripID(tripID),
		cmd.setTravelerID(travelerID),
		routeErr,
		cmd.setCapacity(capacity),
	); err != nil {
		return CreateTripCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateTripCommand) Validate() error {
	return c.guard.Validate(ErrCreateTripCommandIsNotConstructed)
}

func (c CreateTripCommand) TripID() kernel.UUID      { return c.tripID }
func (c CreateTripCommand) TravelerID() kernel.UUID  { return c.travelerID }
func (c CreateTripCommand) Route() kernel.Route      { return c.route }
func (c CreateTripCommand) DepartureAt() time.Time   { return c.departureAt }
func (c CreateTripCommand) Capacity() kernel.Weight  { return c.capacity }
func (c CreateTripCommand) PricePerKg() kernel.Money { return c.pricePerKg }

func (c *CreateTripCommand) setTripID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.tripID = id
	return nil
}

func (c *CreateTripCommand) setTravelerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("traveler id", err)
	}
	c.travelerID = id
	return nil
}

func (c *CreateTripCommand) setCapacity(capacity kernel.Weight) error {
	if err := capacity.Validate(); err != nil {
		return err
	}
	if capacity.IsZero() {
		return errs.NewValueIsInvalidError("capacity")
	}
	c.capacity = capacity
	return nil
}
