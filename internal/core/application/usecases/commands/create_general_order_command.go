package commands

import (
	"errors"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/guard"
)

var ErrCreateGeneralOrderCommandIsNotConstructed = errors.New(
	"CreateGeneralOrderCommand must be created via NewCreateGeneralOrderCommand constructor",
)

// CreateGeneralOrderCommand broadcasts a shipment that is not tied to any
// trip.
type CreateGeneralOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	senderID    kernel.UUID
	route       kernel.Route
	weight      kernel.Weight
	description string

	guard guard.ConstructorGuard
}

func NewCreateGeneralOrderCommand(
	orderID, senderID kernel.UUID,
	origin, destination string,
	weight kernel.Weight,
	description string,
) (CreateGeneralOrderCommand, error) {
	cmd := CreateGeneralOrderCommand{
		weight:      weight,
		description: description,
		guard:       guard.NewConstructorGuard(),
	}

	route, routeErr := kernel.NewRoute(origin, destination)
	cmd.route = route

	var weightErr error
	if weight.IsZero() {
		weightErr = errs.NewValueIsInvalidError("weight")
	}

	if err := errors.Join(
		requireID("order id", orderID, &cmd.orderID),
		requireID("sender id", senderID, &cmd.senderID),
		routeErr,
		weight.Validate(),
		weightErr,
	); err != nil {
		return CreateGeneralOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateGeneralOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateGeneralOrderCommandIsNotConstructed)
}

func (c CreateGeneralOrderCommand) OrderID() kernel.UUID  { return c.orderID }
func (c CreateGeneralOrderCommand) SenderID() kernel.UUID { return c.senderID }
func (c CreateGeneralOrderCommand) Route() kernel.Route   { return c.route }
func (c CreateGeneralOrderCommand) Weight() kernel.Weight { return c.weight }
func (c CreateGeneralOrderCommand) Description() string   { return c.description }
