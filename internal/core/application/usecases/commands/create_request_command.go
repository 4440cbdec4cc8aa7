package commands

import (
	"errors"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/domain/model/request"
	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/guard"
)

var ErrCreateRequestCommandIsNotConstructed = errors.New(
	"CreateRequestCommand must be created via NewCreateRequestCommand constructor",
)

// CreateRequestCommand asks a traveler to carry one item on one trip. When
// generalOrderID is set, the request fulfils that general order.
type CreateRequestCommand struct { //nolint:recvcheck //using for validation
	requestID      kernel.UUID
	tripID         kernel.UUID
	senderID       kernel.UUID
	shipment       request.Shipment
	generalOrderID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewCreateRequestCommand(
	requestID, tripID, senderID kernel.UUID,
	shipment request.Shipment,
	generalOrderID *kernel.UUID,
) (CreateRequestCommand, error) {
	cmd := CreateRequestCommand{
		shipment:       shipment,
		generalOrderID: generalOrderID,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		requireID("request id", requestID, &cmd.requestID),
		requireID("trip id", tripID, &cmd.tripID),
		requireID("sender id", senderID, &cmd.senderID),
		shipment.Weight().Validate(),
	); err != nil {
		return CreateRequestCommand{}, err
	}

	return cmd, nil
}

func (c CreateRequestCommand) Validate() error {
	return c.guard.Validate(ErrCreateRequestCommandIsNotConstructed)
}

func (c CreateRequestCommand) RequestID() kernel.UUID       { return c.requestID }
func (c CreateRequestCommand) TripID() kernel.UUID          { return c.tripID }
func (c CreateRequestCommand) SenderID() kernel.UUID        { return c.senderID }
func (c CreateRequestCommand) Shipment() request.Shipment   { return c.shipment }
func (c CreateRequestCommand) GeneralOrderID() *kernel.UUID { return c.generalOrderID }

func requireID(param string, id kernel.UUID, dst *kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(param, err)
	}
	*dst = id
	return nil
}
