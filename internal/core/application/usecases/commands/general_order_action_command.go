package commands

import (
	"errors"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/guard"
)

var ErrGeneralOrderActionCommandIsNotConstructed = errors.New(
	"GeneralOrderActionCommand must be created via one of its constructors",
)

// GeneralOrderAction is what an actor does to a general order.
type GeneralOrderAction int

const (
	ClaimGeneralOrder GeneralOrderAction = iota + 1
	CancelGeneralOrder
	CompleteGeneralOrder
)

func (a GeneralOrderAction) String() string {
	switch a {
	case ClaimGeneralOrder:
		return "claim"
	case CancelGeneralOrder:
		return "cancel"
	case CompleteGeneralOrder:
		return "complete"
	default:
		return "unknown"
	}
}

// GeneralOrderActionCommand is a claim, cancel or complete on one general
// order.
type GeneralOrderActionCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID
	action  GeneralOrderAction

	guard guard.ConstructorGuard
}

// NewClaimGeneralOrderCommand lets travelerID take an unclaimed order.
func NewClaimGeneralOrderCommand(orderID, travelerID kernel.UUID) (GeneralOrderActionCommand, error) {
	return newGeneralOrderActionCommand(orderID, travelerID, ClaimGeneralOrder)
}

func NewCancelGeneralOrderCommand(orderID, actorID kernel.UUID) (GeneralOrderActionCommand, error) {
	return newGeneralOrderActionCommand(orderID, actorID, CancelGeneralOrder)
}

func NewCompleteGeneralOrderCommand(orderID, actorID kernel.UUID) (GeneralOrderActionCommand, error) {
	return newGeneralOrderActionCommand(orderID, actorID, CompleteGeneralOrder)
}

func newGeneralOrderActionCommand(
	orderID, actorID kernel.UUID,
	action GeneralOrderAction,
) (GeneralOrderActionCommand, error) {
	cmd := GeneralOrderActionCommand{action: action, guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		requireID("order id", orderID, &cmd.orderID),
		requireID("actor id", actorID, &cmd.actorID),
	); err != nil {
		return GeneralOrderActionCommand{}, err
	}
	return cmd, nil
}

func (c GeneralOrderActionCommand) Validate() error {
	return c.guard.Validate(ErrGeneralOrderActionCommandIsNotConstructed)
}

func (c GeneralOrderActionCommand) OrderID() kernel.UUID       { return c.orderID }
func (c GeneralOrderActionCommand) ActorID() kernel.UUID       { return c.actorID }
func (c GeneralOrderActionCommand) Action() GeneralOrderAction { return c.action }
