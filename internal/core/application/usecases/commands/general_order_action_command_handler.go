package commands

import (
	"context"
	"errors"

	"parcel/internal/core/domain/model/generalorder"
	"parcel/internal/core/ports"
)

var ErrUnknownGeneralOrderAction = errors.New("unknown general order action")

// GeneralOrderActionCommandHandler applies claim, cancel and complete.
// The write is conditional on the status that was read, so of two travelers
// claiming the same order only one commits; the other gets a conflict.
//
// Example:
//
//	handler := NewGeneralOrderActionCommandHandler(uowFactory, identity)
//	cmd, err := NewClaimGeneralOrderCommand(orderID, travelerID)
//	order, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrConflict) {
//	    // another traveler took it first; refresh the listing
//	}
type GeneralOrderActionCommandHandler struct {
	uowFactory GeneralOrderUoWFactory
	identity   ports.IdentityProvider
}

func NewGeneralOrderActionCommandHandler(
	uowFactory GeneralOrderUoWFactory,
	identity ports.IdentityProvider,
) GeneralOrderActionCommandHandler {
	return GeneralOrderActionCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
	}
}

func (h GeneralOrderActionCommandHandler) Handle(
	ctx context.Context,
	cmd GeneralOrderActionCommand,
) (*generalorder.GeneralOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.GeneralOrderRepository()
	order, err := orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	expected := order.Status()
	if err = h.apply(ctx, order, cmd); err != nil {
		return nil, err
	}

	if err = orders.Update(ctx, order, expected); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return order, nil
}

func (h GeneralOrderActionCommandHandler) apply(
	ctx context.Context,
	order *generalorder.GeneralOrder,
	cmd GeneralOrderActionCommand,
) error {
	if cmd.Action() == ClaimGeneralOrder {
		return order.Claim(cmd.ActorID())
	}

	isAdmin, err := h.identity.IsAdmin(ctx, cmd.ActorID())
	if err != nil {
		return err
	}
	party := order.Party(cmd.ActorID(), isAdmin)

	switch cmd.Action() {
	case CancelGeneralOrder:
		return order.Cancel(party)
	case CompleteGeneralOrder:
		return order.Complete(party)
	default:
		return ErrUnknownGeneralOrderAction
	}
}
