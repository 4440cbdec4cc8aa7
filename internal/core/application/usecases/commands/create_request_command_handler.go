package commands

import (
	"context"

	"parcel/internal/core/domain/model/request"
	"parcel/internal/core/domain/services"
	"parcel/internal/core/ports"
)

// CreateRequestCommandHandler prices the shipment against the trip and
// stores a pending request. A referenced general order is moved to matched
// in the same transaction.
type CreateRequestCommandHandler struct {
	uowFactory UoWFactory
	pricer     ports.Pricer
}

func NewCreateRequestCommandHandler(uowFactory UoWFactory, pricer ports.Pricer) CreateRequestCommandHandler {
	return CreateRequestCommandHandler{
		uowFactory: uowFactory,
		pricer:     pricer,
	}
}

func (h CreateRequestCommandHandler) Handle(ctx context.Context, cmd CreateRequestCommand) (*request.Request, error) {
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

	t, err := uow.TripRepository().Get(ctx, cmd.TripID())
	if err != nil {
		return nil, err
	}

	shipment := cmd.Shipment()
	price, err := h.pricer.Quote(services.PriceQuery{
		Route:      t.Route(),
		PricePerKg: t.PricePerKg(),
		Weight:     shipment.Weight(),
		ItemType:   shipment.ItemType(),
		ItemSize:   shipment.ItemSize(),
	})
	if err != nil {
		return nil, err
	}

	req, err := request.NewRequest(cmd.RequestID(), t.ID(), cmd.SenderID(), t.TravelerID(), shipment, price, cmd.GeneralOrderID())
	if err != nil {
		return nil, err
	}

	if goID := cmd.GeneralOrderID(); goID != nil {
		orders := uow.GeneralOrderRepository()
		order, getErr := orders.Get(ctx, *goID)
		if getErr != nil {
			return nil, getErr
		}
		expected := order.Status()
		if err = order.Match(cmd.SenderID(), t.TravelerID()); err != nil {
			return nil, err
		}
		if err = orders.Update(ctx, order, expected); err != nil {
			return nil, err
		}
	}

	if err = uow.RequestRepository().Add(ctx, req); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return req, nil
}
