package commands

import (
	"context"

	"parcel/internal/core/domain/model/generalorder"
)

type CreateGeneralOrderCommandHandler struct {
	uowFactory GeneralOrderUoWFactory
}

func NewCreateGeneralOrderCommandHandler(uowFactory GeneralOrderUoWFactory) CreateGeneralOrderCommandHandler {
	return CreateGeneralOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h CreateGeneralOrderCommandHandler) Handle(
	ctx context.Context,
	cmd CreateGeneralOrderCommand,
) (*generalorder.GeneralOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	order, err := generalorder.NewGeneralOrder(cmd.OrderID(), cmd.SenderID(), cmd.Route(), cmd.Weight(), cmd.Description())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.GeneralOrderRepository().Add(ctx, order); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return order, nil
}
