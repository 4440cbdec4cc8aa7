package commands

import (
	"context"
	"errors"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/ports"
)

// RelayEventsCommandHandler drains the outbox. Delivery is at least once:
// an event is marked delivered only after the notifier accepted it, and a
// failed event stays pending for the next run.
type RelayEventsCommandHandler struct {
	uowFactory OutboxUoWFactory
	notifier   ports.Notifier
}

func NewRelayEventsCommandHandler(uowFactory OutboxUoWFactory, notifier ports.Notifier) RelayEventsCommandHandler {
	return RelayEventsCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle returns the number of events delivered.
func (h RelayEventsCommandHandler) Handle(ctx context.Context, cmd RelayEventsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.EventOutbox()
	pending, err := outbox.Pending(ctx, cmd.Limit())
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	var (
		delivered []kernel.UUID
		failures  []error
	)
	for _, e := range pending {
		if notifyErr := h.notifier.Notify(ctx, e); notifyErr != nil {
			failures = append(failures, notifyErr)
			continue
		}
		delivered = append(delivered, e.ID)
	}

	if len(delivered) > 0 {
		if err = outbox.MarkDelivered(ctx, delivered...); err != nil {
			return 0, err
		}
		if err = uow.Commit(ctx); err != nil {
			return 0, err
		}
	}

	return len(delivered), errors.Join(failures...)
}
