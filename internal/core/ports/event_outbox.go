package ports

import (
	"context"

	"parcel/internal/core/domain/model/event"
	"parcel/internal/core/domain/model/kernel"
)

// EventOutbox stores lifecycle events written in the same transaction as the
// change that produced them.
type EventOutbox interface {
	Append(ctx context.Context, events ...event.Event) error

	Pending(ctx context.Context, limit int) ([]event.Event, error)

	MarkDelivered(ctx context.Context, ids ...kernel.UUID) error
}
