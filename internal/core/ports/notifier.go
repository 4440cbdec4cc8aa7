package ports

import (
	"context"

	"parcel/internal/core/domain/model/event"
)

// Notifier delivers lifecycle events to the parties involved.
type Notifier interface {
	Notify(ctx context.Context, e event.Event) error
}
