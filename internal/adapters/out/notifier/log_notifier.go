// Package notifier delivers lifecycle events to the outside world. The
// only implementation writes them to a structured log, which downstream
// log shippers forward to the messaging service.
package notifier

import (
	"context"
	"log/slog"
	"sort"

	"parcel/internal/core/domain/model/event"
)

type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "notifier")}
}

func (n *LogNotifier) Notify(ctx context.Context, e event.Event) error {
	attrs := []any{
		"event_id", e.ID.String(),
		"type", string(e.Type),
		"aggregate_id", e.AggregateID.String(),
		"occurred_at", e.OccurredAt,
	}
	if !e.ActorID.IsZero() {
		attrs = append(attrs, "actor_id", e.ActorID.String())
	}

	keys := make([]string, 0, len(e.Attributes))
	for k := range e.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	group := make([]any, 0, len(keys)*2)
	for _, k := range keys {
		group = append(group, k, e.Attributes[k])
	}
	attrs = append(attrs, slog.Group("attributes", group...))

	n.logger.InfoContext(ctx, "Lifecycle event", attrs...)
	return nil
}
