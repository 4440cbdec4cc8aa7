package jobs

import (
	"context"
	"log/slog"

	"parcel/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// EventRelayer hands pending outbox events to the notifier.
type EventRelayer interface {
	Handle(ctx context.Context, cmd commands.RelayEventsCommand) (int, error)
}

// EventRelayJob drains the event outbox on a schedule. Events that fail to
// deliver stay pending and are retried on the next tick.
type EventRelayJob struct {
	handler  EventRelayer
	schedule string
	batch    int
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewEventRelayJob(handler EventRelayer, schedule string, batch int, logger *slog.Logger) *EventRelayJob {
	return &EventRelayJob{
		handler:  handler,
		schedule: schedule,
		batch:    batch,
		// a slow notifier must not stack up overlapping relays
		cron:   cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger: logger.With("component", "event_relay_job"),
	}
}

func (j *EventRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Event relay job started", "schedule", j.schedule)
	return nil
}

func (j *EventRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Event relay job stopped")
}

func (j *EventRelayJob) run(ctx context.Context) int {
	cmd, err := commands.NewRelayEventsCommand(j.batch)
	if err != nil {
		j.logger.ErrorContext(ctx, "Invalid relay batch", "error", err)
		return 0
	}

	delivered, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Event relay failed", "error", err, "delivered", delivered)
	}
	return delivered
}
