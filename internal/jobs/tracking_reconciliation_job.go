package jobs

import (
	"context"
	"log/slog"

	"parcel/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// TrackingReconciler finishes accepts whose tracking step did not commit.
type TrackingReconciler interface {
	Handle(ctx context.Context, cmd commands.ReconcileTrackingCommand) (int, error)
}

// TrackingReconciliationJob periodically moves accepted requests still in
// waiting_approval to item_accepted.
type TrackingReconciliationJob struct {
	handler  TrackingReconciler
	schedule string
	batch    int
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewTrackingReconciliationJob(
	handler TrackingReconciler,
	schedule string,
	batch int,
	logger *slog.Logger,
) *TrackingReconciliationJob {
	return &TrackingReconciliationJob{
		handler:  handler,
		schedule: schedule,
		batch:    batch,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "tracking_reconciliation_job"),
	}
}

func (j *TrackingReconciliationJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Tracking reconciliation job started", "schedule", j.schedule)
	return nil
}

func (j *TrackingReconciliationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Tracking reconciliation job stopped")
}

// run reports partial progress even when some requests failed.
func (j *TrackingReconciliationJob) run(ctx context.Context) int {
	cmd, err := commands.NewReconcileTrackingCommand(j.batch)
	if err != nil {
		j.logger.ErrorContext(ctx, "Invalid reconciliation batch", "error", err)
		return 0
	}

	reconciled, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Tracking reconciliation failed", "error", err, "reconciled", reconciled)
	}
	if reconciled > 0 {
		j.logger.InfoContext(ctx, "Tracking reconciled", "requests", reconciled)
	}
	return reconciled
}
