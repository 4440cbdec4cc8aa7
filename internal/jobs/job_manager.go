package jobs

import (
	"fmt"
	"log/slog"
)

// Schedules holds the cron expressions (with seconds) of every job.
type Schedules struct {
	Reconcile string
	Relay     string
	Batch     int
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	reconciliationJob *TrackingReconciliationJob
	relayJob          *EventRelayJob
}

func NewJobManager(
	reconciler TrackingReconciler,
	relayer EventRelayer,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		reconciliationJob: NewTrackingReconciliationJob(reconciler, schedules.Reconcile, schedules.Batch, logger),
		relayJob:          NewEventRelayJob(relayer, schedules.Relay, schedules.Batch, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.reconciliationJob.Start(); err != nil {
		return fmt.Errorf("failed to start tracking reconciliation job: %w", err)
	}

	if err := jm.relayJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.reconciliationJob.Stop()
		return fmt.Errorf("failed to start event relay job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running ones to finish.
func (jm *JobManager) StopAll() {
	jm.relayJob.Stop()
	jm.reconciliationJob.Stop()
}
