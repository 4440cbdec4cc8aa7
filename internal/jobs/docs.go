// Package jobs provides scheduled background tasks for the parcel service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, seconds precision):
//
//  1. TrackingReconciliationJob moves accepted requests whose tracking step
//     failed from waiting_approval to item_accepted.
//  2. EventRelayJob hands lifecycle events from the outbox to the notifier.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(reconcileHandler, relayHandler, jobs.Schedules{
//		Reconcile: "*/30 * * * * *",
//		Relay:     "*/5 * * * * *",
//		Batch:     100,
//	}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Both jobs log failures and carry on; whatever was not processed stays
// eligible for the next tick. Failed job starts stop already running jobs.
package jobs
