// Package jobs provides scheduled background tasks for the dispatch service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Schedules are cron expressions with a leading seconds field.
//
// # Available Jobs
//
// 1. OutboxRelayJob - publishes domain events stored by the unit of work, oldest first
// 2. OverdueWatchJob - logs a warning for every active delivery past its estimated arrival
//
// # Usage
//
//	relay := jobs.NewOutboxRelayJob(publishHandler, "*/5 * * * * *", 100, logger)
//	watch := jobs.NewOverdueWatchJob(overdueHandler, "0 * * * * *", logger)
//	jobManager := jobs.NewJobManager(relay, watch)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Job runs never panic or stop the schedule: failures are logged with an
// "error" attribute and the next tick tries again. A relay batch that fails
// half way keeps the published prefix marked, so events are retried from the
// first failure.
package jobs
