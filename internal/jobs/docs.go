// Package jobs provides scheduled background tasks for the order-to-stock
// engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic operations the engine needs.
//
// # Available Jobs
//
// 1. OverdueSweepJob - Periodically escalates stalled orders to Pending:
// pre-orders past their scheduled delivery time and live orders older than
// the staleness window.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(escalateHandler, schedule, staleness, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The sweep schedule comes from configuration; the default expression
// "0 */15 * * * *" runs every fifteen minutes. A sweep failure is logged
// and the next tick re-evaluates from scratch, so no retry state is kept.
package jobs
