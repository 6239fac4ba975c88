package jobs

import (
	"context"
	"log/slog"
	"time"

	"bakehouse/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OverdueSweepJob periodically escalates stalled orders to Pending so they
// surface on the urgent work queue.
type OverdueSweepJob struct {
	handler   commands.EscalateOverdueOrdersCommandHandler
	schedule  string
	staleness time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewOverdueSweepJob creates the sweep job. The schedule is a six-field
// cron expression; staleness is the age after which an unscheduled order
// counts as stalled.
func NewOverdueSweepJob(
	handler commands.EscalateOverdueOrdersCommandHandler,
	schedule string,
	staleness time.Duration,
	logger *slog.Logger,
) *OverdueSweepJob {
	return &OverdueSweepJob{
		handler:   handler,
		schedule:  schedule,
		staleness: staleness,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "overdue_sweep_job"),
	}
}

// Start begins the sweep on its configured schedule.
func (j *OverdueSweepJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewEscalateOverdueOrdersCommand(j.staleness)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Overdue sweep misconfigured", "error", cmdErr)
			return
		}

		escalated, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Overdue sweep failed", "error", handleErr)
			return
		}
		if escalated > 0 {
			j.logger.InfoContext(ctx, "Overdue orders escalated", "count", escalated)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Overdue sweep job started", "schedule", j.schedule)
	return nil
}

// Stop stops the sweep job.
func (j *OverdueSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Overdue sweep job stopped")
}
