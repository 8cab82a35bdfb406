package jobs

import (
	"context"
	"errors"
	"log/slog"

	"github.com/robfig/cron/v3"

	"foodorder/internal/core/application/usecases/commands"
)

// assignmentSchedule fires every five seconds. Frequent enough that a paid
// order does not sit in the kitchen with a free courier idling, infrequent
// enough to keep the dispatch query cheap.
const assignmentSchedule = "*/5 * * * * *"

// CourierAssignmentJob manages the scheduled dispatch of couriers to orders.
// Each run matches the oldest paid Ready order with a free courier.
type CourierAssignmentJob struct {
	handler commands.DispatchCourierCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewCourierAssignmentJob creates a new job for dispatching couriers.
// Uses DispatchCourierCommandHandler to process one assignment per run.
func NewCourierAssignmentJob(
	handler commands.DispatchCourierCommandHandler,
	logger *slog.Logger,
) *CourierAssignmentJob {
	return &CourierAssignmentJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "courier_assignment_job"),
	}
}

// Start begins the courier assignment job.
func (j *CourierAssignmentJob) Start() error {
	_, err := j.cron.AddFunc(assignmentSchedule, func() {
		ctx := context.Background()
		cmd := commands.NewDispatchCourierCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			// An empty queue and a busy fleet are expected idle outcomes.
			if !errors.Is(err, commands.ErrNoUnassignedOrderFound) &&
				!errors.Is(err, commands.ErrNoFreeCouriersFound) {
				j.logger.ErrorContext(ctx, "Courier assignment job failed", "error", err)
			}
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(),
		"Courier assignment job started (running every five seconds)")
	return nil
}

// Stop stops the courier assignment job.
func (j *CourierAssignmentJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Courier assignment job stopped")
}
