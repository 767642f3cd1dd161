package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/delivery"
)

type overdueDeliveriesHandler interface {
	Handle(ctx context.Context, query queries.GetOverdueDeliveriesQuery) ([]delivery.TrackingUpdate, error)
}

// OverdueWatchJob reports active deliveries that missed their estimated
// arrival, one warning per delivery per run.
type OverdueWatchJob struct {
	handler overdueDeliveriesHandler
	spec    string
	now     func() time.Time
	cron    *cron.Cron
	logger  *slog.Logger
}

func NewOverdueWatchJob(handler overdueDeliveriesHandler, spec string, logger *slog.Logger) *OverdueWatchJob {
	return &OverdueWatchJob{
		handler: handler,
		spec:    spec,
		now:     time.Now,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "overdue_watch_job"),
	}
}

func (j *OverdueWatchJob) Start() error {
	if _, err := j.cron.AddFunc(j.spec, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Overdue watch job started", "schedule", j.spec)
	return nil
}

// Run checks once and returns how many deliveries are overdue.
func (j *OverdueWatchJob) Run(ctx context.Context) int {
	query, err := queries.NewGetOverdueDeliveriesQuery(j.now().UTC())
	if err != nil {
		j.logger.ErrorContext(ctx, "Overdue watch job failed", "error", err)
		return 0
	}

	overdue, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Overdue watch job failed", "error", err)
		return 0
	}

	for _, u := range overdue {
		j.logger.WarnContext(ctx, "Delivery overdue",
			"delivery_id", u.DeliveryID().String(),
			"courier_id", u.CourierID().String(),
			"status", u.Status().String(),
			"estimated_arrival", u.EstimatedArrival(),
			"late_by", u.TakenAt().Sub(u.EstimatedArrival()),
		)
	}
	return len(overdue)
}

func (j *OverdueWatchJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Overdue watch job stopped")
}
