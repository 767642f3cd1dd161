package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"dispatch/internal/core/application/usecases/commands"
)

type publishEventsHandler interface {
	Handle(ctx context.Context, cmd commands.PublishDomainEventsCommand) (int, error)
}

// OutboxRelayJob periodically hands stored domain events to the publisher.
type OutboxRelayJob struct {
	handler   publishEventsHandler
	batchSize int
	spec      string
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewOutboxRelayJob creates the relay. spec is a cron expression with a
// seconds field.
func NewOutboxRelayJob(handler publishEventsHandler, spec string, batchSize int, logger *slog.Logger) *OutboxRelayJob {
	return &OutboxRelayJob{
		handler:   handler,
		batchSize: batchSize,
		spec:      spec,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "outbox_relay_job"),
	}
}

// Start schedules the relay.
func (j *OutboxRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.spec, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Outbox relay job started", "schedule", j.spec, "batch_size", j.batchSize)
	return nil
}

// Run relays one batch.
func (j *OutboxRelayJob) Run(ctx context.Context) {
	cmd, err := commands.NewPublishDomainEventsCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay job misconfigured", "error", err)
		return
	}

	published, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay job failed", "published", published, "error", err)
		return
	}
	if published > 0 {
		j.logger.InfoContext(ctx, "Domain events published", "published", published)
	}
}

// Stop waits for a running batch to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Outbox relay job stopped")
}
