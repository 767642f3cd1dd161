// Package events delivers relayed domain events to their sink.
package events

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/ports"
)

// LogPublisher writes every domain event as one structured log record. It
// stands in for a message broker.
type LogPublisher struct {
	logger *slog.Logger
}

var _ ports.EventPublisher = LogPublisher{}

func NewLogPublisher(logger *slog.Logger) LogPublisher {
	return LogPublisher{logger: logger.With("component", "event-publisher")}
}

func (p LogPublisher) Publish(ctx context.Context, event delivery.DomainEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	attrs := []slog.Attr{
		slog.String("event_id", event.ID.String()),
		slog.String("delivery_id", event.DeliveryID.String()),
		slog.String("tenant_id", event.TenantID.String()),
		slog.Time("occurred_at", event.OccurredAt),
	}
	if event.CourierID.Validate() == nil {
		attrs = append(attrs, slog.String("courier_id", event.CourierID.String()))
	}
	if event.PreviousCourierID.Validate() == nil {
		attrs = append(attrs, slog.String("previous_courier_id", event.PreviousCourierID.String()))
	}
	if event.FromStatus.Validate() == nil {
		attrs = append(attrs, slog.String("from_status", event.FromStatus.String()))
	}
	if event.ToStatus.Validate() == nil {
		attrs = append(attrs, slog.String("to_status", event.ToStatus.String()))
	}
	if event.Reason != "" {
		attrs = append(attrs, slog.String("reason", event.Reason))
	}

	p.logger.LogAttrs(ctx, slog.LevelInfo, event.Name, attrs...)
	return nil
}
