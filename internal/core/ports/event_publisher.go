package ports

import (
	"context"

	"dispatch/internal/core/domain/model/delivery"
)

// EventPublisher hands domain events to the outside world. Publish may be
// called again for an event after a partial failure, so sinks should treat
// the event ID as an idempotency key.
type EventPublisher interface {
	Publish(ctx context.Context, event delivery.DomainEvent) error
}
