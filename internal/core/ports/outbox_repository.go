package ports

import (
	"context"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
)

// OutboxRepository stores domain events in the same transaction as the
// aggregate that raised them.
type OutboxRepository interface {
	// Add appends events to the outbox.
	Add(ctx context.Context, events ...delivery.DomainEvent) error

	// GetUnpublished returns at most limit events not yet published,
	// oldest first.
	GetUnpublished(ctx context.Context, limit int) ([]delivery.DomainEvent, error)

	// MarkPublished stamps the given events as published.
	MarkPublished(ctx context.Context, ids ...kernel.UUID) error
}
