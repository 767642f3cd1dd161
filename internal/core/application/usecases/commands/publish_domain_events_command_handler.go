package commands

import (
	"context"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

// PublishDomainEventsCommandHandler relays outbox rows to the publisher in
// occurrence order. It stops at the first failing event; everything published
// before it is marked, so the next run resumes at the failed event.
type PublishDomainEventsCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
}

func NewPublishDomainEventsCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.EventPublisher,
) PublishDomainEventsCommandHandler {
	return PublishDomainEventsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle returns the number of events published.
func (h PublishDomainEventsCommandHandler) Handle(ctx context.Context, cmd PublishDomainEventsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.OutboxRepository()

	events, err := outbox.GetUnpublished(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, nil
	}

	published := make([]kernel.UUID, 0, len(events))
	var publishErr error
	for _, event := range events {
		if err := h.publisher.Publish(ctx, event); err != nil {
			publishErr = fmt.Errorf("publish %s %s: %w", event.Name, event.ID, err)
			break
		}
		published = append(published, event.ID)
	}

	if len(published) > 0 {
		if err = outbox.MarkPublished(ctx, published...); err != nil {
			return 0, err
		}
		if err = uow.Commit(ctx); err != nil {
			return 0, err
		}
	}

	return len(published), publishErr
}
