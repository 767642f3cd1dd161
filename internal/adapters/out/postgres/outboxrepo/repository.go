package outboxrepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// GormOutboxRepository implements ports.OutboxRepository using GORM.
type GormOutboxRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Add stores events as unpublished messages. Adding an event whose ID is
// already stored is a no-op, so a retried commit cannot duplicate messages.
func (r *GormOutboxRepository) Add(ctx context.Context, events ...delivery.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	messages := make([]MessageDTO, 0, len(events))
	for _, event := range events {
		if err := event.ID.Validate(); err != nil {
			return errs.NewValueIsRequiredErrorWithCause("event.ID", err)
		}
		dto, err := fromDomain(event)
		if err != nil {
			return err
		}
		messages = append(messages, dto)
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&messages).
		Error
}

// GetUnpublished returns up to limit unpublished events, oldest first. Rows
// are locked with SKIP LOCKED so concurrent relays never pick the same batch.
func (r *GormOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]delivery.DomainEvent, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "+Inf")
	}

	var dtos []MessageDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("published_at IS NULL").
		Order("occurred_at, id").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	events := make([]delivery.DomainEvent, 0, len(dtos))
	for _, dto := range dtos {
		event, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, nil
}

// MarkPublished stamps the given messages with the publication time.
func (r *GormOutboxRepository) MarkPublished(ctx context.Context, ids ...kernel.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Google())
	}

	return r.db.WithContext(ctx).
		Model(&MessageDTO{}).
		Where("id IN ? AND published_at IS NULL", raw).
		Update("published_at", r.now()).
		Error
}
