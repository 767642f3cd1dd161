// Package outboxrepo stores delivery domain events in the outbox_messages
// table until the relay job publishes them.
package outboxrepo

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
)

// MessageDTO is one outbox row. PublishedAt stays NULL until the relay
// confirms delivery to the publisher.
type MessageDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name        string     `gorm:"type:varchar(64);not null"`
	AggregateID uuid.UUID  `gorm:"type:uuid;not null"`
	Payload     []byte     `gorm:"type:jsonb;not null"`
	OccurredAt  time.Time  `gorm:"not null"`
	PublishedAt *time.Time
}

func (MessageDTO) TableName() string {
	return "outbox_messages"
}

// payload is the JSON document kept in the payload column. Identifiers that
// do not apply to the event are omitted.
type payload struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	DeliveryID        string    `json:"deliveryId"`
	TenantID          string    `json:"tenantId"`
	OrderID           string    `json:"orderId"`
	CourierID         string    `json:"courierId"`
	PreviousCourierID string    `json:"previousCourierId,omitempty"`
	FromStatus        string    `json:"fromStatus,omitempty"`
	ToStatus          string    `json:"toStatus,omitempty"`
	Reason            string    `json:"reason,omitempty"`
	OccurredAt        time.Time `json:"occurredAt"`
}

func fromDomain(event delivery.DomainEvent) (MessageDTO, error) {
	p := payload{
		ID:                event.ID.String(),
		Name:              event.Name,
		DeliveryID:        event.DeliveryID.String(),
		TenantID:          event.TenantID.String(),
		OrderID:           event.OrderID.String(),
		CourierID:         event.CourierID.String(),
		PreviousCourierID: optionalID(event.PreviousCourierID),
		FromStatus:        optionalStatus(event.FromStatus),
		ToStatus:          optionalStatus(event.ToStatus),
		Reason:            event.Reason,
		OccurredAt:        event.OccurredAt,
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return MessageDTO{}, err
	}

	return MessageDTO{
		ID:          event.ID.Google(),
		Name:        event.Name,
		AggregateID: event.DeliveryID.Google(),
		Payload:     raw,
		OccurredAt:  event.OccurredAt,
	}, nil
}

func toDomain(dto MessageDTO) (delivery.DomainEvent, error) {
	var p payload
	if err := json.Unmarshal(dto.Payload, &p); err != nil {
		return delivery.DomainEvent{}, err
	}

	event := delivery.DomainEvent{
		Name:       p.Name,
		Reason:     p.Reason,
		OccurredAt: p.OccurredAt.UTC(),
	}

	var err error
	if event.ID, err = kernel.FromGoogleUUID(dto.ID); err != nil {
		return delivery.DomainEvent{}, err
	}
	if event.DeliveryID, err = kernel.ParseUUID(p.DeliveryID); err != nil {
		return delivery.DomainEvent{}, err
	}
	if event.TenantID, err = kernel.ParseUUID(p.TenantID); err != nil {
		return delivery.DomainEvent{}, err
	}
	if event.OrderID, err = kernel.ParseUUID(p.OrderID); err != nil {
		return delivery.DomainEvent{}, err
	}
	if event.CourierID, err = kernel.ParseUUID(p.CourierID); err != nil {
		return delivery.DomainEvent{}, err
	}
	if p.PreviousCourierID != "" {
		if event.PreviousCourierID, err = kernel.ParseUUID(p.PreviousCourierID); err != nil {
			return delivery.DomainEvent{}, err
		}
	}
	if p.FromStatus != "" {
		if event.FromStatus, err = delivery.ParseStatus(p.FromStatus); err != nil {
			return delivery.DomainEvent{}, err
		}
	}
	if p.ToStatus != "" {
		if event.ToStatus, err = delivery.ParseStatus(p.ToStatus); err != nil {
			return delivery.DomainEvent{}, err
		}
	}

	return event, nil
}

func optionalID(id kernel.UUID) string {
	if id.Validate() != nil {
		return ""
	}
	return id.String()
}

func optionalStatus(s delivery.Status) string {
	if s.Validate() != nil {
		return ""
	}
	return s.String()
}
