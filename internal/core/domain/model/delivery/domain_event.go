package delivery

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// Names of the domain events a delivery emits.
const (
	DomainEventAssigned      = "delivery.assigned"
	DomainEventStatusChanged = "delivery.status_changed"
	DomainEventCompleted     = "delivery.completed"
	DomainEventReassigned    = "delivery.reassigned"
	DomainEventCancelled     = "delivery.cancelled"
)

// DomainEvent is an integration fact buffered on the aggregate until the unit
// of work persists it to the outbox. Fields that do not apply to Name are
// left zero.
type DomainEvent struct {
	ID                kernel.UUID
	Name              string
	DeliveryID        kernel.UUID
	TenantID          kernel.UUID
	OrderID           kernel.UUID
	CourierID         kernel.UUID
	PreviousCourierID kernel.UUID
	FromStatus        Status
	ToStatus          Status
	Reason            string
	OccurredAt        time.Time
}
