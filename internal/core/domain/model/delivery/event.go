package delivery

import (
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// EventType names an entry of a delivery's milestone log.
type EventType int

const (
	EventTypeUnknown EventType = iota
	EventTypeAssigned
	EventTypeEnRouteToPickup
	EventTypeArrivedAtPickup
	EventTypePickedUp
	EventTypeArrivedAtDelivery
	EventTypeDelivered
	EventTypeCancelled
	EventTypeFailed
	EventTypeReassigned
	EventTypeLocationUpdated
)

var eventTypeStrings = map[EventType]string{
	EventTypeAssigned:          "ASSIGNED",
	EventTypeEnRouteToPickup:   "EN_ROUTE_TO_PICKUP",
	EventTypeArrivedAtPickup:   "ARRIVED_AT_PICKUP",
	EventTypePickedUp:          "PICKED_UP",
	EventTypeArrivedAtDelivery: "ARRIVED_AT_DELIVERY",
	EventTypeDelivered:         "DELIVERED",
	EventTypeCancelled:         "CANCELLED",
	EventTypeFailed:            "FAILED",
	EventTypeReassigned:        "REASSIGNED",
	EventTypeLocationUpdated:   "LOCATION_UPDATED",
}

func ParseEventType(s string) (EventType, error) {
	for t, str := range eventTypeStrings {
		if str == s {
			return t, nil
		}
	}
	return EventTypeUnknown, errs.NewValueIsInvalidErrorWithCause("eventType", fmt.Errorf("%q is not a delivery event type", s))
}

func (t EventType) Validate() error {
	if _, ok := eventTypeStrings[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("eventType", fmt.Errorf("%d is not a valid delivery event type", t))
	}
	return nil
}

func (t EventType) String() string {
	if str, ok := eventTypeStrings[t]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsMilestone reports whether customers are notified about this event.
func (t EventType) IsMilestone() bool {
	switch t {
	case EventTypeAssigned, EventTypePickedUp, EventTypeDelivered, EventTypeCancelled, EventTypeFailed:
		return true
	default:
		return false
	}
}

// IsCompletion reports whether the event closes the delivery.
func (t EventType) IsCompletion() bool {
	return t == EventTypeDelivered || t == EventTypeCancelled || t == EventTypeFailed
}

var ErrEventIsNotConstructed = errs.NewValueIsRequiredError("event must be created via NewEvent")

// Event is an immutable entry of the milestone log.
type Event struct {
	eventType  EventType
	location   kernel.Location
	notes      string
	occurredAt time.Time
	guard      guard.ConstructorGuard
}

func NewEvent(eventType EventType, location kernel.Location, notes string, occurredAt time.Time) (Event, error) {
	if err := eventType.Validate(); err != nil {
		return Event{}, err
	}
	if err := location.Validate(); err != nil {
		return Event{}, errs.NewValueIsRequiredErrorWithCause("location", err)
	}
	if occurredAt.IsZero() {
		return Event{}, errs.NewValueIsRequiredError("occurredAt")
	}

	return Event{
		eventType:  eventType,
		location:   location,
		notes:      notes,
		occurredAt: occurredAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (e Event) Validate() error {
	return e.guard.Validate(ErrEventIsNotConstructed)
}

func (e Event) Type() EventType {
	return e.eventType
}

func (e Event) Location() kernel.Location {
	return e.location
}

func (e Event) Notes() string {
	return e.notes
}

func (e Event) OccurredAt() time.Time {
	return e.occurredAt
}
