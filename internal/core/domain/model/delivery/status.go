package delivery

import (
	"fmt"
	"slices"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery.
//
// Status lifecycle:
//
//	ASSIGNED → EN_ROUTE_TO_PICKUP → ARRIVED_AT_PICKUP → IN_TRANSIT → ARRIVED_AT_DELIVERY → DELIVERED
//	    ↘ CANCELLED (from the first three)              ↘ FAILED (from the last two active states)
//
// DELIVERED, CANCELLED and FAILED are terminal.
type Status int

const (
	// StatusUnknown is the zero value and never valid on an aggregate.
	StatusUnknown Status = iota
	StatusAssigned
	StatusEnRouteToPickup
	StatusArrivedAtPickup
	StatusInTransit
	StatusArrivedAtDelivery
	StatusDelivered
	StatusCancelled
	StatusFailed
)

var statusStrings = map[Status]string{
	StatusAssigned:          "ASSIGNED",
	StatusEnRouteToPickup:   "EN_ROUTE_TO_PICKUP",
	StatusArrivedAtPickup:   "ARRIVED_AT_PICKUP",
	StatusInTransit:         "IN_TRANSIT",
	StatusArrivedAtDelivery: "ARRIVED_AT_DELIVERY",
	StatusDelivered:         "DELIVERED",
	StatusCancelled:         "CANCELLED",
	StatusFailed:            "FAILED",
}

// transitions is the delivery state machine: source status to allowed targets.
var transitions = map[Status][]Status{
	StatusAssigned:          {StatusEnRouteToPickup, StatusCancelled},
	StatusEnRouteToPickup:   {StatusArrivedAtPickup, StatusCancelled},
	StatusArrivedAtPickup:   {StatusInTransit, StatusCancelled},
	StatusInTransit:         {StatusArrivedAtDelivery, StatusFailed},
	StatusArrivedAtDelivery: {StatusDelivered, StatusFailed},
	StatusDelivered:         nil,
	StatusCancelled:         nil,
	StatusFailed:            nil,
}

// progressSteps is the position of each status on the happy path.
var progressSteps = map[Status]int{
	StatusAssigned:          0,
	StatusEnRouteToPickup:   1,
	StatusArrivedAtPickup:   2,
	StatusInTransit:         3,
	StatusArrivedAtDelivery: 4,
	StatusDelivered:         5,
}

const progressStepCount = 5

var statusMessages = map[Status]string{
	StatusAssigned:          "Delivery assigned and ready to start",
	StatusEnRouteToPickup:   "Delivery person is on the way to pickup location",
	StatusArrivedAtPickup:   "Delivery person has arrived at pickup location",
	StatusInTransit:         "Order picked up and on the way to you",
	StatusArrivedAtDelivery: "Delivery person has arrived at your location",
	StatusDelivered:         "Order delivered successfully",
	StatusCancelled:         "Delivery has been cancelled",
	StatusFailed:            "Delivery failed - please contact support",
}

func ParseStatus(s string) (Status, error) {
	for status, str := range statusStrings {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a delivery status", s))
}

// AllowedTransitions returns a copy of the targets reachable from s.
func AllowedTransitions(s Status) []Status {
	return slices.Clone(transitions[s])
}

func (s Status) Validate() error {
	if _, ok := statusStrings[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid delivery status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := statusStrings[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsActive reports whether the delivery is still in progress.
func (s Status) IsActive() bool {
	return s >= StatusAssigned && s <= StatusArrivedAtDelivery
}

// ActiveStatuses lists the in-progress statuses in lifecycle order.
func ActiveStatuses() []Status {
	return []Status{
		StatusAssigned,
		StatusEnRouteToPickup,
		StatusArrivedAtPickup,
		StatusInTransit,
		StatusArrivedAtDelivery,
	}
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled || s == StatusFailed
}

// CanBeCancelled is true until the goods have been picked up.
func (s Status) CanBeCancelled() bool {
	return s == StatusAssigned || s == StatusEnRouteToPickup || s == StatusArrivedAtPickup
}

func (s Status) CanTransitionTo(next Status) bool {
	return slices.Contains(transitions[s], next)
}

// Progress is the happy-path completion fraction of s in steps of 0.2. The
// second result is false for CANCELLED and FAILED, which have no position.
func (s Status) Progress() (float64, bool) {
	step, ok := progressSteps[s]
	if !ok {
		return 0, false
	}
	return float64(step) / progressStepCount, true
}

// Message is the customer-facing description of s.
func (s Status) Message() string {
	return statusMessages[s]
}

// EventType is the milestone recorded when entering s.
func (s Status) EventType() EventType {
	switch s {
	case StatusAssigned:
		return EventTypeAssigned
	case StatusEnRouteToPickup:
		return EventTypeEnRouteToPickup
	case StatusArrivedAtPickup:
		return EventTypeArrivedAtPickup
	case StatusInTransit:
		return EventTypePickedUp
	case StatusArrivedAtDelivery:
		return EventTypeArrivedAtDelivery
	case StatusDelivered:
		return EventTypeDelivered
	case StatusCancelled:
		return EventTypeCancelled
	case StatusFailed:
		return EventTypeFailed
	default:
		return EventTypeUnknown
	}
}
