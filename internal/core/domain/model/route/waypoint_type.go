package route

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// WaypointType classifies a stop on a route.
type WaypointType int

const (
	WaypointTypeUnknown WaypointType = iota
	WaypointTypeStart
	WaypointTypeIntermediate
	WaypointTypeDelivery
	WaypointTypeEnd
)

var waypointTypeStrings = map[WaypointType]string{
	WaypointTypeStart:        "START",
	WaypointTypeIntermediate: "INTERMEDIATE",
	WaypointTypeDelivery:     "DELIVERY",
	WaypointTypeEnd:          "END",
}

// ParseWaypointType is the inverse of String.
func ParseWaypointType(s string) (WaypointType, error) {
	for t, str := range waypointTypeStrings {
		if str == s {
			return t, nil
		}
	}
	return WaypointTypeUnknown, errs.NewValueIsInvalidErrorWithCause("waypointType",
		fmt.Errorf("%q is not a waypoint type", s))
}

func (t WaypointType) Validate() error {
	if _, ok := waypointTypeStrings[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("waypointType",
			fmt.Errorf("%d is not a valid waypoint type", t))
	}
	return nil
}

func (t WaypointType) String() string {
	if str, ok := waypointTypeStrings[t]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsStopPoint reports whether the courier halts at this waypoint to hand
// over or collect goods.
func (t WaypointType) IsStopPoint() bool {
	return t == WaypointTypeDelivery || t == WaypointTypeIntermediate
}

// IsTerminal reports whether the waypoint opens or closes the route.
func (t WaypointType) IsTerminal() bool {
	return t == WaypointTypeStart || t == WaypointTypeEnd
}
