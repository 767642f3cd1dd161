package route

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrWaypointIsNotConstructed = errs.NewValueIsRequiredError(
	"waypoint must be created via NewWaypoint or one of its factories")

// Waypoint is a single stop on a route. It is a value: two waypoints with the
// same location, type, stop duration and description are equal under ==.
// A zero stop duration and an empty description mean "not set".
type Waypoint struct { //nolint:recvcheck // setters need pointer receivers
	location     kernel.Location
	waypointType WaypointType
	stopDuration time.Duration
	description  string
	guard        guard.ConstructorGuard
}

func NewWaypoint(
	location kernel.Location,
	waypointType WaypointType,
	stopDuration time.Duration,
	description string,
) (Waypoint, error) {
	w := Waypoint{
		description: description,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		w.setLocation(location),
		w.setType(waypointType),
		w.setStopDuration(stopDuration),
	); err != nil {
		return Waypoint{}, err
	}

	return w, nil
}

func StartWaypoint(location kernel.Location) (Waypoint, error) {
	return NewWaypoint(location, WaypointTypeStart, 0, "")
}

func EndWaypoint(location kernel.Location) (Waypoint, error) {
	return NewWaypoint(location, WaypointTypeEnd, 0, "")
}

func IntermediateWaypoint(location kernel.Location) (Waypoint, error) {
	return NewWaypoint(location, WaypointTypeIntermediate, 0, "")
}

// DeliveryWaypoint is a hand-over stop with an expected dwell time.
func DeliveryWaypoint(location kernel.Location, stopDuration time.Duration, description string) (Waypoint, error) {
	return NewWaypoint(location, WaypointTypeDelivery, stopDuration, description)
}

func (w Waypoint) Validate() error {
	return w.guard.Validate(ErrWaypointIsNotConstructed)
}

func (w Waypoint) Location() kernel.Location {
	return w.location
}

func (w Waypoint) Type() WaypointType {
	return w.waypointType
}

func (w Waypoint) StopDuration() time.Duration {
	return w.stopDuration
}

func (w Waypoint) Description() string {
	return w.description
}

// RequiresStop reports whether the courier must halt here.
func (w Waypoint) RequiresStop() bool {
	return w.waypointType.IsStopPoint() || w.stopDuration > 0
}

func (w Waypoint) IsDelivery() bool {
	return w.waypointType == WaypointTypeDelivery
}

func (w *Waypoint) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("location", err)
	}
	w.location = location
	return nil
}

func (w *Waypoint) setType(waypointType WaypointType) error {
	if err := waypointType.Validate(); err != nil {
		return err
	}
	w.waypointType = waypointType
	return nil
}

func (w *Waypoint) setStopDuration(stopDuration time.Duration) error {
	if stopDuration < 0 {
		return errs.NewValueIsOutOfRangeError("stopDuration", stopDuration, time.Duration(0), "+Inf")
	}
	w.stopDuration = stopDuration
	return nil
}
