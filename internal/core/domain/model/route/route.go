package route

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// MinWaypoints is the smallest legal route: somewhere to start and
	// somewhere to end.
	MinWaypoints = 2

	// AverageSpeedKmh is the planning speed used to derive durations from
	// distances when no better information is available.
	AverageSpeedKmh = 30.0
)

var ErrRouteIsNotConstructed = errs.NewValueIsRequiredError(
	"route must be created via NewRoute or FromLocations")

// Route is an immutable, ordered sequence of at least two waypoints together
// with its precomputed total distance and estimated travel time.
//
// Routes built by FromLocations satisfy TotalDistance == PathDistance(Locations()).
// Routes built by NewRoute carry whatever distance and duration the caller
// supplies; this is how persisted or traffic-adjusted routes are restored.
//
// Example:
//
//	r, err := route.FromLocations([]kernel.Location{warehouse, customer})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(r.TotalDistance(), r.EstimatedDuration())
type Route struct {
	waypoints         []Waypoint
	totalDistance     kernel.Distance
	estimatedDuration time.Duration
	guard             guard.ConstructorGuard
}

// NewRoute assembles a route from ready-made waypoints.
//
// Business rules:
//   - at least MinWaypoints waypoints, each constructed properly
//   - estimatedDuration must not be negative
func NewRoute(waypoints []Waypoint, totalDistance kernel.Distance, estimatedDuration time.Duration) (Route, error) {
	if len(waypoints) < MinWaypoints {
		return Route{}, errs.NewValueIsOutOfRangeError("waypoints", len(waypoints), MinWaypoints, "+Inf")
	}

	var verr error
	for i, w := range waypoints {
		if err := w.Validate(); err != nil {
			verr = errors.Join(verr, fmt.Errorf("waypoint %d: %w", i, err))
		}
	}
	if estimatedDuration < 0 {
		verr = errors.Join(verr, errs.NewValueIsOutOfRangeError("estimatedDuration", estimatedDuration, time.Duration(0), "+Inf"))
	}
	if verr != nil {
		return Route{}, verr
	}

	return Route{
		waypoints:         slices.Clone(waypoints),
		totalDistance:     totalDistance,
		estimatedDuration: estimatedDuration,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

// FromLocations builds a route visiting locations in the given order. The
// first point becomes START, the last END and everything between
// INTERMEDIATE. Duration is whole minutes at AverageSpeedKmh, truncated.
func FromLocations(locations []kernel.Location) (Route, error) {
	if len(locations) < MinWaypoints {
		return Route{}, errs.NewValueIsOutOfRangeError("locations", len(locations), MinWaypoints, "+Inf")
	}

	waypoints := make([]Waypoint, 0, len(locations))
	for i, loc := range locations {
		var (
			w   Waypoint
			err error
		)
		switch i {
		case 0:
			w, err = StartWaypoint(loc)
		case len(locations) - 1:
			w, err = EndWaypoint(loc)
		default:
			w, err = IntermediateWaypoint(loc)
		}
		if err != nil {
			return Route{}, fmt.Errorf("location %d: %w", i, err)
		}
		waypoints = append(waypoints, w)
	}

	total, err := kernel.PathDistance(locations)
	if err != nil {
		return Route{}, err
	}

	return NewRoute(waypoints, total, TravelTime(total))
}

// TravelTime converts a distance to whole minutes at AverageSpeedKmh.
func TravelTime(d kernel.Distance) time.Duration {
	minutes := int64(d.Kilometers() / AverageSpeedKmh * 60)
	return time.Duration(minutes) * time.Minute
}

func (r Route) Validate() error {
	return r.guard.Validate(ErrRouteIsNotConstructed)
}

// Waypoints returns a copy of the ordered waypoints.
func (r Route) Waypoints() []Waypoint {
	return slices.Clone(r.waypoints)
}

func (r Route) TotalDistance() kernel.Distance {
	return r.totalDistance
}

func (r Route) EstimatedDuration() time.Duration {
	return r.estimatedDuration
}

func (r Route) WaypointCount() int {
	return len(r.waypoints)
}

func (r Route) StartLocation() kernel.Location {
	if len(r.waypoints) == 0 {
		return kernel.Location{}
	}
	return r.waypoints[0].Location()
}

func (r Route) EndLocation() kernel.Location {
	if len(r.waypoints) == 0 {
		return kernel.Location{}
	}
	return r.waypoints[len(r.waypoints)-1].Location()
}

// Locations returns the location of every waypoint in order.
func (r Route) Locations() []kernel.Location {
	out := make([]kernel.Location, len(r.waypoints))
	for i, w := range r.waypoints {
		out[i] = w.Location()
	}
	return out
}

// InteriorWaypoints returns everything between the first and last waypoint.
func (r Route) InteriorWaypoints() []Waypoint {
	if len(r.waypoints) <= MinWaypoints {
		return nil
	}
	return slices.Clone(r.waypoints[1 : len(r.waypoints)-1])
}

// StopCount is the number of DELIVERY and INTERMEDIATE waypoints.
func (r Route) StopCount() int {
	n := 0
	for _, w := range r.waypoints {
		if w.Type().IsStopPoint() {
			n++
		}
	}
	return n
}

func (r Route) ContainsLocation(location kernel.Location) bool {
	return slices.ContainsFunc(r.waypoints, func(w Waypoint) bool {
		return w.Location().IsEqual(location)
	})
}

// AverageSpeedKmh is distance over duration; zero when the duration is zero.
func (r Route) AverageSpeedKmh() float64 {
	if r.estimatedDuration <= 0 {
		return 0
	}
	return r.totalDistance.Kilometers() / r.estimatedDuration.Hours()
}

// WithEstimatedDuration returns a copy of the route with a different
// duration and the same waypoints and distance.
func (r Route) WithEstimatedDuration(d time.Duration) (Route, error) {
	if err := r.Validate(); err != nil {
		return Route{}, err
	}
	return NewRoute(r.waypoints, r.totalDistance, d)
}

// IsEqual compares waypoints, distance and duration.
func (r Route) IsEqual(other Route) bool {
	return slices.Equal(r.waypoints, other.waypoints) &&
		r.totalDistance.IsEqual(other.totalDistance) &&
		r.estimatedDuration == other.estimatedDuration
}

// HasSameSequence reports whether both routes visit the same locations in
// the same order.
func (r Route) HasSameSequence(other Route) bool {
	return slices.Equal(r.Locations(), other.Locations())
}
