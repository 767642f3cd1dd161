package queries

import (
	"errors"
	"slices"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// MaxRouteOptions bounds how many alternatives one request may ask for.
	MaxRouteOptions = 20
	// MaxPlanDeliveries bounds the stops of one planning request.
	MaxPlanDeliveries = 100
)

var ErrPlanRouteQueryIsNotConstructed = errors.New(
	"PlanRouteQuery must be created via NewPlanRouteQuery constructor",
)

// PlanRouteQuery asks for alternative routes from start through deliveries
// to end, independent of any courier.
//
// Example:
//
//	query, err := NewPlanRouteQuery(depot, stops, depot, 3,
//	    WithTraffic(),
//	    WithLimits(maxDistance, 2*time.Hour),
//	)
type PlanRouteQuery struct {
	start      kernel.Location
	deliveries []kernel.Location
	end        kernel.Location
	maxRoutes  int

	applyTraffic bool
	limits       *RouteLimits
	maxWaypoints int
	timeBudget   time.Duration

	guard guard.ConstructorGuard
}

// RouteLimits are the bounds an option must respect to be feasible.
type RouteLimits struct {
	MaxDistance kernel.Distance
	MaxDuration time.Duration
}

// PlanRouteOption enables optional planning steps.
type PlanRouteOption func(*PlanRouteQuery)

// WithTraffic rescales every duration by the current traffic conditions.
func WithTraffic() PlanRouteOption {
	return func(q *PlanRouteQuery) {
		q.applyTraffic = true
	}
}

// WithLimits marks each option feasible or not.
func WithLimits(maxDistance kernel.Distance, maxDuration time.Duration) PlanRouteOption {
	return func(q *PlanRouteQuery) {
		q.limits = &RouteLimits{MaxDistance: maxDistance, MaxDuration: maxDuration}
	}
}

// WithSplit cuts the best option into trips of at most maxWaypoints
// waypoints, or shorter than the distance limit when one is set.
func WithSplit(maxWaypoints int) PlanRouteOption {
	return func(q *PlanRouteQuery) {
		q.maxWaypoints = maxWaypoints
	}
}

// WithTimeBudget also plans the largest nearest-neighbour route whose travel
// and stop time fits budget.
func WithTimeBudget(budget time.Duration) PlanRouteOption {
	return func(q *PlanRouteQuery) {
		q.timeBudget = budget
	}
}

func NewPlanRouteQuery(
	start kernel.Location,
	deliveries []kernel.Location,
	end kernel.Location,
	maxRoutes int,
	opts ...PlanRouteOption,
) (PlanRouteQuery, error) {
	q := PlanRouteQuery{
		start:      start,
		deliveries: slices.Clone(deliveries),
		end:        end,
		maxRoutes:  maxRoutes,
		guard:      guard.NewConstructorGuard(),
	}
	for _, opt := range opts {
		opt(&q)
	}

	var verr error
	if err := start.Validate(); err != nil {
		verr = errors.Join(verr, errs.NewValueIsRequiredErrorWithCause("start", err))
	}
	if err := end.Validate(); err != nil {
		verr = errors.Join(verr, errs.NewValueIsRequiredErrorWithCause("end", err))
	}
	if len(deliveries) > MaxPlanDeliveries {
		verr = errors.Join(verr, errs.NewValueIsOutOfRangeError("deliveries", len(deliveries), 0, MaxPlanDeliveries))
	}
	for _, d := range deliveries {
		if err := d.Validate(); err != nil {
			verr = errors.Join(verr, errs.NewValueIsRequiredErrorWithCause("delivery", err))
			break
		}
	}
	if maxRoutes < 1 || maxRoutes > MaxRouteOptions {
		verr = errors.Join(verr, errs.NewValueIsOutOfRangeError("maxRoutes", maxRoutes, 1, MaxRouteOptions))
	}
	if q.limits != nil && q.limits.MaxDuration < 0 {
		verr = errors.Join(verr, errs.NewValueIsOutOfRangeError("maxDuration", q.limits.MaxDuration, time.Duration(0), "+Inf"))
	}
	if q.maxWaypoints != 0 && q.maxWaypoints <= route.MinWaypoints {
		verr = errors.Join(verr, errs.NewValueIsOutOfRangeError("maxWaypoints", q.maxWaypoints, route.MinWaypoints+1, "+Inf"))
	}
	if q.timeBudget < 0 {
		verr = errors.Join(verr, errs.NewValueIsOutOfRangeError("timeBudget", q.timeBudget, time.Duration(0), "+Inf"))
	}
	if verr != nil {
		return PlanRouteQuery{}, verr
	}

	return q, nil
}

func (q PlanRouteQuery) Validate() error {
	return q.guard.Validate(ErrPlanRouteQueryIsNotConstructed)
}

func (q PlanRouteQuery) Start() kernel.Location {
	return q.start
}

func (q PlanRouteQuery) Deliveries() []kernel.Location {
	return slices.Clone(q.deliveries)
}

func (q PlanRouteQuery) End() kernel.Location {
	return q.end
}

func (q PlanRouteQuery) MaxRoutes() int {
	return q.maxRoutes
}

func (q PlanRouteQuery) ApplyTraffic() bool {
	return q.applyTraffic
}

// Limits is nil when no feasibility check was requested.
func (q PlanRouteQuery) Limits() *RouteLimits {
	return q.limits
}

func (q PlanRouteQuery) MaxWaypoints() int {
	return q.maxWaypoints
}

func (q PlanRouteQuery) TimeBudget() time.Duration {
	return q.timeBudget
}

// PlannedRoute is one alternative. Feasible is nil without limits.
type PlannedRoute struct {
	Route    route.Route
	Feasible *bool
}

// PlanRouteQueryResponse lists the options shortest first. Traffic is set
// when durations were adjusted; Batches when a split was requested;
// WithinBudget when a time budget was given.
type PlanRouteQueryResponse struct {
	Options      []PlannedRoute
	Traffic      *route.TrafficConditions
	Batches      []route.Route
	WithinBudget *route.Route
}
