package queries

import (
	"context"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// PlanRouteQueryHandler runs the route optimizer for ad-hoc planning
// requests.
type PlanRouteQueryHandler struct {
	optimizer services.RouteOptimizer
	traffic   ports.TrafficProvider
}

func NewPlanRouteQueryHandler(optimizer services.RouteOptimizer, traffic ports.TrafficProvider) PlanRouteQueryHandler {
	return PlanRouteQueryHandler{
		optimizer: optimizer,
		traffic:   traffic,
	}
}

func (h PlanRouteQueryHandler) Handle(ctx context.Context, query PlanRouteQuery) (PlanRouteQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return PlanRouteQueryResponse{}, err
	}

	options, err := h.optimizer.CalculateRouteOptions(
		query.Start(), query.Deliveries(), query.End(), query.MaxRoutes(),
	)
	if err != nil {
		return PlanRouteQueryResponse{}, fmt.Errorf("plan route: %w", err)
	}

	var response PlanRouteQueryResponse

	adjust := func(r route.Route) (route.Route, error) { return r, nil }
	if query.ApplyTraffic() {
		conditions, err := h.traffic.Current(ctx)
		if err != nil {
			return PlanRouteQueryResponse{}, fmt.Errorf("get traffic conditions: %w", err)
		}
		response.Traffic = &conditions
		adjust = func(r route.Route) (route.Route, error) {
			return h.optimizer.OptimizeForTraffic(r, conditions)
		}
	}

	for _, option := range options {
		adjusted, err := adjust(option)
		if err != nil {
			return PlanRouteQueryResponse{}, err
		}

		planned := PlannedRoute{Route: adjusted}
		if limits := query.Limits(); limits != nil {
			feasible := h.optimizer.IsRouteFeasible(adjusted, limits.MaxDistance, limits.MaxDuration)
			planned.Feasible = &feasible
		}
		response.Options = append(response.Options, planned)
	}

	if query.MaxWaypoints() > 0 {
		if response.Batches, err = h.split(options[0], query, adjust); err != nil {
			return PlanRouteQueryResponse{}, err
		}
	}

	if query.TimeBudget() > 0 {
		fitted, err := h.optimizer.OptimizeRouteWithTimeConstraint(
			query.Start(), query.Deliveries(), query.End(), query.TimeBudget(),
		)
		if err != nil {
			return PlanRouteQueryResponse{}, fmt.Errorf("plan route within budget: %w", err)
		}
		if fitted, err = adjust(fitted); err != nil {
			return PlanRouteQueryResponse{}, err
		}
		response.WithinBudget = &fitted
	}

	return response, nil
}

// noDistanceLimitMeters exceeds any route on Earth.
const noDistanceLimitMeters = 1e12

func (h PlanRouteQueryHandler) split(
	best route.Route,
	query PlanRouteQuery,
	adjust func(route.Route) (route.Route, error),
) ([]route.Route, error) {
	maxDistance, err := kernel.NewDistance(noDistanceLimitMeters)
	if err != nil {
		return nil, err
	}
	if limits := query.Limits(); limits != nil {
		maxDistance = limits.MaxDistance
	}

	batches, err := h.optimizer.SplitRouteIfNeeded(best, query.MaxWaypoints(), maxDistance)
	if err != nil {
		return nil, fmt.Errorf("split route: %w", err)
	}

	for i, batch := range batches {
		if batches[i], err = adjust(batch); err != nil {
			return nil, err
		}
	}
	return batches, nil
}
