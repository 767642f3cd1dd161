package queries

import (
	"context"

	"dispatch/internal/core/domain/services"
)

// PlanCourierRouteQueryHandler plans from committed state only. It takes no
// locks, so a plan may be stale by the time the courier acts on it.
type PlanCourierRouteQueryHandler struct {
	couriers   CourierReader
	deliveries ActiveDeliveryReader
	dispatcher services.Dispatcher
}

func NewPlanCourierRouteQueryHandler(
	couriers CourierReader,
	deliveries ActiveDeliveryReader,
	dispatcher services.Dispatcher,
) PlanCourierRouteQueryHandler {
	return PlanCourierRouteQueryHandler{
		couriers:   couriers,
		deliveries: deliveries,
		dispatcher: dispatcher,
	}
}

func (h PlanCourierRouteQueryHandler) Handle(
	ctx context.Context,
	query PlanCourierRouteQuery,
) (PlanCourierRouteQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return PlanCourierRouteQueryResponse{}, err
	}

	c, err := h.couriers.Get(ctx, query.CourierID())
	if err != nil {
		return PlanCourierRouteQueryResponse{}, err
	}

	active, err := h.deliveries.GetActiveByCourier(ctx, c.ID())
	if err != nil {
		return PlanCourierRouteQueryResponse{}, err
	}

	response := PlanCourierRouteQueryResponse{
		CourierID:        c.ID(),
		ActiveDeliveries: len(active),
	}
	if len(active) == 0 {
		return response, nil
	}

	batched, err := h.dispatcher.PlanCourierRoute(c, active)
	if err != nil {
		return PlanCourierRouteQueryResponse{}, err
	}
	response.Route = &batched
	return response, nil
}
