package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrPlanCourierRouteQueryIsNotConstructed = errors.New(
	"PlanCourierRouteQuery must be created via NewPlanCourierRouteQuery constructor",
)

// PlanCourierRouteQuery batches a courier's active drop-offs into one trip
// starting at the courier's position.
type PlanCourierRouteQuery struct {
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

func NewPlanCourierRouteQuery(courierID kernel.UUID) (PlanCourierRouteQuery, error) {
	if err := courierID.Validate(); err != nil {
		return PlanCourierRouteQuery{}, errs.NewValueIsRequiredErrorWithCause("courierID", err)
	}

	return PlanCourierRouteQuery{
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q PlanCourierRouteQuery) Validate() error {
	return q.guard.Validate(ErrPlanCourierRouteQueryIsNotConstructed)
}

func (q PlanCourierRouteQuery) CourierID() kernel.UUID {
	return q.courierID
}

// PlanCourierRouteQueryResponse carries the batched trip. Route is nil when
// the courier has no active delivery.
type PlanCourierRouteQueryResponse struct {
	CourierID        kernel.UUID
	ActiveDeliveries int
	Route            *route.Route
}
