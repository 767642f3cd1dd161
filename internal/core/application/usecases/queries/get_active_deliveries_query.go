package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrGetActiveDeliveriesQueryIsNotConstructed = errors.New(
	"GetActiveDeliveriesQuery must be created via NewGetActiveDeliveriesQuery constructor",
)

// GetActiveDeliveriesQuery lists the non-terminal deliveries of one courier.
type GetActiveDeliveriesQuery struct {
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetActiveDeliveriesQuery(courierID kernel.UUID) (GetActiveDeliveriesQuery, error) {
	if err := courierID.Validate(); err != nil {
		return GetActiveDeliveriesQuery{}, errs.NewValueIsRequiredErrorWithCause("courierID", err)
	}

	return GetActiveDeliveriesQuery{
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetActiveDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveDeliveriesQueryIsNotConstructed)
}

func (q GetActiveDeliveriesQuery) CourierID() kernel.UUID {
	return q.courierID
}

// GetActiveDeliveriesQueryResponse is a compact delivery read model without
// the route and milestone log.
type GetActiveDeliveriesQueryResponse struct {
	ID               kernel.UUID
	OrderID          kernel.UUID
	Status           delivery.Status
	CurrentLocation  kernel.Location
	Dropoff          kernel.Location
	EstimatedArrival time.Time
	Progress         float64
	Weight           int
	Volume           int
	CreatedAt        time.Time
}
