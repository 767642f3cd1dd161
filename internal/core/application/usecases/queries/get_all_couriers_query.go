// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return read models shaped for a specific use case and never modify
// aggregates.
package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrGetAllCouriersQueryIsNotConstructed = errors.New(
	"GetAllCouriersQuery must be created via NewGetAllCouriersQuery constructor",
)

// GetAllCouriersQuery lists a tenant's couriers with their load, optionally
// restricted to some statuses.
//
// Example:
//
//	query, err := NewGetAllCouriersQuery(tenantID, courier.StatusAvailable, courier.StatusBusy)
//	if err != nil {
//	    return err
//	}
//	couriers, err := handler.Handle(ctx, query)
//	for _, c := range couriers {
//	    fmt.Printf("%s %s %.0f%%\n", c.Name, c.Status, c.Utilization*100)
//	}
type GetAllCouriersQuery struct {
	tenantID kernel.UUID
	statuses []courier.Status

	guard guard.ConstructorGuard
}

// NewGetAllCouriersQuery creates the query. No statuses means all statuses.
func NewGetAllCouriersQuery(tenantID kernel.UUID, statuses ...courier.Status) (GetAllCouriersQuery, error) {
	if err := tenantID.Validate(); err != nil {
		return GetAllCouriersQuery{}, errs.NewValueIsRequiredErrorWithCause("tenantID", err)
	}
	for _, s := range statuses {
		if err := s.Validate(); err != nil {
			return GetAllCouriersQuery{}, err
		}
	}

	return GetAllCouriersQuery{
		tenantID: tenantID,
		statuses: statuses,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetAllCouriersQuery) Validate() error {
	return q.guard.Validate(ErrGetAllCouriersQueryIsNotConstructed)
}

func (q GetAllCouriersQuery) TenantID() kernel.UUID {
	return q.tenantID
}

func (q GetAllCouriersQuery) Statuses() []courier.Status {
	return q.statuses
}

// GetAllCouriersQueryResponse is the courier read model.
type GetAllCouriersQueryResponse struct {
	ID          kernel.UUID
	Name        string
	Phone       string
	VehicleType string
	Status      courier.Status
	Location    kernel.Location
	Capacity    courier.Capacity
	Load        courier.Load
	Utilization float64
}
