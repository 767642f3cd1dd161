// Package selection holds the courier-selection policies offered to the
// assign use case.
package selection

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

type availableCouriers interface {
	GetAllAvailable(ctx context.Context, tenantID kernel.UUID) ([]*courier.Courier, error)
}

// NearestAvailable offers the parcel to the closest AVAILABLE courier of the
// tenant that still has room for it. Ties go to the lower courier ID.
type NearestAvailable struct {
	couriers   availableCouriers
	dispatcher services.Dispatcher
}

var _ ports.CourierSelector = NearestAvailable{}

func NewNearestAvailable(couriers availableCouriers, dispatcher services.Dispatcher) NearestAvailable {
	return NearestAvailable{
		couriers:   couriers,
		dispatcher: dispatcher,
	}
}

func (s NearestAvailable) Select(ctx context.Context, req ports.SelectionRequest) (*courier.Courier, error) {
	candidates, err := s.couriers.GetAllAvailable(ctx, req.TenantID)
	if err != nil {
		return nil, fmt.Errorf("load available couriers: %w", err)
	}

	c, err := s.dispatcher.SelectNearest(req.Pickup, req.Weight, req.Volume, candidates)
	if errors.Is(err, services.ErrCourierNotFound) {
		return nil, ports.ErrNoCourierAvailable
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}
