package ports

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// ErrNoCourierAvailable is returned by a CourierSelector when no courier of
// the tenant can take the parcel.
var ErrNoCourierAvailable = errors.New("no courier available")

// SelectionRequest describes the parcel a courier is being chosen for.
type SelectionRequest struct {
	TenantID kernel.UUID
	Pickup   kernel.Location
	Weight   int
	Volume   int
}

// CourierSelector picks which courier should receive a new delivery. The
// policy lives behind this port; the dispatcher only verifies the choice.
type CourierSelector interface {
	Select(ctx context.Context, req SelectionRequest) (*courier.Courier, error)
}
