// Package ports defines the contracts between the dispatch core and its
// infrastructure: persistence, courier selection, traffic data and event
// delivery. Adapters implement them; use cases depend only on them.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
type CourierRepository interface {
	// Add persists a new courier aggregate.
	Add(ctx context.Context, courier *courier.Courier) error

	// Update persists changes to an existing courier aggregate.
	Update(ctx context.Context, courier *courier.Courier) error

	// Get retrieves a courier by its identifier.
	// Returns errs.ErrObjectNotFound when no courier matches.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetForUpdate retrieves a courier and locks its row until the
	// surrounding transaction ends. Two transactions that both intend to
	// book load on the same courier are serialized here, so a capacity
	// check followed by AssignDelivery cannot be interleaved.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetAllAvailable retrieves the tenant's couriers in AVAILABLE status,
	// ordered by identifier.
	//
	// Example:
	//   couriers, err := repo.GetAllAvailable(ctx, tenantID)
	//   if err != nil {
	//       return fmt.Errorf("load available couriers: %w", err)
	//   }
	GetAllAvailable(ctx context.Context, tenantID kernel.UUID) ([]*courier.Courier, error)
}
