package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery
// aggregates, including their route and event history.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate with its route and events.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery. Events are
	// append-only: rows already stored are never rewritten.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a delivery by its identifier.
	// Returns errs.ErrObjectNotFound when no delivery matches.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetForUpdate is Get with a row lock held until the transaction ends.
	// Concurrent status updates on one delivery are applied one at a time.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetActiveByCourier returns the courier's deliveries that are not in a
	// terminal status, oldest first.
	GetActiveByCourier(ctx context.Context, courierID kernel.UUID) ([]*delivery.Delivery, error)

	// GetOverdue returns active deliveries whose estimated arrival is
	// before now, most overdue first.
	GetOverdue(ctx context.Context, now time.Time) ([]*delivery.Delivery, error)
}
