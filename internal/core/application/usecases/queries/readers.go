package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
)

// Read-side views of the repositories. Query handlers receive repositories
// bound to the connection pool, never to a transaction, and take no locks.
type (
	CourierReader interface {
		Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)
	}

	DeliveryReader interface {
		Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)
	}

	ActiveDeliveryReader interface {
		GetActiveByCourier(ctx context.Context, courierID kernel.UUID) ([]*delivery.Delivery, error)
	}

	OverdueDeliveryReader interface {
		GetOverdue(ctx context.Context, now time.Time) ([]*delivery.Delivery, error)
	}
)
