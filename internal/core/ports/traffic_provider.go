package ports

import (
	"context"

	"dispatch/internal/core/domain/model/route"
)

// TrafficProvider reports the traffic conditions route durations are
// adjusted for.
type TrafficProvider interface {
	Current(ctx context.Context) (route.TrafficConditions, error)
}
