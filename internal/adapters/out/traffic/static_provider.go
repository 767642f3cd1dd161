// Package traffic supplies the traffic conditions route durations are
// adjusted for.
package traffic

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/core/ports"
)

// StaticProvider reports one configured level, observed at call time.
type StaticProvider struct {
	level route.TrafficLevel
	now   func() time.Time
}

var _ ports.TrafficProvider = StaticProvider{}

func NewStaticProvider(level route.TrafficLevel) (StaticProvider, error) {
	if err := level.Validate(); err != nil {
		return StaticProvider{}, err
	}
	return StaticProvider{level: level, now: time.Now}, nil
}

func (p StaticProvider) Current(ctx context.Context) (route.TrafficConditions, error) {
	if err := ctx.Err(); err != nil {
		return route.TrafficConditions{}, err
	}
	return route.TypicalTrafficConditions(p.level, p.now().UTC())
}
