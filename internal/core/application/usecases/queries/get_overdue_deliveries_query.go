package queries

import (
	"errors"
	"time"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrGetOverdueDeliveriesQueryIsNotConstructed = errors.New(
	"GetOverdueDeliveriesQuery must be created via NewGetOverdueDeliveriesQuery constructor",
)

// GetOverdueDeliveriesQuery finds active deliveries whose ETA is before at.
type GetOverdueDeliveriesQuery struct {
	at time.Time

	guard guard.ConstructorGuard
}

func NewGetOverdueDeliveriesQuery(at time.Time) (GetOverdueDeliveriesQuery, error) {
	if at.IsZero() {
		return GetOverdueDeliveriesQuery{}, errs.NewValueIsRequiredError("at")
	}

	return GetOverdueDeliveriesQuery{
		at:    at,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q GetOverdueDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetOverdueDeliveriesQueryIsNotConstructed)
}

func (q GetOverdueDeliveriesQuery) At() time.Time {
	return q.at
}
