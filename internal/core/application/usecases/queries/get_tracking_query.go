package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrGetTrackingQueryIsNotConstructed = errors.New(
	"GetTrackingQuery must be created via NewGetTrackingQuery constructor",
)

// GetTrackingQuery asks for a delivery's tracking snapshot as of a moment.
type GetTrackingQuery struct {
	deliveryID kernel.UUID
	at         time.Time

	guard guard.ConstructorGuard
}

func NewGetTrackingQuery(deliveryID kernel.UUID, at time.Time) (GetTrackingQuery, error) {
	if err := deliveryID.Validate(); err != nil {
		return GetTrackingQuery{}, errs.NewValueIsRequiredErrorWithCause("deliveryID", err)
	}
	if at.IsZero() {
		return GetTrackingQuery{}, errs.NewValueIsRequiredError("at")
	}

	return GetTrackingQuery{
		deliveryID: deliveryID,
		at:         at,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetTrackingQueryIsNotConstructed)
}

func (q GetTrackingQuery) DeliveryID() kernel.UUID {
	return q.deliveryID
}

func (q GetTrackingQuery) At() time.Time {
	return q.at
}
