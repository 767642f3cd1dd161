package queries

import (
	"context"

	"dispatch/internal/core/domain/model/delivery"
)

// GetOverdueDeliveriesQueryHandler returns a tracking snapshot for every
// overdue delivery, most overdue first.
type GetOverdueDeliveriesQueryHandler struct {
	deliveries OverdueDeliveryReader
}

func NewGetOverdueDeliveriesQueryHandler(deliveries OverdueDeliveryReader) GetOverdueDeliveriesQueryHandler {
	return GetOverdueDeliveriesQueryHandler{deliveries: deliveries}
}

func (h GetOverdueDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetOverdueDeliveriesQuery,
) ([]delivery.TrackingUpdate, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	overdue, err := h.deliveries.GetOverdue(ctx, query.At())
	if err != nil {
		return nil, err
	}

	updates := make([]delivery.TrackingUpdate, 0, len(overdue))
	for _, d := range overdue {
		// The listing must agree with each snapshot's overdue flag.
		if !d.IsOverdue(query.At()) {
			continue
		}
		updates = append(updates, delivery.NewTrackingUpdate(d, query.At()))
	}

	return updates, nil
}
