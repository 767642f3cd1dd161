package queries

import (
	"context"

	"dispatch/internal/core/domain/model/delivery"
)

// GetTrackingQueryHandler derives a TrackingUpdate from the stored delivery.
// Snapshots are never persisted.
type GetTrackingQueryHandler struct {
	deliveries DeliveryReader
}

func NewGetTrackingQueryHandler(deliveries DeliveryReader) GetTrackingQueryHandler {
	return GetTrackingQueryHandler{deliveries: deliveries}
}

func (h GetTrackingQueryHandler) Handle(ctx context.Context, query GetTrackingQuery) (delivery.TrackingUpdate, error) {
	if err := query.Validate(); err != nil {
		return delivery.TrackingUpdate{}, err
	}

	d, err := h.deliveries.Get(ctx, query.DeliveryID())
	if err != nil {
		return delivery.TrackingUpdate{}, err
	}

	return delivery.NewTrackingUpdate(d, query.At()), nil
}
