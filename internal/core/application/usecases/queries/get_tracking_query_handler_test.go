package queries_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

func TestNewGetTrackingQuery(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		query, err := queries.NewGetTrackingQuery(kernel.NewUUID(), time.Now())
		require.NoError(t, err)
		require.NoError(t, query.Validate())
	})

	t.Run("missing delivery id", func(t *testing.T) {
		_, err := queries.NewGetTrackingQuery(kernel.UUID{}, time.Now())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero instant", func(t *testing.T) {
		_, err := queries.NewGetTrackingQuery(kernel.NewUUID(), time.Time{})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("literal is rejected", func(t *testing.T) {
		err := queries.GetTrackingQuery{}.Validate()
		require.ErrorIs(t, err, queries.ErrGetTrackingQueryIsNotConstructed)
	})
}

func TestGetTrackingQueryHandler_Handle(t *testing.T) {
	t.Run("builds snapshot at the requested instant", func(t *testing.T) {
		c := newCourier(t, -25.96, 32.57)
		d := newDelivery(t, c, mustLocation(t, -25.92, 32.60))
		require.NoError(t, d.UpdateStatus(delivery.StatusEnRouteToPickup, ""))

		at := d.EstimatedArrival().Add(-10 * time.Minute)
		query, err := queries.NewGetTrackingQuery(d.ID(), at)
		require.NoError(t, err)

		reader := new(MockDeliveryReader)
		reader.On("Get", mock.Anything, d.ID()).Return(d, nil).Once()

		update, err := queries.NewGetTrackingQueryHandler(reader).Handle(t.Context(), query)

		require.NoError(t, err)
		assert.Equal(t, d.ID(), update.DeliveryID())
		assert.Equal(t, c.ID(), update.CourierID())
		assert.Equal(t, delivery.StatusEnRouteToPickup, update.Status())
		assert.Equal(t, 10*time.Minute, update.TimeToArrival())
		assert.InDelta(t, 0.2, update.Progress(), 1e-9)
		assert.False(t, update.IsOverdue())
		assert.Equal(t, at, update.TakenAt())
		reader.AssertExpectations(t)
	})

	t.Run("overdue after the eta", func(t *testing.T) {
		c := newCourier(t, -25.96, 32.57)
		d := newDelivery(t, c, mustLocation(t, -25.92, 32.60))
		query, err := queries.NewGetTrackingQuery(d.ID(), d.EstimatedArrival().Add(time.Minute))
		require.NoError(t, err)

		reader := new(MockDeliveryReader)
		reader.On("Get", mock.Anything, d.ID()).Return(d, nil)

		update, err := queries.NewGetTrackingQueryHandler(reader).Handle(t.Context(), query)

		require.NoError(t, err)
		assert.True(t, update.IsOverdue())
		assert.Zero(t, update.TimeToArrival())
	})

	t.Run("unknown delivery", func(t *testing.T) {
		id := kernel.NewUUID()
		query, err := queries.NewGetTrackingQuery(id, time.Now())
		require.NoError(t, err)

		reader := new(MockDeliveryReader)
		reader.On("Get", mock.Anything, id).Return(nil, errs.NewObjectNotFoundError("delivery", id.String()))

		_, err = queries.NewGetTrackingQueryHandler(reader).Handle(t.Context(), query)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("query not constructed", func(t *testing.T) {
		reader := new(MockDeliveryReader)

		_, err := queries.NewGetTrackingQueryHandler(reader).Handle(t.Context(), queries.GetTrackingQuery{})

		require.ErrorIs(t, err, queries.ErrGetTrackingQueryIsNotConstructed)
		reader.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})
}
