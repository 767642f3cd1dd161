package queries_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/pkg/errs"
)

func TestNewGetOverdueDeliveriesQuery(t *testing.T) {
	_, err := queries.NewGetOverdueDeliveriesQuery(time.Time{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	query, err := queries.NewGetOverdueDeliveriesQuery(time.Now())
	require.NoError(t, err)
	require.NoError(t, query.Validate())

	require.ErrorIs(t, queries.GetOverdueDeliveriesQuery{}.Validate(), queries.ErrGetOverdueDeliveriesQueryIsNotConstructed)
}

func TestGetOverdueDeliveriesQueryHandler_Handle(t *testing.T) {
	t.Run("maps deliveries to overdue snapshots", func(t *testing.T) {
		c := newCourier(t, -25.96, 32.57)
		first := newDelivery(t, c, mustLocation(t, -25.92, 32.60))
		second := newDelivery(t, c, mustLocation(t, -25.90, 32.62))
		at := second.EstimatedArrival().Add(time.Hour)

		query, err := queries.NewGetOverdueDeliveriesQuery(at)
		require.NoError(t, err)

		reader := new(MockDeliveryReader)
		reader.On("GetOverdue", mock.Anything, at).Return([]*delivery.Delivery{first, second}, nil).Once()

		updates, err := queries.NewGetOverdueDeliveriesQueryHandler(reader).Handle(t.Context(), query)

		require.NoError(t, err)
		require.Len(t, updates, 2)
		assert.Equal(t, first.ID(), updates[0].DeliveryID())
		assert.Equal(t, second.ID(), updates[1].DeliveryID())
		for _, u := range updates {
			assert.True(t, u.IsOverdue())
			assert.Equal(t, at, u.TakenAt())
		}
		reader.AssertExpectations(t)
	})

	t.Run("drops deliveries that are not overdue at the instant", func(t *testing.T) {
		c := newCourier(t, -25.96, 32.57)
		d := newDelivery(t, c, mustLocation(t, -25.92, 32.60))
		at := d.EstimatedArrival()

		query, err := queries.NewGetOverdueDeliveriesQuery(at)
		require.NoError(t, err)

		reader := new(MockDeliveryReader)
		reader.On("GetOverdue", mock.Anything, at).Return([]*delivery.Delivery{d}, nil)

		updates, err := queries.NewGetOverdueDeliveriesQueryHandler(reader).Handle(t.Context(), query)

		require.NoError(t, err)
		assert.Empty(t, updates)
	})

	t.Run("repository failure", func(t *testing.T) {
		query, err := queries.NewGetOverdueDeliveriesQuery(time.Now())
		require.NoError(t, err)
		boom := errors.New("connection reset")

		reader := new(MockDeliveryReader)
		reader.On("GetOverdue", mock.Anything, mock.Anything).Return(nil, boom)

		_, err = queries.NewGetOverdueDeliveriesQueryHandler(reader).Handle(t.Context(), query)

		require.ErrorIs(t, err, boom)
	})
}
