package selection_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dispatch/internal/adapters/out/selection"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

type MockAvailableCouriers struct {
	mock.Mock
}

func (m *MockAvailableCouriers) GetAllAvailable(ctx context.Context, tenantID kernel.UUID) ([]*courier.Courier, error) {
	args := m.Called(ctx, tenantID)
	if cs := args.Get(0); cs != nil {
		return cs.([]*courier.Courier), args.Error(1)
	}
	return nil, args.Error(1)
}

func location(t *testing.T, lat, lon float64) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lon)
	require.NoError(t, err)
	return loc
}

func newCourier(t *testing.T, tenantID kernel.UUID, capacity courier.Capacity, lat, lon float64) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(kernel.NewUUID(), tenantID, "Rider", "+258840000000", "MOTORCYCLE",
		capacity, location(t, lat, lon))
	require.NoError(t, err)
	return c
}

func TestNearestAvailable_Select(t *testing.T) {
	tenantID := kernel.NewUUID()
	dispatcher := services.NewDispatcher(services.NewRouteOptimizer(services.NewDistanceCalculator(), 1))
	pickup := location(t, -25.9692, 32.5732)

	t.Run("closest courier with room wins", func(t *testing.T) {
		small, err := courier.NewCapacity(1, 500, 500)
		require.NoError(t, err)

		tooSmall := newCourier(t, tenantID, small, -25.9692, 32.5733)
		near := newCourier(t, tenantID, courier.DefaultCapacity(), -25.97, 32.58)
		far := newCourier(t, tenantID, courier.DefaultCapacity(), -25.5, 32.9)

		repo := new(MockAvailableCouriers)
		repo.On("GetAllAvailable", mock.Anything, tenantID).
			Return([]*courier.Courier{far, tooSmall, near}, nil)

		got, err := selection.NewNearestAvailable(repo, dispatcher).Select(t.Context(), ports.SelectionRequest{
			TenantID: tenantID,
			Pickup:   pickup,
			Weight:   1000,
			Volume:   1000,
		})

		require.NoError(t, err)
		assert.Equal(t, near.ID(), got.ID())
		repo.AssertExpectations(t)
	})

	t.Run("nobody fits", func(t *testing.T) {
		repo := new(MockAvailableCouriers)
		repo.On("GetAllAvailable", mock.Anything, tenantID).Return([]*courier.Courier{}, nil)

		_, err := selection.NewNearestAvailable(repo, dispatcher).Select(t.Context(), ports.SelectionRequest{
			TenantID: tenantID,
			Pickup:   pickup,
			Weight:   1,
			Volume:   1,
		})

		require.ErrorIs(t, err, ports.ErrNoCourierAvailable)
	})

	t.Run("repository failure", func(t *testing.T) {
		boom := errors.New("connection reset")
		repo := new(MockAvailableCouriers)
		repo.On("GetAllAvailable", mock.Anything, tenantID).Return(nil, boom)

		_, err := selection.NewNearestAvailable(repo, dispatcher).Select(t.Context(), ports.SelectionRequest{
			TenantID: tenantID,
			Pickup:   pickup,
		})

		require.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, ports.ErrNoCourierAvailable)
	})
}
