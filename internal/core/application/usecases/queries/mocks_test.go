package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/core/domain/services"
)

type MockCourierReader struct {
	mock.Mock
}

func (m *MockCourierReader) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*courier.Courier), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockDeliveryReader struct {
	mock.Mock
}

func (m *MockDeliveryReader) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	if d := args.Get(0); d != nil {
		return d.(*delivery.Delivery), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDeliveryReader) GetActiveByCourier(ctx context.Context, courierID kernel.UUID) ([]*delivery.Delivery, error) {
	args := m.Called(ctx, courierID)
	if ds := args.Get(0); ds != nil {
		return ds.([]*delivery.Delivery), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDeliveryReader) GetOverdue(ctx context.Context, now time.Time) ([]*delivery.Delivery, error) {
	args := m.Called(ctx, now)
	if ds := args.Get(0); ds != nil {
		return ds.([]*delivery.Delivery), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockTrafficProvider struct {
	mock.Mock
}

func (m *MockTrafficProvider) Current(ctx context.Context) (route.TrafficConditions, error) {
	args := m.Called(ctx)
	return args.Get(0).(route.TrafficConditions), args.Error(1)
}

var tenantID = kernel.NewUUID()

func mustLocation(t *testing.T, lat, lon float64) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lon)
	require.NoError(t, err)
	return loc
}

func newOptimizer() services.RouteOptimizer {
	return services.NewRouteOptimizer(services.NewDistanceCalculator(), 7)
}

func newCourier(t *testing.T, lat, lon float64) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(kernel.NewUUID(), tenantID, "Ana", "+258841234567", "MOTORCYCLE",
		courier.DefaultCapacity(), mustLocation(t, lat, lon))
	require.NoError(t, err)
	return c
}

// newDelivery books a delivery to dropoff on c.
func newDelivery(t *testing.T, c *courier.Courier, dropoff kernel.Location) *delivery.Delivery {
	t.Helper()
	d, err := services.NewDispatcher(newOptimizer()).Assign(services.Assignment{
		DeliveryID: kernel.NewUUID(),
		TenantID:   tenantID,
		OrderID:    kernel.NewUUID(),
		Pickup:     c.Location(),
		Dropoff:    dropoff,
		Weight:     1000,
		Volume:     2000,
	}, c)
	require.NoError(t, err)
	d.ClearDomainEvents()
	return d
}
