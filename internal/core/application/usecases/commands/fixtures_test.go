package commands_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
)

var tenantID = kernel.NewUUID()

func mustLocation(t *testing.T, lat, lon float64) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lon)
	require.NoError(t, err)
	return loc
}

func newDispatcher() services.Dispatcher {
	return services.NewDispatcher(services.NewRouteOptimizer(services.NewDistanceCalculator(), 1))
}

func newTestCourier(t *testing.T) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(kernel.NewUUID(), tenantID, "Ana", "+258841234567", "motorbike",
		courier.DefaultCapacity(), mustLocation(t, -25.95, 32.58))
	require.NoError(t, err)
	return c
}

// newAssignedDelivery returns a delivery already booked on c.
func newAssignedDelivery(t *testing.T, c *courier.Courier) *delivery.Delivery {
	t.Helper()
	del, err := newDispatcher().Assign(services.Assignment{
		DeliveryID: kernel.NewUUID(),
		TenantID:   tenantID,
		OrderID:    kernel.NewUUID(),
		Pickup:     mustLocation(t, -25.96, 32.57),
		Dropoff:    mustLocation(t, -25.92, 32.60),
		Weight:     2000,
		Volume:     4000,
	}, c)
	require.NoError(t, err)
	del.ClearDomainEvents()
	return del
}

func advance(t *testing.T, del *delivery.Delivery, statuses ...delivery.Status) {
	t.Helper()
	for _, s := range statuses {
		require.NoError(t, del.UpdateStatus(s, ""))
	}
}
