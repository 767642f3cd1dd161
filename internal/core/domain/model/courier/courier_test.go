package courier_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

func TestNewCourier(t *testing.T) {
	t.Run("should create available courier with empty load", func(t *testing.T) {
		c := newTestCourier(t, courier.DefaultCapacity())

		require.NoError(t, c.Validate())
		assert.Equal(t, courier.StatusAvailable, c.Status())
		assert.Equal(t, courier.Load{}, c.Load())
		assert.Zero(t, c.Utilization())
		assert.False(t, c.CreatedAt().IsZero())
	})

	t.Run("should join all validation errors", func(t *testing.T) {
		_, err := courier.NewCourier(kernel.UUID{}, kernel.UUID{}, " ", "", "", courier.Capacity{}, kernel.Location{})

		require.Error(t, err)
		require.ErrorIs(t, err, courier.ErrNameIsRequired)
		require.ErrorIs(t, err, courier.ErrCapacityIsNotConstructed)
		assert.Contains(t, err.Error(), "tenantID")
		assert.Contains(t, err.Error(), "location")
	})

	t.Run("zero courier fails validation", func(t *testing.T) {
		c := &courier.Courier{}
		require.ErrorIs(t, c.Validate(), courier.ErrCourierIsNotConstructed)
	})
}

func TestRestoreCourier(t *testing.T) {
	loc := mustLocation(t, -25.9, 32.6)
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("should keep stored state", func(t *testing.T) {
		c, err := courier.RestoreCourier(kernel.NewUUID(), kernel.NewUUID(), "Rui", "", "BICYCLE",
			courier.DefaultCapacity(), courier.StatusOnBreak, loc, courier.Load{Orders: 2, Weight: 900, Volume: 100},
			created, created)

		require.NoError(t, err)
		assert.Equal(t, courier.StatusOnBreak, c.Status())
		assert.Equal(t, 2, c.Load().Orders)
		assert.Equal(t, created, c.UpdatedAt())
	})

	t.Run("should reject negative load", func(t *testing.T) {
		_, err := courier.RestoreCourier(kernel.NewUUID(), kernel.NewUUID(), "Rui", "", "",
			courier.DefaultCapacity(), courier.StatusAvailable, loc, courier.Load{Orders: -1},
			created, created)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestCourier_CanAcceptDelivery(t *testing.T) {
	capacity, err := courier.NewCapacity(2, 1000, 1000)
	require.NoError(t, err)

	t.Run("accepts while everything fits", func(t *testing.T) {
		c := newTestCourier(t, capacity)

		assert.True(t, c.CanAcceptDelivery(1000, 1000))
		assert.False(t, c.CanAcceptDelivery(1001, 10))
		assert.False(t, c.CanAcceptDelivery(10, 1001))
	})

	t.Run("refuses when order slots are used up", func(t *testing.T) {
		c := newTestCourier(t, capacity)
		require.NoError(t, c.AssignDelivery(10, 10))
		require.NoError(t, c.AssignDelivery(10, 10))

		assert.False(t, c.CanAcceptDelivery(0, 0))
	})

	t.Run("refuses when not available", func(t *testing.T) {
		c := newTestCourier(t, capacity)
		require.NoError(t, c.UpdateStatus(courier.StatusOnBreak))

		assert.False(t, c.CanAcceptDelivery(1, 1))
	})
}

func TestCourier_AssignAndComplete(t *testing.T) {
	t.Run("complete reverses assign", func(t *testing.T) {
		c := newTestCourier(t, courier.DefaultCapacity())
		require.NoError(t, c.AssignDelivery(500, 700))
		before := c.Load()

		require.NoError(t, c.AssignDelivery(1200, 3000))
		require.NoError(t, c.CompleteDelivery(1200, 3000))

		assert.Equal(t, before, c.Load())
	})

	t.Run("assign does not re-check capacity", func(t *testing.T) {
		capacity, err := courier.NewCapacity(1, 100, 100)
		require.NoError(t, err)
		c := newTestCourier(t, capacity)

		require.NoError(t, c.AssignDelivery(5000, 5000))

		assert.Equal(t, courier.Load{Orders: 1, Weight: 5000, Volume: 5000}, c.Load())
		assert.Greater(t, c.Utilization(), 1.0)
	})

	t.Run("complete floors at zero", func(t *testing.T) {
		c := newTestCourier(t, courier.DefaultCapacity())
		require.NoError(t, c.AssignDelivery(100, 100))

		require.NoError(t, c.CompleteDelivery(999, 999))
		require.NoError(t, c.CompleteDelivery(1, 1))

		assert.Equal(t, courier.Load{}, c.Load())
	})

	t.Run("rejects negative parcel", func(t *testing.T) {
		c := newTestCourier(t, courier.DefaultCapacity())

		err := c.AssignDelivery(-1, 10)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Equal(t, courier.Load{}, c.Load())
	})

	t.Run("becomes busy when full and available when freed", func(t *testing.T) {
		capacity, err := courier.NewCapacity(2, 10_000, 10_000)
		require.NoError(t, err)
		c := newTestCourier(t, capacity)

		require.NoError(t, c.AssignDelivery(10, 10))
		assert.Equal(t, courier.StatusAvailable, c.Status())

		require.NoError(t, c.AssignDelivery(10, 10))
		assert.Equal(t, courier.StatusBusy, c.Status())

		require.NoError(t, c.CompleteDelivery(10, 10))
		assert.Equal(t, courier.StatusAvailable, c.Status())
	})
}

func TestCourier_RemainingCapacity(t *testing.T) {
	c := newTestCourier(t, courier.DefaultCapacity())
	require.NoError(t, c.AssignDelivery(4000, 20_000))

	remaining := c.RemainingCapacity()

	assert.Equal(t, 4, remaining.MaxOrders())
	assert.Equal(t, 6000, remaining.MaxWeight())
	assert.Equal(t, 30_000, remaining.MaxVolume())
	assert.InDelta(t, 0.4, c.Utilization(), 1e-9)
}

func TestCourier_UpdateStatus(t *testing.T) {
	t.Run("follows the transition table", func(t *testing.T) {
		c := newTestCourier(t, courier.DefaultCapacity())

		require.NoError(t, c.UpdateStatus(courier.StatusOffDuty))
		err := c.UpdateStatus(courier.StatusOnBreak)

		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
		assert.Equal(t, courier.StatusOffDuty, c.Status())
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		c := newTestCourier(t, courier.DefaultCapacity())

		require.NoError(t, c.UpdateStatus(courier.StatusAvailable))
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		c := newTestCourier(t, courier.DefaultCapacity())

		require.ErrorIs(t, c.UpdateStatus(courier.StatusUnknown), errs.ErrValueIsInvalid)
	})
}

func TestCourier_UpdateLocation(t *testing.T) {
	c := newTestCourier(t, courier.DefaultCapacity())
	next := mustLocation(t, -25.95, 32.59)

	require.NoError(t, c.UpdateLocation(next))
	assert.Equal(t, next, c.Location())

	require.ErrorIs(t, c.UpdateLocation(kernel.Location{}), errs.ErrValueIsRequired)
	assert.Equal(t, next, c.Location())
}

func newTestCourier(t *testing.T, capacity courier.Capacity) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(kernel.NewUUID(), kernel.NewUUID(), "Ana", "+258840000000", "MOTORCYCLE",
		capacity, mustLocation(t, -25.9692, 32.5732))
	require.NoError(t, err)
	return c
}

func mustLocation(t *testing.T, lat, lon float64) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lon)
	require.NoError(t, err)
	return loc
}
