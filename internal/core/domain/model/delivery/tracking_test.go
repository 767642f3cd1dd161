package delivery_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"dispatch/internal/core/domain/model/delivery"
)

func TestNewTrackingUpdate(t *testing.T) {
	now := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

	t.Run("in transit past eta is overdue", func(t *testing.T) {
		d := restoreWithStatus(t, delivery.StatusInTransit, 0.6, now.Add(-5*time.Minute))

		u := delivery.NewTrackingUpdate(d, now)

		assert.True(t, u.IsOverdue())
		assert.Zero(t, u.TimeToArrival())
		assert.Equal(t, "Order picked up and on the way to you", u.StatusMessage())
		assert.InDelta(t, 0.6, u.Progress(), 1e-9)
		assert.Equal(t, d.ID(), u.DeliveryID())
		assert.Equal(t, now, u.TakenAt())
	})

	t.Run("future eta reports time left", func(t *testing.T) {
		d := restoreWithStatus(t, delivery.StatusAssigned, 0, now.Add(25*time.Minute))

		u := delivery.NewTrackingUpdate(d, now)

		assert.False(t, u.IsOverdue())
		assert.Equal(t, 25*time.Minute, u.TimeToArrival())
		assert.Equal(t, "Delivery assigned and ready to start", u.StatusMessage())
	})

	t.Run("recent for sixty seconds", func(t *testing.T) {
		d := restoreWithStatus(t, delivery.StatusAssigned, 0, now)
		u := delivery.NewTrackingUpdate(d, now)

		assert.True(t, u.IsRecent(now.Add(60*time.Second)))
		assert.False(t, u.IsRecent(now.Add(61*time.Second)))
	})
}
