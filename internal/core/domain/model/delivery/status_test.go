package delivery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/domain/model/delivery"
)

var allStatuses = []delivery.Status{
	delivery.StatusAssigned,
	delivery.StatusEnRouteToPickup,
	delivery.StatusArrivedAtPickup,
	delivery.StatusInTransit,
	delivery.StatusArrivedAtDelivery,
	delivery.StatusDelivered,
	delivery.StatusCancelled,
	delivery.StatusFailed,
}

func TestStatus_CanTransitionTo(t *testing.T) {
	allowed := map[delivery.Status][]delivery.Status{
		delivery.StatusAssigned:          {delivery.StatusEnRouteToPickup, delivery.StatusCancelled},
		delivery.StatusEnRouteToPickup:   {delivery.StatusArrivedAtPickup, delivery.StatusCancelled},
		delivery.StatusArrivedAtPickup:   {delivery.StatusInTransit, delivery.StatusCancelled},
		delivery.StatusInTransit:         {delivery.StatusArrivedAtDelivery, delivery.StatusFailed},
		delivery.StatusArrivedAtDelivery: {delivery.StatusDelivered, delivery.StatusFailed},
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestStatus_Classification(t *testing.T) {
	tests := []struct {
		status      delivery.Status
		active      bool
		terminal    bool
		cancellable bool
	}{
		{delivery.StatusAssigned, true, false, true},
		{delivery.StatusEnRouteToPickup, true, false, true},
		{delivery.StatusArrivedAtPickup, true, false, true},
		{delivery.StatusInTransit, true, false, false},
		{delivery.StatusArrivedAtDelivery, true, false, false},
		{delivery.StatusDelivered, false, true, false},
		{delivery.StatusCancelled, false, true, false},
		{delivery.StatusFailed, false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			assert.Equal(t, tt.active, tt.status.IsActive())
			assert.Equal(t, tt.terminal, tt.status.IsTerminal())
			assert.Equal(t, tt.cancellable, tt.status.CanBeCancelled())
			assert.NotEmpty(t, tt.status.Message())
			require.NoError(t, tt.status.EventType().Validate())
		})
	}
}

func TestActiveStatuses(t *testing.T) {
	var active []delivery.Status
	for _, s := range allStatuses {
		if s.IsActive() {
			active = append(active, s)
		}
	}

	assert.Equal(t, active, delivery.ActiveStatuses())
}

func TestStatus_Progress(t *testing.T) {
	expected := []float64{0, 0.2, 0.4, 0.6, 0.8, 1}
	for i, s := range allStatuses[:6] {
		p, ok := s.Progress()
		require.True(t, ok)
		assert.InDelta(t, expected[i], p, 1e-9, s.String())
	}

	_, ok := delivery.StatusCancelled.Progress()
	assert.False(t, ok)
	_, ok = delivery.StatusFailed.Progress()
	assert.False(t, ok)
}

func TestStatus_Parse(t *testing.T) {
	for _, s := range allStatuses {
		parsed, err := delivery.ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := delivery.ParseStatus("LOST")
	require.Error(t, err)
	require.Error(t, delivery.StatusUnknown.Validate())
}

func TestStatus_EventType(t *testing.T) {
	assert.Equal(t, delivery.EventTypePickedUp, delivery.StatusInTransit.EventType())
	assert.True(t, delivery.EventTypePickedUp.IsMilestone())
	assert.False(t, delivery.EventTypeArrivedAtPickup.IsMilestone())
	assert.True(t, delivery.EventTypeFailed.IsCompletion())
	assert.False(t, delivery.EventTypeReassigned.IsCompletion())
}
