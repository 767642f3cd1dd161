package route_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/pkg/errs"
)

func TestWaypoint(t *testing.T) {
	loc := mustLocation(t, -25.9692, 32.5732)

	t.Run("delivery waypoint requires a stop", func(t *testing.T) {
		w, err := route.DeliveryWaypoint(loc, 5*time.Minute, "front desk")

		require.NoError(t, err)
		assert.True(t, w.IsDelivery())
		assert.True(t, w.RequiresStop())
		assert.Equal(t, 5*time.Minute, w.StopDuration())
		assert.Equal(t, "front desk", w.Description())
	})

	t.Run("start waypoint does not require a stop", func(t *testing.T) {
		w, err := route.StartWaypoint(loc)

		require.NoError(t, err)
		assert.False(t, w.RequiresStop())
		assert.True(t, w.Type().IsTerminal())
	})

	t.Run("equality by content", func(t *testing.T) {
		a, err := route.IntermediateWaypoint(loc)
		require.NoError(t, err)
		b, err := route.IntermediateWaypoint(loc)
		require.NoError(t, err)
		c, err := route.EndWaypoint(loc)
		require.NoError(t, err)

		assert.Equal(t, a, b)
		assert.NotEqual(t, a, c)
	})

	t.Run("rejects negative stop", func(t *testing.T) {
		_, err := route.DeliveryWaypoint(loc, -time.Second, "")

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("rejects unknown type and missing location together", func(t *testing.T) {
		_, err := route.NewWaypoint(kernel.Location{}, route.WaypointTypeUnknown, 0, "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestWaypointType(t *testing.T) {
	tests := []struct {
		wt       route.WaypointType
		stop     bool
		terminal bool
	}{
		{route.WaypointTypeStart, false, true},
		{route.WaypointTypeIntermediate, true, false},
		{route.WaypointTypeDelivery, true, false},
		{route.WaypointTypeEnd, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.wt.String(), func(t *testing.T) {
			assert.Equal(t, tt.stop, tt.wt.IsStopPoint())
			assert.Equal(t, tt.terminal, tt.wt.IsTerminal())

			parsed, err := route.ParseWaypointType(tt.wt.String())
			require.NoError(t, err)
			assert.Equal(t, tt.wt, parsed)
		})
	}

	_, err := route.ParseWaypointType("DETOUR")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
