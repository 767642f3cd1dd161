package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

func TestDistanceCalculator(t *testing.T) {
	calc := services.NewDistanceCalculator()
	origin := mustLocation(t, 0, 0)
	near := mustLocation(t, 0.01, 0)
	mid := mustLocation(t, 0.02, 0)
	far := mustLocation(t, 0.05, 0)

	t.Run("road estimate inflates straight line by 1.3", func(t *testing.T) {
		straight, err := calc.StraightLineDistance(origin, far)
		require.NoError(t, err)

		road, err := calc.RoadDistanceEstimate(origin, far)

		require.NoError(t, err)
		assert.InDelta(t, straight.Meters()*1.3, road.Meters(), 0.01)
	})

	t.Run("distances keep destination order", func(t *testing.T) {
		ds, err := calc.DistancesTo(origin, []kernel.Location{far, near, mid})

		require.NoError(t, err)
		require.Len(t, ds, 3)
		assert.True(t, ds[0].IsGreaterThan(ds[2]))
		assert.True(t, ds[1].IsLessThan(ds[2]))
	})

	t.Run("nearest and furthest", func(t *testing.T) {
		idx, loc, err := calc.NearestOf(origin, []kernel.Location{far, mid, near})
		require.NoError(t, err)
		assert.Equal(t, 2, idx)
		assert.Equal(t, near, loc)

		idx, loc, err = calc.FurthestOf(origin, []kernel.Location{mid, far, near})
		require.NoError(t, err)
		assert.Equal(t, 1, idx)
		assert.Equal(t, far, loc)
	})

	t.Run("ties go to the first candidate", func(t *testing.T) {
		north := mustLocation(t, 0.01, 0)
		south := mustLocation(t, -0.01, 0)

		idx, _, err := calc.NearestOf(origin, []kernel.Location{south, north})
		require.NoError(t, err)
		assert.Equal(t, 0, idx)

		idx, _, err = calc.FurthestOf(origin, []kernel.Location{north, south})
		require.NoError(t, err)
		assert.Equal(t, 0, idx)
	})

	t.Run("empty candidates fail", func(t *testing.T) {
		_, _, err := calc.NearestOf(origin, nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, _, err = calc.FurthestOf(origin, []kernel.Location{})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("route distance sums legs", func(t *testing.T) {
		total, err := calc.RouteDistance([]kernel.Location{origin, near, mid})
		require.NoError(t, err)
		direct, err := calc.StraightLineDistance(origin, mid)
		require.NoError(t, err)

		assert.InDelta(t, direct.Meters(), total.Meters(), 0.02)

		_, err = calc.RouteDistance([]kernel.Location{origin})
		require.Error(t, err)
	})

	t.Run("within distance is inclusive", func(t *testing.T) {
		d, err := calc.StraightLineDistance(origin, mid)
		require.NoError(t, err)

		ok, err := calc.WithinDistance(origin, mid, d)
		require.NoError(t, err)
		assert.True(t, ok)

		smaller, err := kernel.NewDistance(d.Meters() - 1)
		require.NoError(t, err)
		ok, err = calc.WithinDistance(origin, mid, smaller)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("within radius filters", func(t *testing.T) {
		radius, err := kernel.NewDistanceFromKilometers(3)
		require.NoError(t, err)

		inside, err := calc.WithinRadius(origin, []kernel.Location{far, near, mid}, radius)

		require.NoError(t, err)
		assert.Equal(t, []kernel.Location{near, mid}, inside)
	})
}

func mustLocation(t *testing.T, lat, lon float64) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lon)
	require.NoError(t, err)
	return loc
}
