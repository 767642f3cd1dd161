package queries_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/pkg/errs"
)

func planningStops(t *testing.T) (kernel.Location, []kernel.Location) {
	t.Helper()
	depot := mustLocation(t, 0, 0)
	return depot, []kernel.Location{
		mustLocation(t, 0.03, 0),
		mustLocation(t, 0.01, 0),
		mustLocation(t, 0.02, 0.01),
		mustLocation(t, 0.04, 0.02),
	}
}

func TestNewPlanRouteQuery(t *testing.T) {
	depot, stops := planningStops(t)

	t.Run("valid with options", func(t *testing.T) {
		limit, err := kernel.NewDistanceFromKilometers(20)
		require.NoError(t, err)

		query, err := queries.NewPlanRouteQuery(depot, stops, depot, 3,
			queries.WithTraffic(),
			queries.WithLimits(limit, time.Hour),
			queries.WithSplit(4),
			queries.WithTimeBudget(30*time.Minute),
		)

		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.True(t, query.ApplyTraffic())
		require.NotNil(t, query.Limits())
		assert.Equal(t, time.Hour, query.Limits().MaxDuration)
		assert.Equal(t, 4, query.MaxWaypoints())
		assert.Equal(t, 30*time.Minute, query.TimeBudget())
	})

	tests := []struct {
		name       string
		start      kernel.Location
		deliveries []kernel.Location
		maxRoutes  int
		opts       []queries.PlanRouteOption
		target     error
	}{
		{"missing start", kernel.Location{}, stops, 1, nil, errs.ErrValueIsRequired},
		{"missing delivery", depot, []kernel.Location{{}}, 1, nil, errs.ErrValueIsRequired},
		{"zero max routes", depot, stops, 0, nil, errs.ErrValueIsOutOfRange},
		{"too many max routes", depot, stops, queries.MaxRouteOptions + 1, nil, errs.ErrValueIsOutOfRange},
		{"too many deliveries", depot, make([]kernel.Location, queries.MaxPlanDeliveries+1), 1, nil, errs.ErrValueIsOutOfRange},
		{"split too small", depot, stops, 1, []queries.PlanRouteOption{queries.WithSplit(2)}, errs.ErrValueIsOutOfRange},
		{"negative budget", depot, stops, 1, []queries.PlanRouteOption{queries.WithTimeBudget(-time.Minute)}, errs.ErrValueIsOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := queries.NewPlanRouteQuery(tt.start, tt.deliveries, depot, tt.maxRoutes, tt.opts...)
			require.ErrorIs(t, err, tt.target)
		})
	}
}

func TestPlanRouteQueryHandler_Handle(t *testing.T) {
	depot, stops := planningStops(t)

	t.Run("options sorted by distance without traffic", func(t *testing.T) {
		traffic := new(MockTrafficProvider)
		query, err := queries.NewPlanRouteQuery(depot, stops, depot, 3)
		require.NoError(t, err)

		response, err := queries.NewPlanRouteQueryHandler(newOptimizer(), traffic).Handle(t.Context(), query)

		require.NoError(t, err)
		require.NotEmpty(t, response.Options)
		assert.LessOrEqual(t, len(response.Options), 3)
		for i := 1; i < len(response.Options); i++ {
			prev := response.Options[i-1].Route.TotalDistance()
			assert.False(t, prev.IsGreaterThan(response.Options[i].Route.TotalDistance()))
		}
		for _, option := range response.Options {
			assert.Nil(t, option.Feasible)
		}
		assert.Nil(t, response.Traffic)
		assert.Nil(t, response.Batches)
		assert.Nil(t, response.WithinBudget)
		traffic.AssertNotCalled(t, "Current", mock.Anything)
	})

	t.Run("traffic rescales every option", func(t *testing.T) {
		heavy, err := route.TypicalTrafficConditions(route.TrafficLevelHeavy, time.Now())
		require.NoError(t, err)
		traffic := new(MockTrafficProvider)
		traffic.On("Current", mock.Anything).Return(heavy, nil).Once()

		plain, err := queries.NewPlanRouteQuery(depot, stops, depot, 2)
		require.NoError(t, err)
		adjusted, err := queries.NewPlanRouteQuery(depot, stops, depot, 2, queries.WithTraffic())
		require.NoError(t, err)

		handler := queries.NewPlanRouteQueryHandler(newOptimizer(), traffic)
		base, err := handler.Handle(t.Context(), plain)
		require.NoError(t, err)
		response, err := handler.Handle(t.Context(), adjusted)
		require.NoError(t, err)

		require.NotNil(t, response.Traffic)
		assert.Equal(t, route.TrafficLevelHeavy, response.Traffic.Level())
		require.Len(t, response.Options, len(base.Options))
		for i, option := range response.Options {
			assert.True(t, option.Route.HasSameSequence(base.Options[i].Route))
			assert.Equal(t, heavy.AdjustDuration(base.Options[i].Route.EstimatedDuration()), option.Route.EstimatedDuration())
		}
		traffic.AssertExpectations(t)
	})

	t.Run("traffic provider failure", func(t *testing.T) {
		boom := errors.New("feed unavailable")
		traffic := new(MockTrafficProvider)
		traffic.On("Current", mock.Anything).Return(route.TrafficConditions{}, boom)

		query, err := queries.NewPlanRouteQuery(depot, stops, depot, 1, queries.WithTraffic())
		require.NoError(t, err)

		_, err = queries.NewPlanRouteQueryHandler(newOptimizer(), traffic).Handle(t.Context(), query)

		require.ErrorIs(t, err, boom)
	})

	t.Run("limits flag feasibility", func(t *testing.T) {
		generous, err := kernel.NewDistanceFromKilometers(1000)
		require.NoError(t, err)
		tight, err := kernel.NewDistanceFromKilometers(1)
		require.NoError(t, err)

		handler := queries.NewPlanRouteQueryHandler(newOptimizer(), new(MockTrafficProvider))

		query, err := queries.NewPlanRouteQuery(depot, stops, depot, 2, queries.WithLimits(generous, 24*time.Hour))
		require.NoError(t, err)
		response, err := handler.Handle(t.Context(), query)
		require.NoError(t, err)
		for _, option := range response.Options {
			require.NotNil(t, option.Feasible)
			assert.True(t, *option.Feasible)
		}

		query, err = queries.NewPlanRouteQuery(depot, stops, depot, 2, queries.WithLimits(tight, 24*time.Hour))
		require.NoError(t, err)
		response, err = handler.Handle(t.Context(), query)
		require.NoError(t, err)
		for _, option := range response.Options {
			require.NotNil(t, option.Feasible)
			assert.False(t, *option.Feasible)
		}
	})

	t.Run("split cuts the best option into batches", func(t *testing.T) {
		end := mustLocation(t, 0.05, 0.05)
		query, err := queries.NewPlanRouteQuery(depot, stops, end, 1, queries.WithSplit(4))
		require.NoError(t, err)

		response, err := queries.NewPlanRouteQueryHandler(newOptimizer(), new(MockTrafficProvider)).Handle(t.Context(), query)

		require.NoError(t, err)
		require.Len(t, response.Batches, 2)
		visited := 0
		for _, batch := range response.Batches {
			assert.LessOrEqual(t, batch.WaypointCount(), 4)
			assert.Equal(t, depot, batch.StartLocation())
			assert.Equal(t, end, batch.EndLocation())
			visited += len(batch.InteriorWaypoints())
		}
		assert.Equal(t, len(stops), visited)
	})

	t.Run("time budget drops the furthest stops", func(t *testing.T) {
		query, err := queries.NewPlanRouteQuery(depot, stops, depot, 1, queries.WithTimeBudget(time.Minute))
		require.NoError(t, err)

		response, err := queries.NewPlanRouteQueryHandler(newOptimizer(), new(MockTrafficProvider)).Handle(t.Context(), query)

		require.NoError(t, err)
		require.NotNil(t, response.WithinBudget)
		assert.Less(t, response.WithinBudget.WaypointCount(), len(stops)+1)
	})
}
