package jobs_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/jobs"
)

type MockPublishHandler struct {
	mock.Mock
}

func (m *MockPublishHandler) Handle(ctx context.Context, cmd commands.PublishDomainEventsCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

type MockOverdueHandler struct {
	mock.Mock
}

func (m *MockOverdueHandler) Handle(ctx context.Context, query queries.GetOverdueDeliveriesQuery) ([]delivery.TrackingUpdate, error) {
	args := m.Called(ctx, query)
	if v := args.Get(0); v != nil {
		return v.([]delivery.TrackingUpdate), args.Error(1)
	}
	return nil, args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOutboxRelayJob_Run(t *testing.T) {
	t.Run("publishes one batch", func(t *testing.T) {
		var logs bytes.Buffer
		handler := new(MockPublishHandler)
		handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.PublishDomainEventsCommand) bool {
			return cmd.BatchSize() == 50
		})).Return(3, nil).Once()

		jobs.NewOutboxRelayJob(handler, "* * * * * *", 50, slog.New(slog.NewTextHandler(&logs, nil))).Run(t.Context())

		handler.AssertExpectations(t)
		assert.Contains(t, logs.String(), "published=3")
	})

	t.Run("logs a failed batch", func(t *testing.T) {
		var logs bytes.Buffer
		handler := new(MockPublishHandler)
		handler.On("Handle", mock.Anything, mock.Anything).Return(1, errors.New("broker down")).Once()

		jobs.NewOutboxRelayJob(handler, "* * * * * *", 10, slog.New(slog.NewTextHandler(&logs, nil))).Run(t.Context())

		assert.Contains(t, logs.String(), "level=ERROR")
		assert.Contains(t, logs.String(), "broker down")
	})

	t.Run("invalid batch size never calls the handler", func(t *testing.T) {
		handler := new(MockPublishHandler)

		jobs.NewOutboxRelayJob(handler, "* * * * * *", 0, discardLogger()).Run(t.Context())

		handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestOverdueWatchJob_Run(t *testing.T) {
	c, err := courier.NewCourier(kernel.NewUUID(), kernel.NewUUID(), "Ana", "", "BICYCLE",
		courier.DefaultCapacity(), mustLocation(t, -25.96, 32.57))
	require.NoError(t, err)
	d, err := services.NewDispatcher(services.NewRouteOptimizer(services.NewDistanceCalculator(), 1)).Assign(services.Assignment{
		DeliveryID: kernel.NewUUID(),
		TenantID:   c.TenantID(),
		OrderID:    kernel.NewUUID(),
		Pickup:     c.Location(),
		Dropoff:    mustLocation(t, -25.95, 32.58),
		Weight:     100,
		Volume:     100,
	}, c)
	require.NoError(t, err)
	late := delivery.NewTrackingUpdate(d, d.EstimatedArrival().Add(10*time.Minute))

	t.Run("warns for each overdue delivery", func(t *testing.T) {
		var logs bytes.Buffer
		handler := new(MockOverdueHandler)
		handler.On("Handle", mock.Anything, mock.Anything).Return([]delivery.TrackingUpdate{late}, nil).Once()

		count := jobs.NewOverdueWatchJob(handler, "0 * * * * *", slog.New(slog.NewTextHandler(&logs, nil))).Run(t.Context())

		assert.Equal(t, 1, count)
		assert.Contains(t, logs.String(), "level=WARN")
		assert.Contains(t, logs.String(), d.ID().String())
		assert.Contains(t, logs.String(), "late_by=10m0s")
	})

	t.Run("handler failure", func(t *testing.T) {
		var logs bytes.Buffer
		handler := new(MockOverdueHandler)
		handler.On("Handle", mock.Anything, mock.Anything).Return(nil, errors.New("timeout")).Once()

		count := jobs.NewOverdueWatchJob(handler, "0 * * * * *", slog.New(slog.NewTextHandler(&logs, nil))).Run(t.Context())

		assert.Zero(t, count)
		assert.Contains(t, logs.String(), "level=ERROR")
	})
}

func TestJobManager(t *testing.T) {
	t.Run("starts and stops", func(t *testing.T) {
		relay := jobs.NewOutboxRelayJob(new(MockPublishHandler), "0 0 0 1 1 *", 10, discardLogger())
		watch := jobs.NewOverdueWatchJob(new(MockOverdueHandler), "0 0 0 1 1 *", discardLogger())
		manager := jobs.NewJobManager(relay, watch)

		require.NoError(t, manager.StartAll())
		manager.StopAll()
	})

	t.Run("invalid schedule", func(t *testing.T) {
		relay := jobs.NewOutboxRelayJob(new(MockPublishHandler), "0 0 0 1 1 *", 10, discardLogger())
		watch := jobs.NewOverdueWatchJob(new(MockOverdueHandler), "every minute", discardLogger())

		err := jobs.NewJobManager(relay, watch).StartAll()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "overdue watch")
	})
}

func mustLocation(t *testing.T, lat, lon float64) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lon)
	require.NoError(t, err)
	return loc
}
