package commands_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

func TestNewUpdateDeliveryStatusCommand(t *testing.T) {
	id := kernel.NewUUID()

	cmd, err := commands.NewUpdateDeliveryStatusCommand(id, delivery.StatusInTransit, "  parcel sealed ")
	require.NoError(t, err)
	assert.Equal(t, id, cmd.DeliveryID())
	assert.Equal(t, delivery.StatusInTransit, cmd.Status())
	assert.Equal(t, "parcel sealed", cmd.Notes())

	_, err = commands.NewUpdateDeliveryStatusCommand(id, delivery.StatusUnknown, "")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	var zero commands.UpdateDeliveryStatusCommand
	require.ErrorIs(t, zero.Validate(), commands.ErrUpdateDeliveryStatusCommandIsNotConstructed)
}

func TestUpdateDeliveryStatusCommandHandler_Handle(t *testing.T) {
	t.Run("intermediate status keeps the load", func(t *testing.T) {
		c := newTestCourier(t)
		del := newAssignedDelivery(t, c)
		m := newDeliveryMocks(del, nil)
		m.expectSaved(del, nil)
		cmd, err := commands.NewUpdateDeliveryStatusCommand(del.ID(), delivery.StatusEnRouteToPickup, "")
		require.NoError(t, err)

		err = commands.NewUpdateDeliveryStatusCommandHandler(m.factory, newDispatcher()).Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, delivery.StatusEnRouteToPickup, del.Status())
		assert.InDelta(t, 0.2, del.Progress(), 1e-9)
		assert.Equal(t, 1, c.Load().Orders)
		m.courierRepo.AssertNotCalled(t, "GetForUpdate", mock.Anything, mock.Anything)
		m.assert(t)
	})

	t.Run("delivered releases the courier", func(t *testing.T) {
		c := newTestCourier(t)
		del := newAssignedDelivery(t, c)
		advance(t, del, delivery.StatusEnRouteToPickup, delivery.StatusArrivedAtPickup,
			delivery.StatusInTransit, delivery.StatusArrivedAtDelivery)
		m := newDeliveryMocks(del, c)
		m.expectSaved(del, c)
		cmd, err := commands.NewUpdateDeliveryStatusCommand(del.ID(), delivery.StatusDelivered, "left at the door")
		require.NoError(t, err)

		err = commands.NewUpdateDeliveryStatusCommandHandler(m.factory, newDispatcher()).Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, delivery.StatusDelivered, del.Status())
		assert.Equal(t, courier.Load{}, c.Load())
		m.assert(t)
	})

	t.Run("failed releases the courier and keeps progress", func(t *testing.T) {
		c := newTestCourier(t)
		del := newAssignedDelivery(t, c)
		advance(t, del, delivery.StatusEnRouteToPickup, delivery.StatusArrivedAtPickup, delivery.StatusInTransit)
		m := newDeliveryMocks(del, c)
		m.expectSaved(del, c)
		cmd, err := commands.NewUpdateDeliveryStatusCommand(del.ID(), delivery.StatusFailed, "address not found")
		require.NoError(t, err)

		err = commands.NewUpdateDeliveryStatusCommandHandler(m.factory, newDispatcher()).Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.InDelta(t, 0.6, del.Progress(), 1e-9)
		assert.Equal(t, courier.Load{}, c.Load())
	})

	t.Run("skipping a step is refused", func(t *testing.T) {
		c := newTestCourier(t)
		del := newAssignedDelivery(t, c)
		m := newDeliveryMocks(del, nil)
		cmd, err := commands.NewUpdateDeliveryStatusCommand(del.ID(), delivery.StatusDelivered, "")
		require.NoError(t, err)

		err = commands.NewUpdateDeliveryStatusCommandHandler(m.factory, newDispatcher()).Handle(t.Context(), cmd)

		var stateErr *errs.InvalidStateTransitionError
		require.ErrorAs(t, err, &stateErr)
		assert.Equal(t, delivery.StatusAssigned, del.Status())
		m.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("persist failure", func(t *testing.T) {
		c := newTestCourier(t)
		del := newAssignedDelivery(t, c)
		m := newDeliveryMocks(del, nil)
		m.deliveryRepo.On("Update", mock.Anything, del).Return(errors.New("update error")).Once()
		cmd, err := commands.NewUpdateDeliveryStatusCommand(del.ID(), delivery.StatusEnRouteToPickup, "")
		require.NoError(t, err)

		err = commands.NewUpdateDeliveryStatusCommandHandler(m.factory, newDispatcher()).Handle(t.Context(), cmd)

		require.EqualError(t, err, "update error")
		m.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})
}
