package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
)

func TestNewUpdateDeliveryLocationCommand(t *testing.T) {
	_, err := commands.NewUpdateDeliveryLocationCommand(kernel.NewUUID(), kernel.Location{})
	require.ErrorIs(t, err, kernel.ErrLocationIsNotConstructed)

	var zero commands.UpdateDeliveryLocationCommand
	require.ErrorIs(t, zero.Validate(), commands.ErrUpdateDeliveryLocationCommandIsNotConstructed)
}

func TestUpdateDeliveryLocationCommandHandler_Handle(t *testing.T) {
	t.Run("moves delivery and courier", func(t *testing.T) {
		c := newTestCourier(t)
		del := newAssignedDelivery(t, c)
		advance(t, del, delivery.StatusEnRouteToPickup, delivery.StatusArrivedAtPickup, delivery.StatusInTransit)
		eventsBefore := len(del.Events())
		position := mustLocation(t, -25.94, 32.59)
		m := newDeliveryMocks(del, c)
		m.expectSaved(del, c)
		cmd, err := commands.NewUpdateDeliveryLocationCommand(del.ID(), position)
		require.NoError(t, err)

		err = commands.NewUpdateDeliveryLocationCommandHandler(m.factory).Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, position, del.CurrentLocation())
		assert.Equal(t, position, c.Location())
		require.Len(t, del.Events(), eventsBefore+1)
		assert.Equal(t, delivery.EventTypeLocationUpdated, del.Events()[eventsBefore].Type())
		m.assert(t)
	})

	t.Run("finished delivery still records the position", func(t *testing.T) {
		c := newTestCourier(t)
		del := newAssignedDelivery(t, c)
		advance(t, del, delivery.StatusEnRouteToPickup, delivery.StatusArrivedAtPickup,
			delivery.StatusInTransit, delivery.StatusArrivedAtDelivery, delivery.StatusDelivered)
		eta := del.EstimatedArrival()
		position := mustLocation(t, -25.94, 32.59)
		m := newDeliveryMocks(del, c)
		m.expectSaved(del, c)
		cmd, err := commands.NewUpdateDeliveryLocationCommand(del.ID(), position)
		require.NoError(t, err)

		err = commands.NewUpdateDeliveryLocationCommandHandler(m.factory).Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, delivery.StatusDelivered, del.Status())
		assert.Equal(t, position, del.CurrentLocation())
		assert.Equal(t, position, c.Location())
		assert.Equal(t, eta, del.EstimatedArrival())
		m.assert(t)
	})
}
