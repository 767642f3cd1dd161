package commands

import (
	"context"
	"fmt"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// AssignDeliveryCommandHandler turns an order into an ASSIGNED delivery.
//
// The selection policy runs first, outside the transaction and bounded by
// Timeouts.Selection. The chosen courier is then re-read with a row lock and
// the dispatcher re-checks capacity on that fresh copy, so two orders racing
// for the last slot of one courier cannot both win: the loser gets
// services.ErrCourierCannotAccept.
type AssignDeliveryCommandHandler struct {
	uowFactory UoWFactory
	selector   ports.CourierSelector
	dispatcher services.Dispatcher
	timeouts   Timeouts
}

func NewAssignDeliveryCommandHandler(
	uowFactory UoWFactory,
	selector ports.CourierSelector,
	dispatcher services.Dispatcher,
	timeouts Timeouts,
) AssignDeliveryCommandHandler {
	return AssignDeliveryCommandHandler{
		uowFactory: uowFactory,
		selector:   selector,
		dispatcher: dispatcher,
		timeouts:   timeouts,
	}
}

// Handle selects a courier and persists the new delivery together with the
// courier's booked load.
// Returns ports.ErrNoCourierAvailable when the policy finds nobody.
func (h AssignDeliveryCommandHandler) Handle(ctx context.Context, cmd AssignDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	candidate, err := h.selectCourier(ctx, cmd)
	if err != nil {
		return err
	}

	ctx, cancel := withTimeout(ctx, h.timeouts.Persistence)
	defer cancel()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	deliveryRepo := uow.DeliveryRepository()

	c, err := courierRepo.GetForUpdate(ctx, candidate.ID())
	if err != nil {
		return err
	}

	del, err := h.dispatcher.Assign(services.Assignment{
		DeliveryID: cmd.DeliveryID(),
		TenantID:   cmd.TenantID(),
		OrderID:    cmd.OrderID(),
		Pickup:     cmd.Pickup(),
		Dropoff:    cmd.Dropoff(),
		Weight:     cmd.Weight(),
		Volume:     cmd.Volume(),
	}, c)
	if err != nil {
		return err
	}

	if err = deliveryRepo.Add(ctx, del); err != nil {
		return err
	}

	if err = courierRepo.Update(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h AssignDeliveryCommandHandler) selectCourier(ctx context.Context, cmd AssignDeliveryCommand) (*courier.Courier, error) {
	ctx, cancel := withTimeout(ctx, h.timeouts.Selection)
	defer cancel()

	c, err := h.selector.Select(ctx, ports.SelectionRequest{
		TenantID: cmd.TenantID(),
		Pickup:   cmd.Pickup(),
		Weight:   cmd.Weight(),
		Volume:   cmd.Volume(),
	})
	if err != nil {
		return nil, fmt.Errorf("select courier: %w", err)
	}
	return c, nil
}
