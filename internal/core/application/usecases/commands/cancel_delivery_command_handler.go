package commands

import (
	"context"

	"dispatch/internal/core/domain/services"
)

// CancelDeliveryCommandHandler cancels a delivery and frees the courier's
// booked load.
type CancelDeliveryCommandHandler struct {
	uowFactory UoWFactory
	dispatcher services.Dispatcher
}

func NewCancelDeliveryCommandHandler(uowFactory UoWFactory, dispatcher services.Dispatcher) CancelDeliveryCommandHandler {
	return CancelDeliveryCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

func (h CancelDeliveryCommandHandler) Handle(ctx context.Context, cmd CancelDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	deliveryRepo := uow.DeliveryRepository()

	del, err := deliveryRepo.GetForUpdate(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	if err = del.Cancel(cmd.Reason()); err != nil {
		return err
	}

	c, err := courierRepo.GetForUpdate(ctx, del.CourierID())
	if err != nil {
		return err
	}
	if err = h.dispatcher.Release(del, c); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, del); err != nil {
		return err
	}
	if err = courierRepo.Update(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
