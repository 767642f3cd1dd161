package commands

import (
	"context"

	"dispatch/internal/core/domain/services"
)

// UpdateDeliveryStatusCommandHandler applies a lifecycle transition. When the
// delivery reaches DELIVERED or FAILED the parcel is released from the
// courier in the same transaction.
type UpdateDeliveryStatusCommandHandler struct {
	uowFactory UoWFactory
	dispatcher services.Dispatcher
}

func NewUpdateDeliveryStatusCommandHandler(
	uowFactory UoWFactory,
	dispatcher services.Dispatcher,
) UpdateDeliveryStatusCommandHandler {
	return UpdateDeliveryStatusCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

func (h UpdateDeliveryStatusCommandHandler) Handle(ctx context.Context, cmd UpdateDeliveryStatusCommand) error {
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

	if err = del.UpdateStatus(cmd.Status(), cmd.Notes()); err != nil {
		return err
	}

	if del.Status().IsTerminal() {
		c, err := courierRepo.GetForUpdate(ctx, del.CourierID())
		if err != nil {
			return err
		}
		if err = h.dispatcher.Release(del, c); err != nil {
			return err
		}
		if err = courierRepo.Update(ctx, c); err != nil {
			return err
		}
	}

	if err = deliveryRepo.Update(ctx, del); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
