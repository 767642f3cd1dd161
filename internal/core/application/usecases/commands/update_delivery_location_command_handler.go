package commands

import (
	"context"
)

// UpdateDeliveryLocationCommandHandler records a position report on a
// delivery in any status and mirrors it onto the courier, so courier
// selection sees where the courier actually is.
type UpdateDeliveryLocationCommandHandler struct {
	uowFactory UoWFactory
}

func NewUpdateDeliveryLocationCommandHandler(uowFactory UoWFactory) UpdateDeliveryLocationCommandHandler {
	return UpdateDeliveryLocationCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h UpdateDeliveryLocationCommandHandler) Handle(ctx context.Context, cmd UpdateDeliveryLocationCommand) error {
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
	if err = del.UpdateLocation(cmd.Location()); err != nil {
		return err
	}

	c, err := courierRepo.GetForUpdate(ctx, del.CourierID())
	if err != nil {
		return err
	}
	if err = c.UpdateLocation(cmd.Location()); err != nil {
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
