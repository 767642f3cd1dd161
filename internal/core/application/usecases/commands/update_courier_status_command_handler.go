package commands

import (
	"context"
)

// UpdateCourierStatusCommandHandler applies a courier status change under a
// row lock. Transitions not allowed by the courier status table are refused.
type UpdateCourierStatusCommandHandler struct {
	uowFactory CourierUoWFactory
}

func NewUpdateCourierStatusCommandHandler(uowFactory CourierUoWFactory) UpdateCourierStatusCommandHandler {
	return UpdateCourierStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h UpdateCourierStatusCommandHandler) Handle(ctx context.Context, cmd UpdateCourierStatusCommand) error {
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

	c, err := courierRepo.GetForUpdate(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	if err = c.UpdateStatus(cmd.Status()); err != nil {
		return err
	}

	if err = courierRepo.Update(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
