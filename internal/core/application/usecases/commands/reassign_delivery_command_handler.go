package commands

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// ReassignDeliveryCommandHandler moves a delivery and its booked load from
// one courier to another in a single transaction.
//
// The delivery row is locked first, then both courier rows in ascending ID
// order, so two opposite reassignments between the same couriers cannot
// deadlock.
type ReassignDeliveryCommandHandler struct {
	uowFactory UoWFactory
	dispatcher services.Dispatcher
	timeouts   Timeouts
}

func NewReassignDeliveryCommandHandler(
	uowFactory UoWFactory,
	dispatcher services.Dispatcher,
	timeouts Timeouts,
) ReassignDeliveryCommandHandler {
	return ReassignDeliveryCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		timeouts:   timeouts,
	}
}

func (h ReassignDeliveryCommandHandler) Handle(ctx context.Context, cmd ReassignDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
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

	del, err := deliveryRepo.GetForUpdate(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}
	if del.CourierID().IsEqual(cmd.CourierID()) {
		return errs.NewInvalidOperationError("reassign", "delivery is already assigned to this courier")
	}

	from, to, err := lockPair(ctx, courierRepo, del.CourierID(), cmd.CourierID())
	if err != nil {
		return err
	}

	if err = h.dispatcher.Reassign(del, from, to); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, del); err != nil {
		return err
	}
	if err = courierRepo.Update(ctx, from); err != nil {
		return err
	}
	if err = courierRepo.Update(ctx, to); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// lockPair locks two distinct couriers in ascending ID order and returns them
// in argument order.
func lockPair(
	ctx context.Context,
	repo ports.CourierRepository,
	firstID, secondID kernel.UUID,
) (*courier.Courier, *courier.Courier, error) {
	swapped := firstID.Compare(secondID) > 0
	if swapped {
		firstID, secondID = secondID, firstID
	}

	first, err := repo.GetForUpdate(ctx, firstID)
	if err != nil {
		return nil, nil, err
	}
	second, err := repo.GetForUpdate(ctx, secondID)
	if err != nil {
		return nil, nil, err
	}

	if swapped {
		return second, first, nil
	}
	return first, second, nil
}
