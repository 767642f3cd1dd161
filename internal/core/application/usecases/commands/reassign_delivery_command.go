package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrReassignDeliveryCommandIsNotConstructed = errors.New(
	"ReassignDeliveryCommand must be created via NewReassignDeliveryCommand constructor",
)

// ReassignDeliveryCommand hands an active delivery to another courier.
type ReassignDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	courierID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewReassignDeliveryCommand(deliveryID, courierID kernel.UUID) (ReassignDeliveryCommand, error) {
	command := ReassignDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setDeliveryID(deliveryID),
		command.setCourierID(courierID),
	); err != nil {
		return ReassignDeliveryCommand{}, err
	}

	return command, nil
}

func (c ReassignDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrReassignDeliveryCommandIsNotConstructed)
}

func (c ReassignDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// CourierID is the courier that takes over the delivery.
func (c ReassignDeliveryCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c *ReassignDeliveryCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.deliveryID = id
	return nil
}

func (c *ReassignDeliveryCommand) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.courierID = id
	return nil
}
