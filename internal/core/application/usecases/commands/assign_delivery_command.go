package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrAssignDeliveryCommandIsNotConstructed = errors.New(
	"AssignDeliveryCommand must be created via NewAssignDeliveryCommand constructor",
)

// AssignDeliveryCommand asks the engine to pick a courier for an order and
// start a delivery between its pickup and drop-off.
//
// Example:
//
//	cmd, err := NewAssignDeliveryCommand(tenantID, orderID, pickup, dropoff, 1500, 3000)
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return err
//	}
//	fmt.Printf("delivery %s assigned", cmd.DeliveryID())
type AssignDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	tenantID   kernel.UUID
	orderID    kernel.UUID
	pickup     kernel.Location
	dropoff    kernel.Location
	weight     int
	volume     int

	guard guard.ConstructorGuard
}

// NewAssignDeliveryCommand validates the order data and generates the
// delivery ID. Weight is in grams and volume in cubic centimeters.
func NewAssignDeliveryCommand(
	tenantID kernel.UUID,
	orderID kernel.UUID,
	pickup kernel.Location,
	dropoff kernel.Location,
	weight int,
	volume int,
) (AssignDeliveryCommand, error) {
	command := AssignDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setDeliveryID(kernel.NewUUID()),
		command.setTenantID(tenantID),
		command.setOrderID(orderID),
		command.setPickup(pickup),
		command.setDropoff(dropoff),
		command.setParcel(weight, volume),
	); err != nil {
		return AssignDeliveryCommand{}, err
	}

	return command, nil
}

func (c AssignDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAssignDeliveryCommandIsNotConstructed)
}

func (c AssignDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

func (c AssignDeliveryCommand) TenantID() kernel.UUID {
	return c.tenantID
}

func (c AssignDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AssignDeliveryCommand) Pickup() kernel.Location {
	return c.pickup
}

func (c AssignDeliveryCommand) Dropoff() kernel.Location {
	return c.dropoff
}

func (c AssignDeliveryCommand) Weight() int {
	return c.weight
}

func (c AssignDeliveryCommand) Volume() int {
	return c.volume
}

func (c *AssignDeliveryCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.deliveryID = id
	return nil
}

func (c *AssignDeliveryCommand) setTenantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantID", err)
	}

	c.tenantID = id
	return nil
}

func (c *AssignDeliveryCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}

	c.orderID = id
	return nil
}

func (c *AssignDeliveryCommand) setPickup(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("pickup", err)
	}

	c.pickup = location
	return nil
}

func (c *AssignDeliveryCommand) setDropoff(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("dropoff", err)
	}

	c.dropoff = location
	return nil
}

func (c *AssignDeliveryCommand) setParcel(weight, volume int) error {
	var err error
	if weight < 0 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("weight", weight, 0, "+Inf"))
	}
	if volume < 0 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("volume", volume, 0, "+Inf"))
	}
	if err != nil {
		return err
	}

	c.weight = weight
	c.volume = volume
	return nil
}
