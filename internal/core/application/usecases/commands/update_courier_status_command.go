package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateCourierStatusCommandIsNotConstructed = errors.New(
	"UpdateCourierStatusCommand must be created via NewUpdateCourierStatusCommand constructor",
)

// UpdateCourierStatusCommand moves a courier to another availability status,
// for example when a shift ends or a break starts.
type UpdateCourierStatusCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	status    courier.Status

	guard guard.ConstructorGuard
}

func NewUpdateCourierStatusCommand(courierID kernel.UUID, status courier.Status) (UpdateCourierStatusCommand, error) {
	command := UpdateCourierStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setCourierID(courierID),
		command.setStatus(status),
	); err != nil {
		return UpdateCourierStatusCommand{}, err
	}

	return command, nil
}

func (c UpdateCourierStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCourierStatusCommandIsNotConstructed)
}

func (c UpdateCourierStatusCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c UpdateCourierStatusCommand) Status() courier.Status {
	return c.status
}

func (c *UpdateCourierStatusCommand) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.courierID = id
	return nil
}

func (c *UpdateCourierStatusCommand) setStatus(status courier.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.status = status
	return nil
}
