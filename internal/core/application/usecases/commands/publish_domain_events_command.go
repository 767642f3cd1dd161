package commands

import (
	"errors"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrPublishDomainEventsCommandIsNotConstructed = errors.New(
	"PublishDomainEventsCommand must be created via NewPublishDomainEventsCommand constructor",
)

// PublishDomainEventsCommand relays one batch of outbox rows.
type PublishDomainEventsCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewPublishDomainEventsCommand(batchSize int) (PublishDomainEventsCommand, error) {
	if batchSize <= 0 {
		return PublishDomainEventsCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, "+Inf")
	}

	return PublishDomainEventsCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c PublishDomainEventsCommand) Validate() error {
	return c.guard.Validate(ErrPublishDomainEventsCommandIsNotConstructed)
}

func (c PublishDomainEventsCommand) BatchSize() int {
	return c.batchSize
}
