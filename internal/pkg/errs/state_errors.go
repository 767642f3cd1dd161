package errs

import "fmt"

// InvalidStateTransitionError is returned when a state machine refuses to move
// From one state To another. Retrying with the same target will fail again.
type InvalidStateTransitionError struct {
	Entity string
	From   string
	To     string
}

func NewInvalidStateTransitionError(entity, from, to string) *InvalidStateTransitionError {
	return &InvalidStateTransitionError{Entity: entity, From: from, To: to}
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("%s: %s cannot move from %s to %s", ErrInvalidStateTransition, e.Entity, e.From, e.To)
}

func (e *InvalidStateTransitionError) Unwrap() error {
	return ErrInvalidStateTransition
}

// InvalidOperationError is returned when an operation is not allowed in the
// current state of an aggregate, e.g. cancelling a delivered order.
type InvalidOperationError struct {
	Operation string
	Reason    string
}

func NewInvalidOperationError(operation, reason string) *InvalidOperationError {
	return &InvalidOperationError{Operation: operation, Reason: reason}
}

func (e *InvalidOperationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidOperation, e.Operation, e.Reason)
}

func (e *InvalidOperationError) Unwrap() error {
	return ErrInvalidOperation
}
