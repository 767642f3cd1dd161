// Package errs holds the error taxonomy shared by the dispatch engine.
//
// Every error type wraps a sentinel so callers classify failures with
// errors.Is and read details with errors.As:
//   - ValueIsInvalidError, ValueIsOutOfRangeError, ValueIsRequiredError: bad
//     arguments (coordinates, distances, capacities, empty inputs)
//   - InvalidStateTransitionError: a state machine refused a transition
//   - InvalidOperationError: the operation is not allowed in the current state
//   - ObjectNotFoundError: a referenced aggregate does not exist
//   - VersionIsInvalidError: a persisted row was changed concurrently
//
// None of these are retried inside the engine.
package errs
