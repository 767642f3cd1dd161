// Package guard protects value objects and aggregates from being used as
// zero values instead of being built through their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a
// nil error for an unconstructed value.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in domain types whose zero value is not a
// legal state. Constructors set it with NewConstructorGuard; the type's
// Validate method reports whether it was built properly:
//
//	type Capacity struct {
//	    maxOrders int
//	    guard     guard.ConstructorGuard
//	}
//
//	func (c Capacity) Validate() error {
//	    return c.guard.Validate(ErrCapacityNotConstructed)
//	}
//
// A Location{} or Route{} literal therefore fails validation as soon as it
// reaches an aggregate.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks a value as built by its constructor.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for constructed values. Otherwise it returns err, or
// ErrDefaultConstructorGuard when err is nil.
func (g ConstructorGuard) Validate(err error) error {
	if g.isConstructed {
		return nil
	}
	if err == nil {
		return ErrDefaultConstructorGuard
	}
	return err
}
