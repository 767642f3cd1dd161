package courier

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	DefaultMaxOrders       = 5
	DefaultMaxWeightGrams  = 10_000
	DefaultMaxVolumeCubicC = 50_000
)

var ErrCapacityIsNotConstructed = errs.NewValueIsRequiredError(
	"capacity must be created via NewCapacity or DefaultCapacity")

// Capacity is the fixed carrying limit of a courier: how many orders, grams
// and cubic centimeters fit on the vehicle at once.
type Capacity struct { //nolint:recvcheck // setters need pointer receivers
	maxOrders int
	maxWeight int
	maxVolume int
	guard     guard.ConstructorGuard
}

// NewCapacity validates that all three limits are strictly positive.
func NewCapacity(maxOrders, maxWeight, maxVolume int) (Capacity, error) {
	c := Capacity{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		c.setMaxOrders(maxOrders),
		c.setMaxWeight(maxWeight),
		c.setMaxVolume(maxVolume),
	); err != nil {
		return Capacity{}, err
	}

	return c, nil
}

// DefaultCapacity fits a motorbike courier: 5 orders, 10 kg, 50 liters.
func DefaultCapacity() Capacity {
	return Capacity{
		maxOrders: DefaultMaxOrders,
		maxWeight: DefaultMaxWeightGrams,
		maxVolume: DefaultMaxVolumeCubicC,
		guard:     guard.NewConstructorGuard(),
	}
}

func (c Capacity) Validate() error {
	return c.guard.Validate(ErrCapacityIsNotConstructed)
}

func (c Capacity) MaxOrders() int {
	return c.maxOrders
}

// MaxWeight is in grams.
func (c Capacity) MaxWeight() int {
	return c.maxWeight
}

// MaxVolume is in cubic centimeters.
func (c Capacity) MaxVolume() int {
	return c.maxVolume
}

// CanAccommodate reports whether a load fits within every limit.
func (c Capacity) CanAccommodate(orders, weight, volume int) bool {
	return orders <= c.maxOrders && weight <= c.maxWeight && volume <= c.maxVolume
}

// Utilization returns the fill ratio of the most constrained resource. An
// exhausted limit reports 1.
func (c Capacity) Utilization(orders, weight, volume int) float64 {
	return max(
		ratio(orders, c.maxOrders),
		ratio(weight, c.maxWeight),
		ratio(volume, c.maxVolume),
	)
}

// Subtract returns what is left after a load is taken out. Each component is
// floored at zero, so the result may have exhausted limits.
func (c Capacity) Subtract(orders, weight, volume int) Capacity {
	return Capacity{
		maxOrders: max(0, c.maxOrders-orders),
		maxWeight: max(0, c.maxWeight-weight),
		maxVolume: max(0, c.maxVolume-volume),
		guard:     guard.NewConstructorGuard(),
	}
}

// IsExhausted reports whether any limit is zero.
func (c Capacity) IsExhausted() bool {
	return c.maxOrders == 0 || c.maxWeight == 0 || c.maxVolume == 0
}

func (c Capacity) String() string {
	return fmt.Sprintf("Capacity(orders=%d, weight=%dg, volume=%dcc)", c.maxOrders, c.maxWeight, c.maxVolume)
}

func (c *Capacity) setMaxOrders(v int) error {
	if v <= 0 {
		return errs.NewValueIsOutOfRangeError("maxOrders", v, 1, "+Inf")
	}
	c.maxOrders = v
	return nil
}

func (c *Capacity) setMaxWeight(v int) error {
	if v <= 0 {
		return errs.NewValueIsOutOfRangeError("maxWeight", v, 1, "+Inf")
	}
	c.maxWeight = v
	return nil
}

func (c *Capacity) setMaxVolume(v int) error {
	if v <= 0 {
		return errs.NewValueIsOutOfRangeError("maxVolume", v, 1, "+Inf")
	}
	c.maxVolume = v
	return nil
}

func ratio(used, limit int) float64 {
	if limit <= 0 {
		return 1
	}
	return float64(used) / float64(limit)
}
