package courier

import (
	"errors"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when a courier is created without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("courier must be created via NewCourier or RestoreCourier")
)

// Load is what a courier currently carries. Components never go below zero.
type Load struct {
	Orders int
	Weight int
	Volume int
}

// Courier is the aggregate root for a delivery person. It owns the courier's
// capacity bookkeeping, working status and last known position.
//
// Key responsibilities:
//   - Tracking the current Load against a fixed Capacity
//   - Answering whether one more delivery of a given size fits
//   - Moving between working statuses along the allowed transitions
//
// Business rules:
//   - Capacity is fixed at construction
//   - AssignDelivery does not re-check capacity; callers must ask
//     CanAcceptDelivery first, inside the same transaction
//   - CompleteDelivery floors every counter at zero
//   - An AVAILABLE courier with no room for one more order becomes BUSY; a
//     BUSY courier that regains room becomes AVAILABLE again
//
// Example usage:
//
//	loc, _ := kernel.NewLocation(-25.9692, 32.5732)
//	c, err := courier.NewCourier(kernel.NewUUID(), tenantID, "Ana", "+258840000000",
//	    "MOTORCYCLE", courier.DefaultCapacity(), loc)
//	if err != nil {
//	    return err
//	}
//	if c.CanAcceptDelivery(1200, 3000) {
//	    _ = c.AssignDelivery(1200, 3000)
//	}
type Courier struct {
	// id uniquely identifies the courier
	id kernel.UUID
	// tenantID is the platform tenant the courier works for
	tenantID kernel.UUID
	// name is the display name of the courier
	name string
	// phone is an optional contact number
	phone string
	// vehicleType is a free-form vehicle label such as MOTORCYCLE or BICYCLE
	vehicleType string
	// capacity is the fixed carrying limit
	capacity Capacity
	// status is the working status
	status Status
	// location is the last reported position
	location kernel.Location
	// load is what the courier carries right now
	load Load
	// createdAt and updatedAt are lifecycle timestamps
	createdAt time.Time
	updatedAt time.Time
	// guard ensures the courier was properly constructed
	guard guard.ConstructorGuard
}

// NewCourier registers a new AVAILABLE courier with an empty load.
//
// Parameters:
//   - id: unique identifier (must be valid)
//   - tenantID: owning tenant (must be valid)
//   - name: display name (must be non-blank)
//   - phone, vehicleType: optional profile fields
//   - capacity: carrying limit (must be constructed)
//   - location: starting position (must be constructed)
//
// Returns:
//   - *Courier: the new aggregate
//   - error: every validation failure joined together
func NewCourier(
	id kernel.UUID,
	tenantID kernel.UUID,
	name string,
	phone string,
	vehicleType string,
	capacity Capacity,
	location kernel.Location,
) (*Courier, error) {
	now := time.Now().UTC()
	c := &Courier{
		phone:       phone,
		vehicleType: vehicleType,
		status:      StatusAvailable,
		createdAt:   now,
		updatedAt:   now,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setTenantID(tenantID),
		c.setName(name),
		c.setCapacity(capacity),
		c.setLocation(location),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCourier rebuilds a courier from persistent storage. The load is
// taken as stored; negative components are rejected.
func RestoreCourier(
	id kernel.UUID,
	tenantID kernel.UUID,
	name string,
	phone string,
	vehicleType string,
	capacity Capacity,
	status Status,
	location kernel.Location,
	load Load,
	createdAt time.Time,
	updatedAt time.Time,
) (*Courier, error) {
	c := &Courier{
		phone:       phone,
		vehicleType: vehicleType,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setTenantID(tenantID),
		c.setName(name),
		c.setCapacity(capacity),
		c.setStatus(status),
		c.setLocation(location),
		c.setLoad(load),
	); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Courier) Validate() error {
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

func (c *Courier) ID() kernel.UUID {
	return c.id
}

func (c *Courier) TenantID() kernel.UUID {
	return c.tenantID
}

func (c *Courier) Name() string {
	return c.name
}

func (c *Courier) Phone() string {
	return c.phone
}

func (c *Courier) VehicleType() string {
	return c.vehicleType
}

func (c *Courier) Capacity() Capacity {
	return c.capacity
}

func (c *Courier) Status() Status {
	return c.status
}

func (c *Courier) Location() kernel.Location {
	return c.location
}

func (c *Courier) Load() Load {
	return c.load
}

func (c *Courier) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Courier) UpdatedAt() time.Time {
	return c.updatedAt
}

// CanAcceptDelivery reports whether the courier is AVAILABLE and one more
// order of the given weight (g) and volume (cc) fits within capacity.
func (c *Courier) CanAcceptDelivery(weight, volume int) bool {
	if !c.status.IsAvailable() {
		return false
	}
	return c.capacity.CanAccommodate(c.load.Orders+1, c.load.Weight+weight, c.load.Volume+volume)
}

// AssignDelivery adds one order of the given size to the load. It does not
// re-check capacity; see CanAcceptDelivery.
func (c *Courier) AssignDelivery(weight, volume int) error {
	if err := validateParcel(weight, volume); err != nil {
		return err
	}

	c.load.Orders++
	c.load.Weight += weight
	c.load.Volume += volume
	c.touch()

	if c.status == StatusAvailable && !c.hasRoomForOneMore() {
		c.status = StatusBusy
	}
	return nil
}

// CompleteDelivery removes one order of the given size from the load.
// Counters never drop below zero.
func (c *Courier) CompleteDelivery(weight, volume int) error {
	if err := validateParcel(weight, volume); err != nil {
		return err
	}

	c.load.Orders = max(0, c.load.Orders-1)
	c.load.Weight = max(0, c.load.Weight-weight)
	c.load.Volume = max(0, c.load.Volume-volume)
	c.touch()

	if c.status == StatusBusy && c.hasRoomForOneMore() {
		c.status = StatusAvailable
	}
	return nil
}

// Utilization is the fill ratio of the courier's most constrained resource.
func (c *Courier) Utilization() float64 {
	return c.capacity.Utilization(c.load.Orders, c.load.Weight, c.load.Volume)
}

// RemainingCapacity is the capacity left after the current load.
func (c *Courier) RemainingCapacity() Capacity {
	return c.capacity.Subtract(c.load.Orders, c.load.Weight, c.load.Volume)
}

// UpdateStatus moves the courier to a new working status. Setting the
// current status again is a no-op.
func (c *Courier) UpdateStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if status == c.status {
		return nil
	}
	if !c.status.CanTransitionTo(status) {
		return errs.NewInvalidStateTransitionError("courier", c.status.String(), status.String())
	}

	c.status = status
	c.touch()
	return nil
}

func (c *Courier) UpdateLocation(location kernel.Location) error {
	if err := c.setLocation(location); err != nil {
		return err
	}
	c.touch()
	return nil
}

func (c *Courier) hasRoomForOneMore() bool {
	return c.capacity.CanAccommodate(c.load.Orders+1, c.load.Weight, c.load.Volume)
}

func (c *Courier) touch() {
	c.updatedAt = time.Now().UTC()
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("id", err)
	}
	c.id = id
	return nil
}

func (c *Courier) setTenantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantID", err)
	}
	c.tenantID = id
	return nil
}

func (c *Courier) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Courier) setCapacity(capacity Capacity) error {
	if err := capacity.Validate(); err != nil {
		return err
	}
	c.capacity = capacity
	return nil
}

func (c *Courier) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}

func (c *Courier) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("location", err)
	}
	c.location = location
	return nil
}

func (c *Courier) setLoad(load Load) error {
	if load.Orders < 0 || load.Weight < 0 || load.Volume < 0 {
		return errs.NewValueIsInvalidErrorWithCause("load", errors.New("load components must not be negative"))
	}
	c.load = load
	return nil
}

func validateParcel(weight, volume int) error {
	var err error
	if weight < 0 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("weight", weight, 0, "+Inf"))
	}
	if volume < 0 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("volume", volume, 0, "+Inf"))
	}
	return err
}
