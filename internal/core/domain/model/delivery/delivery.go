package delivery

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrDeliveryIsNotConstructed is returned when using an improperly initialized Delivery.
var ErrDeliveryIsNotConstructed = errors.New("delivery must be created via NewDelivery or RestoreDelivery")

// Delivery is the aggregate root for one order hand-over. It is created when
// an order is assigned to a courier, moves through the status table in
// status.go and is never deleted: it ends in DELIVERED, CANCELLED or FAILED.
//
// Key responsibilities:
//   - Enforcing the lifecycle state machine
//   - Deriving progress, ETA and overdue state
//   - Keeping an append-only milestone log
//   - Buffering domain events until the unit of work drains them
//
// Business rules:
//   - A new delivery starts ASSIGNED at the start of its route with progress 0
//   - The ETA is creation time plus the route's estimated duration
//   - Progress follows the happy path in steps of 0.2 and stays frozen when
//     the delivery is cancelled or fails
//   - Cancellation is only possible before pickup
//   - Completed deliveries cannot be reassigned
type Delivery struct {
	// id uniquely identifies the delivery
	id kernel.UUID
	// tenantID is the platform tenant that owns the order
	tenantID kernel.UUID
	// orderID references the order being delivered
	orderID kernel.UUID
	// courierID references the assigned courier
	courierID kernel.UUID
	// route is the planned path from pickup to drop-off
	route route.Route
	// status is the lifecycle state
	status Status
	// currentLocation is the last known courier position for this delivery
	currentLocation kernel.Location
	// estimatedArrival is when the goods are expected at the drop-off
	estimatedArrival time.Time
	// progress is the completion fraction in [0, 1]
	progress float64
	// events is the milestone log, oldest first
	events []Event
	// orderWeight (g) and orderVolume (cc) are the parcel size booked on the courier
	orderWeight int
	orderVolume int
	// createdAt and updatedAt are lifecycle timestamps
	createdAt time.Time
	updatedAt time.Time
	// domainEvents are waiting for the outbox
	domainEvents []DomainEvent
	// guard ensures the delivery was properly constructed
	guard guard.ConstructorGuard
}

// NewDelivery creates an ASSIGNED delivery for an order and a courier along a
// planned route. The ASSIGNED milestone and the delivery.assigned domain
// event are recorded immediately.
//
// Parameters:
//   - id, tenantID, orderID, courierID: identities (all must be valid)
//   - rt: the planned route (must be constructed)
//   - weight, volume: parcel size in grams and cubic centimeters (non-negative)
//
// Returns:
//   - *Delivery: the new aggregate
//   - error: every validation failure joined together
func NewDelivery(
	id kernel.UUID,
	tenantID kernel.UUID,
	orderID kernel.UUID,
	courierID kernel.UUID,
	rt route.Route,
	weight int,
	volume int,
) (*Delivery, error) {
	now := time.Now().UTC()
	d := &Delivery{
		status:    StatusAssigned,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setTenantID(tenantID),
		d.setOrderID(orderID),
		d.setCourierID(courierID),
		d.setRoute(rt),
		d.setParcel(weight, volume),
	); err != nil {
		return nil, err
	}

	d.currentLocation = rt.StartLocation()
	d.estimatedArrival = now.Add(rt.EstimatedDuration())
	if err := d.appendEvent(EventTypeAssigned, "Delivery assigned", now); err != nil {
		return nil, err
	}
	d.raise(DomainEvent{
		Name:     DomainEventAssigned,
		ToStatus: StatusAssigned,
	}, now)

	return d, nil
}

// RestoreDelivery rebuilds a delivery from persistent storage without
// recording events.
func RestoreDelivery(
	id kernel.UUID,
	tenantID kernel.UUID,
	orderID kernel.UUID,
	courierID kernel.UUID,
	rt route.Route,
	status Status,
	currentLocation kernel.Location,
	estimatedArrival time.Time,
	progress float64,
	events []Event,
	weight int,
	volume int,
	createdAt time.Time,
	updatedAt time.Time,
) (*Delivery, error) {
	d := &Delivery{
		estimatedArrival: estimatedArrival,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setTenantID(tenantID),
		d.setOrderID(orderID),
		d.setCourierID(courierID),
		d.setRoute(rt),
		d.setStatus(status),
		d.setCurrentLocation(currentLocation),
		d.setProgress(progress),
		d.setEvents(events),
		d.setParcel(weight, volume),
	); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *Delivery) Validate() error {
	return d.guard.Validate(ErrDeliveryIsNotConstructed)
}

func (d *Delivery) ID() kernel.UUID {
	return d.id
}

func (d *Delivery) TenantID() kernel.UUID {
	return d.tenantID
}

func (d *Delivery) OrderID() kernel.UUID {
	return d.orderID
}

func (d *Delivery) CourierID() kernel.UUID {
	return d.courierID
}

func (d *Delivery) Route() route.Route {
	return d.route
}

func (d *Delivery) Status() Status {
	return d.status
}

func (d *Delivery) CurrentLocation() kernel.Location {
	return d.currentLocation
}

func (d *Delivery) EstimatedArrival() time.Time {
	return d.estimatedArrival
}

func (d *Delivery) Progress() float64 {
	return d.progress
}

// Events returns a copy of the milestone log.
func (d *Delivery) Events() []Event {
	return slices.Clone(d.events)
}

func (d *Delivery) OrderWeight() int {
	return d.orderWeight
}

func (d *Delivery) OrderVolume() int {
	return d.orderVolume
}

func (d *Delivery) CreatedAt() time.Time {
	return d.createdAt
}

func (d *Delivery) UpdatedAt() time.Time {
	return d.updatedAt
}

// DomainEvents returns the events raised since the last ClearDomainEvents.
func (d *Delivery) DomainEvents() []DomainEvent {
	return slices.Clone(d.domainEvents)
}

func (d *Delivery) ClearDomainEvents() {
	d.domainEvents = nil
}

// UpdateStatus moves the delivery along the status table.
//
// Business rules:
//   - the target must be listed for the current status, otherwise an
//     InvalidStateTransitionError is returned and nothing changes
//   - progress is set from the target's happy-path position; CANCELLED and
//     FAILED keep the previous progress
//   - the milestone matching the target is appended with the given notes
func (d *Delivery) UpdateStatus(next Status, notes string) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if !d.status.CanTransitionTo(next) {
		return errs.NewInvalidStateTransitionError("delivery", d.status.String(), next.String())
	}

	return d.transition(next, notes, DomainEventStatusChanged)
}

// Cancel stops a delivery that has not been picked up yet.
func (d *Delivery) Cancel(reason string) error {
	if d.status.IsTerminal() {
		return errs.NewInvalidOperationError("cancel", "cannot cancel completed delivery")
	}
	if !d.status.CanBeCancelled() {
		return errs.NewInvalidOperationError("cancel",
			fmt.Sprintf("cannot cancel delivery in status %s", d.status))
	}

	return d.transition(StatusCancelled, reason, DomainEventCancelled)
}

// UpdateLocation records a new courier position regardless of status. When
// the position changes a LOCATION_UPDATED entry is logged and, while the
// delivery is active, the ETA is recomputed from the straight-line distance
// left to the drop-off.
func (d *Delivery) UpdateLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("location", err)
	}
	if location.IsEqual(d.currentLocation) {
		return nil
	}

	now := time.Now().UTC()
	eta := d.estimatedArrival
	if d.status.IsActive() {
		remaining, err := location.DistanceTo(d.route.EndLocation())
		if err != nil {
			return err
		}
		eta = now.Add(route.TravelTime(remaining))
	}
	event, err := NewEvent(EventTypeLocationUpdated, location, "", now)
	if err != nil {
		return err
	}

	d.currentLocation = location
	d.estimatedArrival = eta
	d.updatedAt = now
	d.events = append(d.events, event)
	return nil
}

// Reassign hands an active delivery to another courier with a new route.
func (d *Delivery) Reassign(courierID kernel.UUID, rt route.Route) error {
	if d.status.IsTerminal() {
		return errs.NewInvalidOperationError("reassign", "cannot reassign completed delivery")
	}
	if courierID.IsEqual(d.courierID) {
		return errs.NewInvalidOperationError("reassign", "delivery is already assigned to this courier")
	}

	if err := errors.Join(courierID.Validate(), rt.Validate()); err != nil {
		return err
	}

	previous := d.courierID
	now := time.Now().UTC()
	event, err := NewEvent(EventTypeReassigned, d.currentLocation,
		fmt.Sprintf("reassigned from courier %s", previous), now)
	if err != nil {
		return err
	}

	d.courierID = courierID
	d.route = rt
	d.estimatedArrival = now.Add(rt.EstimatedDuration())
	d.updatedAt = now
	d.events = append(d.events, event)
	d.raise(DomainEvent{
		Name:              DomainEventReassigned,
		PreviousCourierID: previous,
		FromStatus:        d.status,
		ToStatus:          d.status,
	}, now)
	return nil
}

// TimeToArrival is the time left until the ETA, never negative.
func (d *Delivery) TimeToArrival(now time.Time) time.Duration {
	return max(0, d.estimatedArrival.Sub(now))
}

// IsOverdue reports whether an active delivery has passed its ETA.
func (d *Delivery) IsOverdue(now time.Time) bool {
	return d.status.IsActive() && now.After(d.estimatedArrival)
}

func (d *Delivery) transition(next Status, notes, eventName string) error {
	now := time.Now().UTC()
	previous := d.status
	event, err := NewEvent(next.EventType(), d.currentLocation, notes, now)
	if err != nil {
		return err
	}

	d.status = next
	if p, ok := next.Progress(); ok {
		d.progress = p
	}
	d.updatedAt = now
	d.events = append(d.events, event)
	d.raise(DomainEvent{
		Name:       eventName,
		FromStatus: previous,
		ToStatus:   next,
		Reason:     notes,
	}, now)
	if next == StatusDelivered {
		d.raise(DomainEvent{
			Name:       DomainEventCompleted,
			FromStatus: previous,
			ToStatus:   next,
		}, now)
	}
	return nil
}

func (d *Delivery) appendEvent(eventType EventType, notes string, at time.Time) error {
	event, err := NewEvent(eventType, d.currentLocation, notes, at)
	if err != nil {
		return err
	}
	d.events = append(d.events, event)
	return nil
}

func (d *Delivery) raise(event DomainEvent, at time.Time) {
	event.ID = kernel.NewUUID()
	event.DeliveryID = d.id
	event.TenantID = d.tenantID
	event.OrderID = d.orderID
	event.CourierID = d.courierID
	event.OccurredAt = at
	d.domainEvents = append(d.domainEvents, event)
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("id", err)
	}
	d.id = id
	return nil
}

func (d *Delivery) setTenantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantID", err)
	}
	d.tenantID = id
	return nil
}

func (d *Delivery) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}
	d.orderID = id
	return nil
}

func (d *Delivery) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("courierID", err)
	}
	d.courierID = id
	return nil
}

func (d *Delivery) setRoute(rt route.Route) error {
	if err := rt.Validate(); err != nil {
		return err
	}
	d.route = rt
	return nil
}

func (d *Delivery) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	d.status = status
	return nil
}

func (d *Delivery) setCurrentLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("currentLocation", err)
	}
	d.currentLocation = location
	return nil
}

func (d *Delivery) setProgress(progress float64) error {
	if progress < 0 || progress > 1 {
		return errs.NewValueIsOutOfRangeError("progress", progress, 0, 1)
	}
	d.progress = progress
	return nil
}

func (d *Delivery) setEvents(events []Event) error {
	for i, e := range events {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
	}
	d.events = slices.Clone(events)
	return nil
}

func (d *Delivery) setParcel(weight, volume int) error {
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
	d.orderWeight = weight
	d.orderVolume = volume
	return nil
}
