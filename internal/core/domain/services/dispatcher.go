package services

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrCourierCannotAccept is returned when a courier is unavailable or
	// has no room for the parcel.
	ErrCourierCannotAccept = errors.New("courier cannot accept delivery")
	// ErrCourierNotFound is returned by SelectNearest when no candidate fits.
	ErrCourierNotFound = errors.New("courier not found")
)

// Assignment describes an order ready to be handed to a courier.
type Assignment struct {
	DeliveryID kernel.UUID
	TenantID   kernel.UUID
	OrderID    kernel.UUID
	Pickup     kernel.Location
	Dropoff    kernel.Location
	// Weight in grams, Volume in cubic centimeters.
	Weight int
	Volume int
}

// Dispatcher composes couriers, routes and deliveries. Which courier gets an
// order is decided outside; the dispatcher checks the choice, plans the
// route and books the load. It works on already-loaded aggregates and does
// no I/O, so callers run it inside a unit of work.
type Dispatcher struct {
	optimizer RouteOptimizer
}

func NewDispatcher(optimizer RouteOptimizer) Dispatcher {
	return Dispatcher{optimizer: optimizer}
}

// Assign creates an ASSIGNED delivery for a on courier c.
//
// Steps:
//   - c must belong to the tenant and CanAcceptDelivery must hold
//   - the route is OptimizeRoute(pickup, none, dropoff)
//   - the delivery is created and the parcel booked on the courier
func (d Dispatcher) Assign(a Assignment, c *courier.Courier) (*delivery.Delivery, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if !c.TenantID().IsEqual(a.TenantID) {
		return nil, errs.NewInvalidOperationError("assign", "courier belongs to another tenant")
	}
	if !c.CanAcceptDelivery(a.Weight, a.Volume) {
		return nil, fmt.Errorf("%w: courier %s", ErrCourierCannotAccept, c.ID())
	}

	rt, err := d.optimizer.OptimizeRoute(a.Pickup, nil, a.Dropoff)
	if err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}

	del, err := delivery.NewDelivery(a.DeliveryID, a.TenantID, a.OrderID, c.ID(), rt, a.Weight, a.Volume)
	if err != nil {
		return nil, err
	}

	if err := c.AssignDelivery(a.Weight, a.Volume); err != nil {
		return nil, err
	}

	return del, nil
}

// Reassign moves del from its current courier to another one. The parcel is
// released on from and booked on to; the route is re-planned between the
// same pickup and drop-off.
func (d Dispatcher) Reassign(del *delivery.Delivery, from, to *courier.Courier) error {
	if err := errors.Join(del.Validate(), from.Validate(), to.Validate()); err != nil {
		return err
	}
	if !from.ID().IsEqual(del.CourierID()) {
		return errs.NewInvalidOperationError("reassign", "delivery is not assigned to the releasing courier")
	}
	if !to.TenantID().IsEqual(del.TenantID()) {
		return errs.NewInvalidOperationError("reassign", "courier belongs to another tenant")
	}
	if !to.CanAcceptDelivery(del.OrderWeight(), del.OrderVolume()) {
		return fmt.Errorf("%w: courier %s", ErrCourierCannotAccept, to.ID())
	}

	rt, err := d.optimizer.OptimizeRoute(del.Route().StartLocation(), nil, del.Route().EndLocation())
	if err != nil {
		return fmt.Errorf("plan route: %w", err)
	}

	if err := del.Reassign(to.ID(), rt); err != nil {
		return err
	}

	return errors.Join(
		from.CompleteDelivery(del.OrderWeight(), del.OrderVolume()),
		to.AssignDelivery(del.OrderWeight(), del.OrderVolume()),
	)
}

// Release frees the courier's load once del has reached a terminal status.
func (d Dispatcher) Release(del *delivery.Delivery, c *courier.Courier) error {
	if err := errors.Join(del.Validate(), c.Validate()); err != nil {
		return err
	}
	if !del.Status().IsTerminal() {
		return errs.NewInvalidOperationError("release", fmt.Sprintf("delivery is still %s", del.Status()))
	}
	if !c.ID().IsEqual(del.CourierID()) {
		return errs.NewInvalidOperationError("release", "delivery is not assigned to this courier")
	}

	return c.CompleteDelivery(del.OrderWeight(), del.OrderVolume())
}

// PlanCourierRoute batches the drop-offs of a courier's active deliveries
// into one round trip from the courier's position.
func (d Dispatcher) PlanCourierRoute(c *courier.Courier, active []*delivery.Delivery) (route.Route, error) {
	if err := c.Validate(); err != nil {
		return route.Route{}, err
	}

	seen := make(map[kernel.Location]struct{}, len(active))
	stops := make([]kernel.Location, 0, len(active))
	for _, del := range active {
		if !del.Status().IsActive() || !del.CourierID().IsEqual(c.ID()) {
			continue
		}
		dropoff := del.Route().EndLocation()
		if _, dup := seen[dropoff]; dup {
			continue
		}
		seen[dropoff] = struct{}{}
		stops = append(stops, dropoff)
	}
	if len(stops) == 0 {
		return route.Route{}, errs.NewValueIsRequiredError("active deliveries")
	}

	return d.optimizer.OptimizeRoute(c.Location(), stops, c.Location())
}

// SelectNearest picks, among couriers that can accept the parcel, the one
// closest to pickup. Ties go to the earlier courier in the slice.
func (d Dispatcher) SelectNearest(
	pickup kernel.Location,
	weight, volume int,
	couriers []*courier.Courier,
) (*courier.Courier, error) {
	var (
		best     *courier.Courier
		bestDist kernel.Distance
	)

	for _, c := range couriers {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if !c.CanAcceptDelivery(weight, volume) {
			continue
		}

		dist, err := d.optimizer.distances.StraightLineDistance(c.Location(), pickup)
		if err != nil {
			return nil, err
		}

		if best == nil || dist.IsLessThan(bestDist) {
			best = c
			bestDist = dist
		}
	}

	if best == nil {
		return nil, ErrCourierNotFound
	}
	return best, nil
}
