package http

import (
	"time"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Created struct {
	ID string `json:"id"`
}

type Location struct {
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
}

func (l Location) toDomain() (kernel.Location, error) {
	return kernel.NewLocation(l.Latitude, l.Longitude)
}

func locationFromDomain(l kernel.Location) Location {
	return Location{Latitude: l.Latitude(), Longitude: l.Longitude()}
}

type Capacity struct {
	MaxOrders int `json:"maxOrders" validate:"min=1"`
	MaxWeight int `json:"maxWeight" validate:"min=1"`
	MaxVolume int `json:"maxVolume" validate:"min=1"`
}

type Load struct {
	Orders int `json:"orders"`
	Weight int `json:"weight"`
	Volume int `json:"volume"`
}

type NewCourier struct {
	Name        string    `json:"name" validate:"required,max=100"`
	Phone       string    `json:"phone" validate:"max=32"`
	VehicleType string    `json:"vehicleType" validate:"max=32"`
	Capacity    *Capacity `json:"capacity"`
	Location    Location  `json:"location"`
}

type Courier struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Phone       string   `json:"phone"`
	VehicleType string   `json:"vehicleType"`
	Status      string   `json:"status"`
	Location    Location `json:"location"`
	Capacity    Capacity `json:"capacity"`
	Load        Load     `json:"load"`
	Utilization float64  `json:"utilization"`
}

func courierFromResponse(c queries.GetAllCouriersQueryResponse) Courier {
	return Courier{
		ID:          c.ID.String(),
		Name:        c.Name,
		Phone:       c.Phone,
		VehicleType: c.VehicleType,
		Status:      c.Status.String(),
		Location:    locationFromDomain(c.Location),
		Capacity: Capacity{
			MaxOrders: c.Capacity.MaxOrders(),
			MaxWeight: c.Capacity.MaxWeight(),
			MaxVolume: c.Capacity.MaxVolume(),
		},
		Load:        Load{Orders: c.Load.Orders, Weight: c.Load.Weight, Volume: c.Load.Volume},
		Utilization: c.Utilization,
	}
}

type CourierStatusChange struct {
	Status string `json:"status" validate:"required"`
}

type NewDelivery struct {
	OrderID string   `json:"orderId" validate:"required,uuid"`
	Pickup  Location `json:"pickup"`
	Dropoff Location `json:"dropoff"`
	Weight  int      `json:"weight" validate:"min=0"`
	Volume  int      `json:"volume" validate:"min=0"`
}

type DeliveryStatusChange struct {
	Status string `json:"status" validate:"required"`
	Notes  string `json:"notes" validate:"max=500"`
}

type Reassignment struct {
	CourierID string `json:"courierId" validate:"required,uuid"`
}

type Cancellation struct {
	Reason string `json:"reason" validate:"max=500"`
}

type ActiveDelivery struct {
	ID               string    `json:"id"`
	OrderID          string    `json:"orderId"`
	Status           string    `json:"status"`
	CurrentLocation  Location  `json:"currentLocation"`
	Dropoff          Location  `json:"dropoff"`
	EstimatedArrival time.Time `json:"estimatedArrival"`
	Progress         float64   `json:"progress"`
	Weight           int       `json:"weight"`
	Volume           int       `json:"volume"`
	CreatedAt        time.Time `json:"createdAt"`
}

func activeDeliveryFromResponse(d queries.GetActiveDeliveriesQueryResponse) ActiveDelivery {
	return ActiveDelivery{
		ID:               d.ID.String(),
		OrderID:          d.OrderID.String(),
		Status:           d.Status.String(),
		CurrentLocation:  locationFromDomain(d.CurrentLocation),
		Dropoff:          locationFromDomain(d.Dropoff),
		EstimatedArrival: d.EstimatedArrival,
		Progress:         d.Progress,
		Weight:           d.Weight,
		Volume:           d.Volume,
		CreatedAt:        d.CreatedAt,
	}
}

type Tracking struct {
	DeliveryID           string    `json:"deliveryId"`
	CourierID            string    `json:"courierId"`
	Status               string    `json:"status"`
	StatusMessage        string    `json:"statusMessage"`
	Location             Location  `json:"location"`
	EstimatedArrival     time.Time `json:"estimatedArrival"`
	TimeToArrivalSeconds int64     `json:"timeToArrivalSeconds"`
	Progress             float64   `json:"progress"`
	IsOverdue            bool      `json:"isOverdue"`
	TakenAt              time.Time `json:"takenAt"`
}

func trackingFromDomain(u delivery.TrackingUpdate) Tracking {
	return Tracking{
		DeliveryID:           u.DeliveryID().String(),
		CourierID:            u.CourierID().String(),
		Status:               u.Status().String(),
		StatusMessage:        u.StatusMessage(),
		Location:             locationFromDomain(u.Location()),
		EstimatedArrival:     u.EstimatedArrival(),
		TimeToArrivalSeconds: int64(u.TimeToArrival() / time.Second),
		Progress:             u.Progress(),
		IsOverdue:            u.IsOverdue(),
		TakenAt:              u.TakenAt(),
	}
}

type Waypoint struct {
	Type                string   `json:"type"`
	Location            Location `json:"location"`
	StopDurationSeconds int64    `json:"stopDurationSeconds,omitempty"`
	Description         string   `json:"description,omitempty"`
}

type Route struct {
	Waypoints                []Waypoint `json:"waypoints"`
	TotalDistanceMeters      float64    `json:"totalDistanceMeters"`
	EstimatedDurationMinutes int64      `json:"estimatedDurationMinutes"`
}

func routeFromDomain(r route.Route) Route {
	waypoints := make([]Waypoint, 0, r.WaypointCount())
	for _, w := range r.Waypoints() {
		waypoints = append(waypoints, Waypoint{
			Type:                w.Type().String(),
			Location:            locationFromDomain(w.Location()),
			StopDurationSeconds: int64(w.StopDuration() / time.Second),
			Description:         w.Description(),
		})
	}
	return Route{
		Waypoints:                waypoints,
		TotalDistanceMeters:      r.TotalDistance().Meters(),
		EstimatedDurationMinutes: int64(r.EstimatedDuration() / time.Minute),
	}
}

type CourierRoute struct {
	CourierID        string `json:"courierId"`
	ActiveDeliveries int    `json:"activeDeliveries"`
	Route            *Route `json:"route,omitempty"`
}

type PlanRouteRequest struct {
	Start              Location   `json:"start"`
	Deliveries         []Location `json:"deliveries" validate:"max=100,dive"`
	End                Location   `json:"end"`
	MaxRoutes          int        `json:"maxRoutes" validate:"omitempty,min=1,max=20"`
	ApplyTraffic       bool       `json:"applyTraffic"`
	MaxDistanceMeters  *float64   `json:"maxDistanceMeters" validate:"omitempty,min=0"`
	MaxDurationMinutes *int       `json:"maxDurationMinutes" validate:"omitempty,min=0"`
	MaxWaypoints       int        `json:"maxWaypoints" validate:"omitempty,min=3"`
	TimeBudgetMinutes  int        `json:"timeBudgetMinutes" validate:"min=0"`
}

type PlannedRoute struct {
	Route
	Feasible *bool `json:"feasible,omitempty"`
}

type Traffic struct {
	Level       string    `json:"level"`
	SpeedFactor float64   `json:"speedFactor"`
	ObservedAt  time.Time `json:"observedAt"`
}

type PlanRouteResponse struct {
	Options      []PlannedRoute `json:"options"`
	Traffic      *Traffic       `json:"traffic,omitempty"`
	Batches      []Route        `json:"batches,omitempty"`
	WithinBudget *Route         `json:"withinBudget,omitempty"`
}

func planFromResponse(r queries.PlanRouteQueryResponse) PlanRouteResponse {
	out := PlanRouteResponse{Options: make([]PlannedRoute, 0, len(r.Options))}
	for _, option := range r.Options {
		out.Options = append(out.Options, PlannedRoute{
			Route:    routeFromDomain(option.Route),
			Feasible: option.Feasible,
		})
	}
	if r.Traffic != nil {
		out.Traffic = &Traffic{
			Level:       r.Traffic.Level().String(),
			SpeedFactor: r.Traffic.SpeedFactor(),
			ObservedAt:  r.Traffic.ObservedAt(),
		}
	}
	for _, batch := range r.Batches {
		out.Batches = append(out.Batches, routeFromDomain(batch))
	}
	if r.WithinBudget != nil {
		budget := routeFromDomain(*r.WithinBudget)
		out.WithinBudget = &budget
	}
	return out
}
