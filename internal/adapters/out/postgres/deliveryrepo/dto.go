// Package deliveryrepo persists the delivery aggregate across the deliveries,
// delivery_waypoints and delivery_events tables.
package deliveryrepo

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/route"
)

// DeliveryDTO is the deliveries row with its route and milestone log.
type DeliveryDTO struct {
	ID                  uuid.UUID     `gorm:"type:uuid;primaryKey"`
	TenantID            uuid.UUID     `gorm:"type:uuid;not null"`
	OrderID             uuid.UUID     `gorm:"type:uuid;not null"`
	CourierID           uuid.UUID     `gorm:"type:uuid;not null"`
	Status              string        `gorm:"type:varchar(32);not null"`
	CurrentLatitude     float64       `gorm:"type:double precision;not null"`
	CurrentLongitude    float64       `gorm:"type:double precision;not null"`
	EstimatedArrival    time.Time     `gorm:"not null"`
	Progress            float64       `gorm:"not null"`
	RouteDistanceMeters float64       `gorm:"not null"`
	RouteDurationMs     int64         `gorm:"column:route_duration_ms;not null"`
	OrderWeight         int           `gorm:"not null"`
	OrderVolume         int           `gorm:"not null"`
	CreatedAt           time.Time     `gorm:"not null;autoCreateTime:false"`
	UpdatedAt           time.Time     `gorm:"not null;autoUpdateTime:false"`
	Waypoints           []WaypointDTO `gorm:"foreignKey:DeliveryID;constraint:OnDelete:CASCADE"`
	Events              []EventDTO    `gorm:"foreignKey:DeliveryID;constraint:OnDelete:CASCADE"`
}

func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// WaypointDTO is one route stop; Position keeps the route order.
type WaypointDTO struct {
	DeliveryID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position       int       `gorm:"primaryKey;autoIncrement:false"`
	Type           string    `gorm:"type:varchar(16);not null"`
	Latitude       float64   `gorm:"type:double precision;not null"`
	Longitude      float64   `gorm:"type:double precision;not null"`
	StopDurationMs int64     `gorm:"column:stop_duration_ms;not null"`
	Description    string    `gorm:"type:text;not null"`
}

func (WaypointDTO) TableName() string {
	return "delivery_waypoints"
}

// EventDTO is one milestone; Position keeps the append order.
type EventDTO struct {
	DeliveryID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position   int       `gorm:"primaryKey;autoIncrement:false"`
	Type       string    `gorm:"type:varchar(32);not null"`
	Latitude   float64   `gorm:"type:double precision;not null"`
	Longitude  float64   `gorm:"type:double precision;not null"`
	Notes      string    `gorm:"type:text;not null"`
	OccurredAt time.Time `gorm:"not null"`
}

func (EventDTO) TableName() string {
	return "delivery_events"
}

func fromDomain(d *delivery.Delivery) DeliveryDTO {
	id := d.ID().Google()
	rt := d.Route()

	waypoints := make([]WaypointDTO, 0, rt.WaypointCount())
	for i, w := range rt.Waypoints() {
		waypoints = append(waypoints, WaypointDTO{
			DeliveryID:     id,
			Position:       i,
			Type:           w.Type().String(),
			Latitude:       w.Location().Latitude(),
			Longitude:      w.Location().Longitude(),
			StopDurationMs: w.StopDuration().Milliseconds(),
			Description:    w.Description(),
		})
	}

	events := make([]EventDTO, 0, len(d.Events()))
	for i, e := range d.Events() {
		events = append(events, EventDTO{
			DeliveryID: id,
			Position:   i,
			Type:       e.Type().String(),
			Latitude:   e.Location().Latitude(),
			Longitude:  e.Location().Longitude(),
			Notes:      e.Notes(),
			OccurredAt: e.OccurredAt(),
		})
	}

	return DeliveryDTO{
		ID:                  id,
		TenantID:            d.TenantID().Google(),
		OrderID:             d.OrderID().Google(),
		CourierID:           d.CourierID().Google(),
		Status:              d.Status().String(),
		CurrentLatitude:     d.CurrentLocation().Latitude(),
		CurrentLongitude:    d.CurrentLocation().Longitude(),
		EstimatedArrival:    d.EstimatedArrival(),
		Progress:            d.Progress(),
		RouteDistanceMeters: rt.TotalDistance().Meters(),
		RouteDurationMs:     rt.EstimatedDuration().Milliseconds(),
		OrderWeight:         d.OrderWeight(),
		OrderVolume:         d.OrderVolume(),
		CreatedAt:           d.CreatedAt(),
		UpdatedAt:           d.UpdatedAt(),
		Waypoints:           waypoints,
		Events:              events,
	}
}

func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.FromGoogleUUID(dto.ID)
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.FromGoogleUUID(dto.TenantID)
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.FromGoogleUUID(dto.OrderID)
	if err != nil {
		return nil, err
	}
	courierID, err := kernel.FromGoogleUUID(dto.CourierID)
	if err != nil {
		return nil, err
	}
	status, err := delivery.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	current, err := kernel.NewLocation(dto.CurrentLatitude, dto.CurrentLongitude)
	if err != nil {
		return nil, err
	}
	rt, err := routeToDomain(dto)
	if err != nil {
		return nil, fmt.Errorf("delivery %s route: %w", dto.ID, err)
	}

	events := make([]delivery.Event, 0, len(dto.Events))
	for _, e := range dto.Events {
		event, err := eventToDomain(e)
		if err != nil {
			return nil, fmt.Errorf("delivery %s event %d: %w", dto.ID, e.Position, err)
		}
		events = append(events, event)
	}

	return delivery.RestoreDelivery(
		id,
		tenantID,
		orderID,
		courierID,
		rt,
		status,
		current,
		dto.EstimatedArrival.UTC(),
		dto.Progress,
		events,
		dto.OrderWeight,
		dto.OrderVolume,
		dto.CreatedAt.UTC(),
		dto.UpdatedAt.UTC(),
	)
}

func routeToDomain(dto DeliveryDTO) (route.Route, error) {
	waypoints := make([]route.Waypoint, 0, len(dto.Waypoints))
	for _, w := range dto.Waypoints {
		waypointType, err := route.ParseWaypointType(w.Type)
		if err != nil {
			return route.Route{}, err
		}
		location, err := kernel.NewLocation(w.Latitude, w.Longitude)
		if err != nil {
			return route.Route{}, err
		}
		waypoint, err := route.NewWaypoint(
			location,
			waypointType,
			time.Duration(w.StopDurationMs)*time.Millisecond,
			w.Description,
		)
		if err != nil {
			return route.Route{}, err
		}
		waypoints = append(waypoints, waypoint)
	}

	distance, err := kernel.NewDistance(dto.RouteDistanceMeters)
	if err != nil {
		return route.Route{}, err
	}

	return route.NewRoute(waypoints, distance, time.Duration(dto.RouteDurationMs)*time.Millisecond)
}

func eventToDomain(dto EventDTO) (delivery.Event, error) {
	eventType, err := delivery.ParseEventType(dto.Type)
	if err != nil {
		return delivery.Event{}, err
	}
	location, err := kernel.NewLocation(dto.Latitude, dto.Longitude)
	if err != nil {
		return delivery.Event{}, err
	}
	return delivery.NewEvent(eventType, location, dto.Notes, dto.OccurredAt.UTC())
}
