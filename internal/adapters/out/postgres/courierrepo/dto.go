// Package courierrepo persists the courier aggregate. It converts between the
// domain aggregate and its row in the couriers table.
package courierrepo

import (
	"time"

	"github.com/google/uuid"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// CourierDTO is the couriers row. Timestamps come from the aggregate, so
// gorm's automatic tracking is switched off.
type CourierDTO struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey"`
	TenantID    uuid.UUID   `gorm:"type:uuid;not null"`
	Name        string      `gorm:"type:varchar(255);not null"`
	Phone       string      `gorm:"type:varchar(64);not null"`
	VehicleType string      `gorm:"type:varchar(64);not null"`
	Status      string      `gorm:"type:varchar(32);not null"`
	Location    LocationDTO `gorm:"embedded"`
	Capacity    CapacityDTO `gorm:"embedded;embeddedPrefix:max_"`
	Load        LoadDTO     `gorm:"embedded;embeddedPrefix:current_"`
	CreatedAt   time.Time   `gorm:"not null;autoCreateTime:false"`
	UpdatedAt   time.Time   `gorm:"not null;autoUpdateTime:false"`
}

// TableName overrides gorm's default "courier_dtos".
func (CourierDTO) TableName() string {
	return "couriers"
}

// LocationDTO is the courier's last known position.
type LocationDTO struct {
	Latitude  float64 `gorm:"type:double precision;not null"`
	Longitude float64 `gorm:"type:double precision;not null"`
}

// CapacityDTO stores the fixed limits as max_orders, max_weight, max_volume.
type CapacityDTO struct {
	Orders int `gorm:"not null"`
	Weight int `gorm:"not null"`
	Volume int `gorm:"not null"`
}

// LoadDTO stores the running counters as current_orders, current_weight,
// current_volume.
type LoadDTO struct {
	Orders int `gorm:"not null"`
	Weight int `gorm:"not null"`
	Volume int `gorm:"not null"`
}

func fromDomain(c *courier.Courier) CourierDTO {
	load := c.Load()
	capacity := c.Capacity()

	return CourierDTO{
		ID:          c.ID().Google(),
		TenantID:    c.TenantID().Google(),
		Name:        c.Name(),
		Phone:       c.Phone(),
		VehicleType: c.VehicleType(),
		Status:      c.Status().String(),
		Location: LocationDTO{
			Latitude:  c.Location().Latitude(),
			Longitude: c.Location().Longitude(),
		},
		Capacity: CapacityDTO{
			Orders: capacity.MaxOrders(),
			Weight: capacity.MaxWeight(),
			Volume: capacity.MaxVolume(),
		},
		Load: LoadDTO{
			Orders: load.Orders,
			Weight: load.Weight,
			Volume: load.Volume,
		},
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
	}
}

// toDomain rebuilds the aggregate through RestoreCourier so a corrupted row
// surfaces as a validation error instead of a broken aggregate.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.FromGoogleUUID(dto.ID)
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.FromGoogleUUID(dto.TenantID)
	if err != nil {
		return nil, err
	}
	status, err := courier.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	location, err := kernel.NewLocation(dto.Location.Latitude, dto.Location.Longitude)
	if err != nil {
		return nil, err
	}
	capacity, err := courier.NewCapacity(dto.Capacity.Orders, dto.Capacity.Weight, dto.Capacity.Volume)
	if err != nil {
		return nil, err
	}

	return courier.RestoreCourier(
		id,
		tenantID,
		dto.Name,
		dto.Phone,
		dto.VehicleType,
		capacity,
		status,
		location,
		courier.Load{
			Orders: dto.Load.Orders,
			Weight: dto.Load.Weight,
			Volume: dto.Load.Volume,
		},
		dto.CreatedAt.UTC(),
		dto.UpdatedAt.UTC(),
	)
}
