package queries

import (
	"context"
	"time"

	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// GetAllCouriersQueryHandler reads couriers straight from the couriers table.
//
// Example:
//
//	handler := NewGetAllCouriersQueryHandler(db)
//	query, _ := NewGetAllCouriersQuery(tenantID)
//
//	couriers, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
type GetAllCouriersQueryHandler struct {
	db *gorm.DB
}

func NewGetAllCouriersQueryHandler(db *gorm.DB) GetAllCouriersQueryHandler {
	return GetAllCouriersQueryHandler{db: db}
}

type courierRow struct {
	ID            uuid.UUID `db:"id"`
	Name          string    `db:"name"`
	Phone         string    `db:"phone"`
	VehicleType   string    `db:"vehicle_type"`
	Status        string    `db:"status"`
	Latitude      float64   `db:"latitude"`
	Longitude     float64   `db:"longitude"`
	MaxOrders     int       `db:"max_orders"`
	MaxWeight     int       `db:"max_weight"`
	MaxVolume     int       `db:"max_volume"`
	CurrentOrders int       `db:"current_orders"`
	CurrentWeight int       `db:"current_weight"`
	CurrentVolume int       `db:"current_volume"`
	CreatedAt     time.Time `db:"created_at"`
}

// Handle returns the couriers sorted by name, then ID.
func (h GetAllCouriersQueryHandler) Handle(
	ctx context.Context,
	query GetAllCouriersQuery,
) ([]GetAllCouriersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	statuses := make([]string, 0, len(query.Statuses()))
	for _, s := range query.Statuses() {
		statuses = append(statuses, s.String())
	}

	sqlDB, err := h.db.DB()
	if err != nil {
		return nil, err
	}

	var rows []courierRow
	err = sqlscan.Select(ctx, sqlDB, &rows, `
		SELECT
			id, name, phone, vehicle_type, status,
			latitude, longitude,
			max_orders, max_weight, max_volume,
			current_orders, current_weight, current_volume,
			created_at
		FROM couriers
		WHERE tenant_id = $1
		  AND (cardinality($2::text[]) = 0 OR status = ANY($2::text[]))
		ORDER BY name, id
	`, query.TenantID().String(), pq.Array(statuses))
	if err != nil {
		return nil, err
	}

	couriers := make([]GetAllCouriersQueryResponse, 0, len(rows))
	for _, row := range rows {
		c, err := row.toResponse()
		if err != nil {
			return nil, err
		}
		couriers = append(couriers, c)
	}

	return couriers, nil
}

func (r courierRow) toResponse() (GetAllCouriersQueryResponse, error) {
	id, err := kernel.FromGoogleUUID(r.ID)
	if err != nil {
		return GetAllCouriersQueryResponse{}, err
	}
	status, err := courier.ParseStatus(r.Status)
	if err != nil {
		return GetAllCouriersQueryResponse{}, err
	}
	location, err := kernel.NewLocation(r.Latitude, r.Longitude)
	if err != nil {
		return GetAllCouriersQueryResponse{}, err
	}
	capacity, err := courier.NewCapacity(r.MaxOrders, r.MaxWeight, r.MaxVolume)
	if err != nil {
		return GetAllCouriersQueryResponse{}, err
	}
	load := courier.Load{Orders: r.CurrentOrders, Weight: r.CurrentWeight, Volume: r.CurrentVolume}

	return GetAllCouriersQueryResponse{
		ID:          id,
		Name:        r.Name,
		Phone:       r.Phone,
		VehicleType: r.VehicleType,
		Status:      status,
		Location:    location,
		Capacity:    capacity,
		Load:        load,
		Utilization: capacity.Utilization(load.Orders, load.Weight, load.Volume),
	}, nil
}
