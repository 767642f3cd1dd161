package queries

import (
	"context"
	"time"

	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
)

// GetActiveDeliveriesQueryHandler reads a courier's active deliveries with a
// single query joining the drop-off waypoint.
type GetActiveDeliveriesQueryHandler struct {
	db *gorm.DB
}

func NewGetActiveDeliveriesQueryHandler(db *gorm.DB) GetActiveDeliveriesQueryHandler {
	return GetActiveDeliveriesQueryHandler{db: db}
}

type activeDeliveryRow struct {
	ID               uuid.UUID `db:"id"`
	OrderID          uuid.UUID `db:"order_id"`
	Status           string    `db:"status"`
	CurrentLatitude  float64   `db:"current_latitude"`
	CurrentLongitude float64   `db:"current_longitude"`
	DropoffLatitude  float64   `db:"dropoff_latitude"`
	DropoffLongitude float64   `db:"dropoff_longitude"`
	EstimatedArrival time.Time `db:"estimated_arrival"`
	Progress         float64   `db:"progress"`
	OrderWeight      int       `db:"order_weight"`
	OrderVolume      int       `db:"order_volume"`
	CreatedAt        time.Time `db:"created_at"`
}

// Handle returns the deliveries oldest first. A courier without deliveries,
// or an unknown courier, yields an empty slice.
func (h GetActiveDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetActiveDeliveriesQuery,
) ([]GetActiveDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	statuses := make([]string, 0)
	for _, s := range delivery.ActiveStatuses() {
		statuses = append(statuses, s.String())
	}

	sqlDB, err := h.db.DB()
	if err != nil {
		return nil, err
	}

	var rows []activeDeliveryRow
	err = sqlscan.Select(ctx, sqlDB, &rows, `
		SELECT
			d.id, d.order_id, d.status,
			d.current_latitude, d.current_longitude,
			w.latitude AS dropoff_latitude, w.longitude AS dropoff_longitude,
			d.estimated_arrival, d.progress,
			d.order_weight, d.order_volume,
			d.created_at
		FROM deliveries d
		JOIN LATERAL (
			SELECT latitude, longitude
			FROM delivery_waypoints
			WHERE delivery_id = d.id
			ORDER BY position DESC
			LIMIT 1
		) w ON true
		WHERE d.courier_id = $1
		  AND d.status = ANY($2::text[])
		ORDER BY d.created_at, d.id
	`, query.CourierID().String(), pq.Array(statuses))
	if err != nil {
		return nil, err
	}

	deliveries := make([]GetActiveDeliveriesQueryResponse, 0, len(rows))
	for _, row := range rows {
		d, err := row.toResponse()
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}

	return deliveries, nil
}

func (r activeDeliveryRow) toResponse() (GetActiveDeliveriesQueryResponse, error) {
	id, err := kernel.FromGoogleUUID(r.ID)
	if err != nil {
		return GetActiveDeliveriesQueryResponse{}, err
	}
	orderID, err := kernel.FromGoogleUUID(r.OrderID)
	if err != nil {
		return GetActiveDeliveriesQueryResponse{}, err
	}
	status, err := delivery.ParseStatus(r.Status)
	if err != nil {
		return GetActiveDeliveriesQueryResponse{}, err
	}
	current, err := kernel.NewLocation(r.CurrentLatitude, r.CurrentLongitude)
	if err != nil {
		return GetActiveDeliveriesQueryResponse{}, err
	}
	dropoff, err := kernel.NewLocation(r.DropoffLatitude, r.DropoffLongitude)
	if err != nil {
		return GetActiveDeliveriesQueryResponse{}, err
	}

	return GetActiveDeliveriesQueryResponse{
		ID:               id,
		OrderID:          orderID,
		Status:           status,
		CurrentLocation:  current,
		Dropoff:          dropoff,
		EstimatedArrival: r.EstimatedArrival.UTC(),
		Progress:         r.Progress,
		Weight:           r.OrderWeight,
		Volume:           r.OrderVolume,
		CreatedAt:        r.CreatedAt.UTC(),
	}, nil
}
