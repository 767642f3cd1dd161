package deliveryrepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// PostgreSQL error codes the repository translates.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// GormDeliveryRepository implements ports.DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormDeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the delivery together with its route and milestone log.
//
// Errors:
//   - InvalidOperationError when a delivery with the same ID exists
//   - ObjectNotFoundError when the referenced courier does not exist
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case uniqueViolation:
				return errs.NewInvalidOperationError("add delivery", "delivery "+aggregate.ID().String()+" already exists")
			case foreignKeyViolation:
				return errs.NewObjectNotFoundError("courier", aggregate.CourierID().String())
			}
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update rewrites the delivery row, replaces the route and appends milestones
// that are not stored yet. The log is append-only, so existing event rows are
// never touched.
func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&DeliveryDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit(clause.Associations).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("delivery", aggregate.ID().String())
	}

	if err := db.Where("delivery_id = ?", dto.ID).Delete(&WaypointDTO{}).Error; err != nil {
		return err
	}
	if err := db.Create(&dto.Waypoints).Error; err != nil {
		return err
	}
	if len(dto.Events) > 0 {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&dto.Events).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get reads a delivery without locking it.
func (r *GormDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	return r.get(ctx, r.db.WithContext(ctx), id)
}

// GetForUpdate reads a delivery with its row locked until the transaction
// ends. Concurrent status updates on the same delivery queue behind it.
func (r *GormDeliveryRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	return r.get(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

// GetActiveByCourier returns the courier's non-terminal deliveries, oldest
// first.
func (r *GormDeliveryRepository) GetActiveByCourier(ctx context.Context, courierID kernel.UUID) ([]*delivery.Delivery, error) {
	if err := courierID.Validate(); err != nil {
		return nil, err
	}

	var dtos []DeliveryDTO
	if err := r.db.WithContext(ctx).
		Where("courier_id = ? AND status IN ?", courierID.Google(), activeStatuses()).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return r.restoreAll(ctx, dtos)
}

// GetOverdue returns active deliveries whose ETA is before now, most overdue
// first.
func (r *GormDeliveryRepository) GetOverdue(ctx context.Context, now time.Time) ([]*delivery.Delivery, error) {
	var dtos []DeliveryDTO
	if err := r.db.WithContext(ctx).
		Where("status IN ? AND estimated_arrival < ?", activeStatuses(), now).
		Order("estimated_arrival, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return r.restoreAll(ctx, dtos)
}

func (r *GormDeliveryRepository) get(ctx context.Context, db *gorm.DB, id kernel.UUID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	if err := db.First(&dto, "id = ?", id.Google()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", id.String())
		}
		return nil, err
	}

	deliveries, err := r.restoreAll(ctx, []DeliveryDTO{dto})
	if err != nil {
		return nil, err
	}
	return deliveries[0], nil
}

// restoreAll loads the child rows of every delivery with two queries and
// rebuilds the aggregates in input order.
func (r *GormDeliveryRepository) restoreAll(ctx context.Context, dtos []DeliveryDTO) ([]*delivery.Delivery, error) {
	deliveries := make([]*delivery.Delivery, 0, len(dtos))
	if len(dtos) == 0 {
		return deliveries, nil
	}

	ids := make([]uuid.UUID, 0, len(dtos))
	for _, dto := range dtos {
		ids = append(ids, dto.ID)
	}

	db := r.db.WithContext(ctx)

	var waypoints []WaypointDTO
	if err := db.Where("delivery_id IN ?", ids).Order("delivery_id, position").Find(&waypoints).Error; err != nil {
		return nil, err
	}
	var events []EventDTO
	if err := db.Where("delivery_id IN ?", ids).Order("delivery_id, position").Find(&events).Error; err != nil {
		return nil, err
	}

	waypointsByDelivery := make(map[uuid.UUID][]WaypointDTO, len(dtos))
	for _, w := range waypoints {
		waypointsByDelivery[w.DeliveryID] = append(waypointsByDelivery[w.DeliveryID], w)
	}
	eventsByDelivery := make(map[uuid.UUID][]EventDTO, len(dtos))
	for _, e := range events {
		eventsByDelivery[e.DeliveryID] = append(eventsByDelivery[e.DeliveryID], e)
	}

	for _, dto := range dtos {
		dto.Waypoints = waypointsByDelivery[dto.ID]
		dto.Events = eventsByDelivery[dto.ID]

		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}

	return deliveries, nil
}

func activeStatuses() []string {
	statuses := delivery.ActiveStatuses()
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, s.String())
	}
	return names
}
