// Package postgres provides the GORM-based implementation of the Unit of Work
// pattern. A unit of work keeps a list of the aggregates a business
// transaction writes and stores their domain events in the outbox as part of
// the same transaction.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	del, err := uow.DeliveryRepository().GetForUpdate(ctx, deliveryID)
//	if err != nil {
//	    return err
//	}
//	c, err := uow.CourierRepository().GetForUpdate(ctx, del.CourierID())
//	if err != nil {
//	    return err
//	}
//
//	// mutate both aggregates, then
//	if err := uow.DeliveryRepository().Update(ctx, del); err != nil {
//	    return err
//	}
//	if err := uow.CourierRepository().Update(ctx, c); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency:
//   - each UnitOfWork owns one transaction and must not be shared between
//     goroutines
//   - GetForUpdate takes row locks; lock deliveries before couriers and
//     couriers in ascending ID order to avoid deadlocks
package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/deliveryrepo"
	"dispatch/internal/adapters/out/postgres/outboxrepo"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

// trackedAggregate is an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// eventSource is an aggregate that buffers domain events.
type eventSource interface {
	DomainEvents() []delivery.DomainEvent
	ClearDomainEvents()
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection
// pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create returns a fresh unit of work with no transaction and nothing
// tracked.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one database transaction.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Calling it again while a transaction is
// active does nothing.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	uow.tx = tx
	uow.trackedAggregates = nil
	return nil
}

// Commit stores the domain events of every tracked aggregate in the outbox
// and commits. The buffers are cleared only once the commit succeeded; on
// failure the transaction is left for Rollback.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	var (
		sources []eventSource
		events  []delivery.DomainEvent
	)
	for _, tracked := range uow.trackedAggregates {
		if src, ok := tracked.Aggregate.(eventSource); ok {
			sources = append(sources, src)
			events = append(events, src.DomainEvents()...)
		}
	}

	if err := uow.OutboxRepository().Add(ctx, events...); err != nil {
		return fmt.Errorf("store domain events: %w", err)
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		return err
	}

	for _, src := range sources {
		src.ClearDomainEvents()
	}
	uow.trackedAggregates = nil
	return nil
}

// Rollback discards the transaction. Without an active transaction, for
// example after Commit, it does nothing.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return nil
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = nil
	return err
}

// CourierRepository returns a courier repository bound to the transaction,
// or to the pool when no transaction is active.
func (uow *GormUnitOfWork) CourierRepository() ports.CourierRepository {
	return courierrepo.NewGormCourierRepository(uow.conn(), uow)
}

// DeliveryRepository returns a delivery repository bound to the transaction,
// or to the pool when no transaction is active.
func (uow *GormUnitOfWork) DeliveryRepository() ports.DeliveryRepository {
	return deliveryrepo.NewGormDeliveryRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.conn())
}

// TrackAggregate registers an aggregate written by a repository. Writing the
// same aggregate twice keeps one entry.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	for i, tracked := range uow.trackedAggregates {
		if tracked.ID == id {
			uow.trackedAggregates[i].Aggregate = aggregate
			return
		}
	}

	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
