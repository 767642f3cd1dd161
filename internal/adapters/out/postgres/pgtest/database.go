// Package pgtest starts a disposable PostgreSQL container with the production
// schema for integration suites.
package pgtest

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"dispatch/internal/adapters/out/postgres/migrations"
)

const databaseName = "testdb"

// Database is a running container plus a gorm connection to it.
type Database struct {
	container *postgres.PostgresContainer
	migrator  *sql.DB
	DB        *gorm.DB
}

// Start runs postgres:15-alpine and applies the migrations.
func Start(ctx context.Context) (*Database, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase(databaseName),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start postgres container: %w", err)
	}

	d := &Database{container: container}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, d.fail(ctx, err)
	}

	d.migrator, err = sql.Open("pgx", dsn)
	if err != nil {
		return nil, d.fail(ctx, err)
	}
	if err := migrations.Up(d.migrator, databaseName); err != nil {
		return nil, d.fail(ctx, err)
	}

	d.DB, err = gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, d.fail(ctx, err)
	}

	return d, nil
}

// Truncate empties every table in dependency order.
func (d *Database) Truncate(ctx context.Context) error {
	return d.DB.WithContext(ctx).
		Exec("TRUNCATE TABLE outbox_messages, delivery_events, delivery_waypoints, deliveries, couriers").
		Error
}

// Terminate reverts the schema and stops the container.
func (d *Database) Terminate(ctx context.Context) error {
	if d.migrator != nil {
		if err := migrations.Down(d.migrator, databaseName); err != nil {
			return err
		}
	}
	return d.container.Terminate(ctx)
}

func (d *Database) fail(ctx context.Context, cause error) error {
	if err := d.container.Terminate(ctx); err != nil {
		return fmt.Errorf("%w (terminate: %v)", cause, err)
	}
	return cause
}
