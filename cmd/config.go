package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/route"
	"dispatch/internal/pkg/errs"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RouteSeed    uint64
	TrafficLevel route.TrafficLevel
	Timeouts     commands.Timeouts

	OutboxCron      string
	OutboxBatchSize int
	OverdueCron     string
}

const (
	defaultOutboxCron      = "*/5 * * * * *"
	defaultOutboxBatchSize = 100
	defaultOverdueCron     = "0 * * * * *"
)

// LoadConfig reads the settings through getenv, usually os.Getenv after
// godotenv has filled the environment.
func LoadConfig(getenv func(string) string) (Config, error) {
	cfg := Config{
		HTTPPort:        getenv("HTTP_PORT"),
		DBHost:          getenv("DB_HOST"),
		DBPort:          getenv("DB_PORT"),
		DBUser:          getenv("DB_USER"),
		DBPassword:      getenv("DB_PASSWORD"),
		DBName:          getenv("DB_NAME"),
		DBSslMode:       getenv("DB_SSLMODE"),
		RouteSeed:       1,
		TrafficLevel:    route.TrafficLevelNormal,
		Timeouts:        commands.DefaultTimeouts(),
		OutboxCron:      defaultOutboxCron,
		OutboxBatchSize: defaultOutboxBatchSize,
		OverdueCron:     defaultOverdueCron,
	}

	var err error
	for key, value := range map[string]string{
		"HTTP_PORT": cfg.HTTPPort,
		"DB_HOST":   cfg.DBHost,
		"DB_PORT":   cfg.DBPort,
		"DB_USER":   cfg.DBUser,
		"DB_NAME":   cfg.DBName,
	} {
		if value == "" {
			err = errors.Join(err, errs.NewValueIsRequiredError(key))
		}
	}
	if cfg.DBSslMode == "" {
		cfg.DBSslMode = "disable"
	}

	if raw := getenv("ROUTE_SEED"); raw != "" {
		seed, perr := strconv.ParseUint(raw, 10, 64)
		if perr != nil {
			err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("ROUTE_SEED", perr))
		}
		cfg.RouteSeed = seed
	}
	if raw := getenv("TRAFFIC_LEVEL"); raw != "" {
		level, perr := route.ParseTrafficLevel(raw)
		if perr != nil {
			err = errors.Join(err, perr)
		}
		cfg.TrafficLevel = level
	}
	if raw := getenv("SELECTION_TIMEOUT"); raw != "" {
		d, perr := parseTimeout("SELECTION_TIMEOUT", raw)
		err = errors.Join(err, perr)
		cfg.Timeouts.Selection = d
	}
	if raw := getenv("PERSISTENCE_TIMEOUT"); raw != "" {
		d, perr := parseTimeout("PERSISTENCE_TIMEOUT", raw)
		err = errors.Join(err, perr)
		cfg.Timeouts.Persistence = d
	}
	if raw := getenv("OUTBOX_CRON"); raw != "" {
		cfg.OutboxCron = raw
	}
	if raw := getenv("OUTBOX_BATCH_SIZE"); raw != "" {
		size, perr := strconv.Atoi(raw)
		if perr != nil || size < 1 {
			err = errors.Join(err, errs.NewValueIsOutOfRangeError("OUTBOX_BATCH_SIZE", raw, 1, "+Inf"))
		}
		cfg.OutboxBatchSize = size
	}
	if raw := getenv("OVERDUE_CRON"); raw != "" {
		cfg.OverdueCron = raw
	}

	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DSN is the PostgreSQL connection string for both gorm and migrations.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func parseTimeout(key, raw string) (time.Duration, error) {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	if d < 0 {
		return 0, errs.NewValueIsOutOfRangeError(key, d, time.Duration(0), "+Inf")
	}
	return d, nil
}
