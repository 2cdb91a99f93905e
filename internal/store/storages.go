package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-fall/internal/config"
	"github.com/MKhiriev/go-fall/internal/health"
	"github.com/MKhiriev/go-fall/internal/logger"
)

// Health check names of the storage backends.
const (
	DatabaseCheckName = "database"
	RedisCheckName    = "redis"
)

// Storages holds the enabled backends. DB and Redis are nil when their
// feature is disabled; VisitCounter is never nil.
type Storages struct {
	DB           *DB
	Redis        *Redis
	VisitCounter VisitCounter
}

// NewStorages connects the enabled backends, migrates the database and picks
// the visit counter: Redis if enabled, otherwise PostgreSQL, otherwise
// memory.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	storages := new(Storages)

	if cfg.DB.Enabled() {
		db, err := NewConnectPostgres(ctx, cfg.DB, log)
		if err != nil {
			return nil, err
		}
		if err = db.Migrate(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("error migrating database: %w", err)
		}
		storages.DB = db
	}

	if cfg.Redis.Enabled() {
		r, err := NewConnectRedis(ctx, cfg.Redis, log)
		if err != nil {
			storages.Close()
			return nil, err
		}
		storages.Redis = r
	}

	switch {
	case storages.Redis != nil:
		storages.VisitCounter = NewRedisVisitCounter(storages.Redis.Client(), log)
	case storages.DB != nil:
		storages.VisitCounter = NewVisitRepository(storages.DB, log)
	default:
		storages.VisitCounter = NewMemoryVisitCounter()
	}

	return storages, nil
}

// HealthCheckers returns the checks of the enabled backends by name.
func (s *Storages) HealthCheckers() map[string]health.Checker {
	checkers := make(map[string]health.Checker)
	if s.DB != nil {
		checkers[DatabaseCheckName] = s.DB
	}
	if s.Redis != nil {
		checkers[RedisCheckName] = s.Redis
	}
	return checkers
}

// Close closes every enabled backend.
func (s *Storages) Close() error {
	var errs []error
	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing database: %w", err))
		}
	}
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing redis: %w", err))
		}
	}
	return errors.Join(errs...)
}
