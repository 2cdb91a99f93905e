package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-fall/internal/logger"
	"github.com/redis/go-redis/v9"
)

const visitsKeyPrefix = "visits:"

// redisVisitCounter keeps one integer key per name.
type redisVisitCounter struct {
	client redis.Cmdable

	logger *logger.Logger
}

func NewRedisVisitCounter(client redis.Cmdable, log *logger.Logger) VisitCounter {
	return &redisVisitCounter{client: client, logger: log}
}

func (c *redisVisitCounter) Increment(ctx context.Context, name string) (int64, error) {
	if name == "" {
		return 0, ErrEmptyName
	}

	visits, err := c.client.Incr(ctx, visitsKey(name)).Result()
	if err != nil {
		c.logger.Err(err).Str("name", name).Msg("error incrementing visits")
		return 0, fmt.Errorf("%w: %w", ErrExecutingCommand, err)
	}
	return visits, nil
}

func (c *redisVisitCounter) Count(ctx context.Context, name string) (int64, error) {
	visits, err := c.client.Get(ctx, visitsKey(name)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingCommand, err)
	}
	return visits, nil
}

func visitsKey(name string) string {
	return visitsKeyPrefix + name
}
