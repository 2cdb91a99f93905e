package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-fall/internal/config"
	"github.com/MKhiriev/go-fall/internal/logger"
	"github.com/redis/go-redis/v9"
)

// Redis is the connection pool of the "redis" feature.
type Redis struct {
	client *redis.Client
	once   sync.Once

	logger *logger.Logger
}

// NewConnectRedis builds a pool for cfg.URL and waits until the server
// answers PING or cfg.Pool.ConnectionTimeout elapses.
func NewConnectRedis(ctx context.Context, cfg config.Redis, log *logger.Logger) (*Redis, error) {
	log.Info().Msg("init redis...")

	opt, err := newRedisOptions(cfg)
	if err != nil {
		log.Err(err).Msg("error parsing redis url")
		return nil, err
	}

	client := redis.NewClient(opt)
	r := &Redis{client: client, logger: log}

	if err = connectWithRetry(ctx, opt.DialTimeout, nil, r.Check); err != nil {
		log.Err(err).Msg("error connecting redis (ping)")
		client.Close()
		return nil, err
	}
	log.Info().Str("addr", opt.Addr).Int("pool_size", opt.PoolSize).Msg("connected to redis successfully")

	return r, nil
}

func newRedisOptions(cfg config.Redis) (*redis.Options, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	pool := cfg.Pool
	opt.PoolSize = config.DefaultPoolMaxSize
	if pool.MaxSize > 0 {
		opt.PoolSize = pool.MaxSize
	}
	if pool.MinIdle > 0 {
		opt.MinIdleConns = pool.MinIdle
	}
	if pool.MaxLifetime > 0 {
		opt.ConnMaxLifetime = pool.MaxLifetime
	}
	if pool.IdleTimeout > 0 {
		opt.ConnMaxIdleTime = pool.IdleTimeout
	}

	timeout := config.DefaultConnectionTimeout
	if pool.ConnectionTimeout > 0 {
		timeout = pool.ConnectionTimeout
	}
	opt.DialTimeout = timeout
	opt.PoolTimeout = timeout

	return opt, nil
}

// Check sends PING.
func (r *Redis) Check(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingCommand, err)
	}
	return nil
}

// Client returns the underlying go-redis client.
func (r *Redis) Client() *redis.Client {
	return r.client
}

// Close closes the pool. It is safe to call more than once.
func (r *Redis) Close() error {
	var err error
	r.once.Do(func() {
		err = r.client.Close()
	})
	return err
}
