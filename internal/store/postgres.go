package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-fall/internal/config"
	"github.com/MKhiriev/go-fall/internal/logger"
	"github.com/MKhiriev/go-fall/migrations"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// DB is the PostgreSQL connection pool of the "database" feature.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	connectionTimeout  time.Duration
	logger             *logger.Logger
}

// NewConnectPostgres opens a pool for cfg.URL, applies the pool settings and
// waits until the database answers a ping or cfg.Pool.ConnectionTimeout
// elapses.
func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	log.Info().Msg("init database...")

	// establish connection
	conn, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		log.Err(err).Msg("error occurred during database connection")
		return nil, fmt.Errorf("error occurred during database connection: %w", err)
	}

	applyPoolSettings(conn, cfg.Pool)

	db := newDB(conn, cfg.Pool.ConnectionTimeout, log)

	// ping database
	if err = connectWithRetry(ctx, db.connectionTimeout, db.isPermanent, conn.PingContext); err != nil {
		log.Err(err).Msg("error connecting database (ping)")
		conn.Close()
		return nil, err
	}
	log.Info().Msg("connected to database successfully")

	return db, nil
}

// newDB wraps conn. A non-positive connectionTimeout falls back to
// [config.DefaultConnectionTimeout].
func newDB(conn *sql.DB, connectionTimeout time.Duration, log *logger.Logger) *DB {
	if connectionTimeout <= 0 {
		connectionTimeout = config.DefaultConnectionTimeout
	}
	return &DB{
		DB:                 conn,
		logger:             log,
		connectionTimeout:  connectionTimeout,
		errorClassificator: NewPostgresErrorClassifier(),
	}
}

// withTimeout bounds a pool checkout and the statement run on it by the
// connection timeout, whatever deadline the caller has.
func (db *DB) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, db.connectionTimeout)
}

func applyPoolSettings(conn *sql.DB, pool config.Pool) {
	maxSize := pool.MaxSize
	if maxSize <= 0 {
		maxSize = config.DefaultPoolMaxSize
	}
	conn.SetMaxOpenConns(maxSize)

	if pool.MinIdle > 0 {
		conn.SetMaxIdleConns(pool.MinIdle)
	}
	if pool.MaxLifetime > 0 {
		conn.SetConnMaxLifetime(pool.MaxLifetime)
	}
	if pool.IdleTimeout > 0 {
		conn.SetConnMaxIdleTime(pool.IdleTimeout)
	}
}

// Check runs a test transaction: it begins a transaction and rolls it back.
func (db *DB) Check(ctx context.Context) error {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	if err = tx.Rollback(); err != nil {
		return fmt.Errorf("%w: %w", ErrRollingBackTransaction, err)
	}
	return nil
}

// Migrate applies the embedded schema migrations.
func (db *DB) Migrate(ctx context.Context) error {
	applied, err := migrations.Migrate(ctx, db.DB)
	if err != nil {
		return err
	}
	db.logger.Info().Int("applied", applied).Msg("database migrated")
	return nil
}

// isPermanent reports whether err is a server-side error that a retry will
// not fix, such as bad credentials or an unknown database.
func (db *DB) isPermanent(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return db.errorClassificator.Classify(err) == NonRetryable
}

func postgresError(err error) string {
	var pgErr *pgconn.PgError
	// if postgres returns error
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}
