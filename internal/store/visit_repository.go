package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-fall/internal/logger"
	sq "github.com/Masterminds/squirrel"
	"github.com/sethvargo/go-retry"
)

const (
	visitsTable = "visits"

	incrementMaxRetries  = 3
	incrementBackoffBase = 50 * time.Millisecond
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// visitRepository counts visits in the PostgreSQL "visits" table.
type visitRepository struct {
	db *DB

	logger *logger.Logger
}

func NewVisitRepository(db *DB, log *logger.Logger) VisitCounter {
	return &visitRepository{db: db, logger: log}
}

// Increment upserts the row of name and returns its new total. Serialization
// failures and deadlocks are retried.
func (r *visitRepository) Increment(ctx context.Context, name string) (int64, error) {
	if name == "" {
		return 0, ErrEmptyName
	}

	query, args, err := psql.Insert(visitsTable).
		Columns("name", "visits").
		Values(name, sq.Expr("1")).
		Suffix("ON CONFLICT (name) DO UPDATE SET visits = visits.visits + 1, updated_at = now() RETURNING visits").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var visits int64
	backoff := retry.WithMaxRetries(incrementMaxRetries, retry.NewExponential(incrementBackoffBase))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		ctx, cancel := r.db.withTimeout(ctx)
		defer cancel()

		scanErr := r.db.QueryRowContext(ctx, query, args...).Scan(&visits)
		if scanErr != nil && r.db.errorClassificator.Classify(scanErr) == Retryable {
			r.logger.Warn().Err(scanErr).Str("pg_code", postgresError(scanErr)).Msg("retrying visit increment")
			return retry.RetryableError(scanErr)
		}
		return scanErr
	})
	if err != nil {
		r.logger.Err(err).Str("pg_code", postgresError(err)).Msg("error incrementing visits")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return visits, nil
}

// Count returns the stored total of name.
func (r *visitRepository) Count(ctx context.Context, name string) (int64, error) {
	query, args, err := psql.Select("visits").
		From(visitsTable).
		Where(sq.Eq{"name": name}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	ctx, cancel := r.db.withTimeout(ctx)
	defer cancel()

	var visits int64
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&visits)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return visits, nil
}
