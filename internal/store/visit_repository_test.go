package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-fall/internal/logger"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	incrementQuery = regexp.QuoteMeta("INSERT INTO visits (name,visits) VALUES ($1,1) ON CONFLICT (name) DO UPDATE SET visits = visits.visits + 1")
	countQuery     = regexp.QuoteMeta("SELECT visits FROM visits WHERE name = $1")
)

func TestVisitRepository_Increment(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVisitRepository(db, logger.Nop())

	mock.ExpectQuery(incrementQuery).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"visits"}).AddRow(int64(3)))

	visits, err := repo.Increment(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(3), visits)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVisitRepository_Increment_EmptyName(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVisitRepository(db, logger.Nop())

	_, err := repo.Increment(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVisitRepository_Increment_RetriesSerializationFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVisitRepository(db, logger.Nop())

	mock.ExpectQuery(incrementQuery).
		WithArgs("bob").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.SerializationFailure})
	mock.ExpectQuery(incrementQuery).
		WithArgs("bob").
		WillReturnRows(sqlmock.NewRows([]string{"visits"}).AddRow(int64(1)))

	visits, err := repo.Increment(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(1), visits)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVisitRepository_Increment_DoesNotRetryPermanentError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVisitRepository(db, logger.Nop())

	mock.ExpectQuery(incrementQuery).
		WithArgs("bob").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UndefinedTable})

	_, err := repo.Increment(context.Background(), "bob")
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVisitRepository_Count(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVisitRepository(db, logger.Nop())

	mock.ExpectQuery(countQuery).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"visits"}).AddRow(int64(7)))

	visits, err := repo.Count(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(7), visits)
}

func TestVisitRepository_Count_NoRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVisitRepository(db, logger.Nop())

	mock.ExpectQuery(countQuery).
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"visits"}))

	visits, err := repo.Count(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Zero(t, visits)
}

func TestVisitRepository_Count_Error(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVisitRepository(db, logger.Nop())

	mock.ExpectQuery(countQuery).
		WithArgs("alice").
		WillReturnError(errors.New("broken pipe"))

	_, err := repo.Count(context.Background(), "alice")
	assert.ErrorIs(t, err, ErrScanningRow)
}
