package store

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-fall/internal/config"
	"github.com/MKhiriev/go-fall/internal/logger"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStorages_NoFeatures(t *testing.T) {
	s, err := NewStorages(context.Background(), config.Storage{}, logger.Nop())
	require.NoError(t, err)

	assert.Nil(t, s.DB)
	assert.Nil(t, s.Redis)
	assert.IsType(t, &memoryVisitCounter{}, s.VisitCounter)
	assert.Empty(t, s.HealthCheckers())
	assert.NoError(t, s.Close())
}

func TestNewStorages_Redis(t *testing.T) {
	mr := miniredis.RunT(t)

	s, err := NewStorages(context.Background(), config.Storage{Redis: config.Redis{URL: "redis://" + mr.Addr()}}, logger.Nop())
	require.NoError(t, err)
	defer s.Close()

	require.NotNil(t, s.Redis)
	assert.IsType(t, &redisVisitCounter{}, s.VisitCounter)

	checkers := s.HealthCheckers()
	require.Contains(t, checkers, RedisCheckName)
	assert.NotContains(t, checkers, DatabaseCheckName)
	assert.NoError(t, checkers[RedisCheckName].Check(context.Background()))
}

func TestNewStorages_RedisUnreachable(t *testing.T) {
	_, err := NewStorages(context.Background(), config.Storage{Redis: config.Redis{URL: "redis://%zz"}}, logger.Nop())
	assert.Error(t, err)
}

func TestStorages_HealthCheckersWithDB(t *testing.T) {
	db, _ := newMockDB(t)
	s := &Storages{DB: db, VisitCounter: NewVisitRepository(db, logger.Nop())}

	checkers := s.HealthCheckers()
	assert.Contains(t, checkers, DatabaseCheckName)
	assert.NotContains(t, checkers, RedisCheckName)
}
