package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-fall/internal/config"
	"github.com/MKhiriev/go-fall/internal/logger"
	"github.com/MKhiriev/go-fall/models"
	"github.com/google/uuid"
)

type appInfoService struct {
	app models.Application

	logger *logger.Logger
}

// NewAppInfoService captures the identity of this process. The instance id
// and start time are fixed at construction. When no version is configured
// the build version is reported.
func NewAppInfoService(cfg *config.StructuredConfig, build models.AppBuildInfo, logger *logger.Logger) AppInfoService {
	version := cfg.App.Version
	if version == "" {
		version = build.BuildVersion()
	}

	app := models.Application{
		Name:       cfg.App.Name,
		Version:    version,
		InstanceID: uuid.NewString(),
		StartedAt:  time.Now().UTC(),
		Build: models.BuildInfo{
			Version: build.BuildVersion(),
			Date:    build.BuildDate(),
			Commit:  build.BuildCommit(),
		},
		Features: models.Features{
			Database: cfg.Storage.DB.Enabled(),
			Redis:    cfg.Storage.Redis.Enabled(),
		},
	}

	logger.Info().Str("instance_id", app.InstanceID).Str("version", app.Version).Msg("app info service created")

	return &appInfoService{app: app, logger: logger}
}

func (s *appInfoService) Info(ctx context.Context) models.Application {
	return s.app
}
