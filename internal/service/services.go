package service

import (
	"github.com/MKhiriev/go-fall/internal/config"
	"github.com/MKhiriev/go-fall/internal/logger"
	"github.com/MKhiriev/go-fall/internal/store"
	"github.com/MKhiriev/go-fall/models"
)

type Services struct {
	AppInfoService  AppInfoService
	GreetingService GreetingService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, build models.AppBuildInfo, logger *logger.Logger) *Services {
	return &Services{
		AppInfoService:  NewAppInfoService(cfg, build, logger),
		GreetingService: NewGreetingService(storages.VisitCounter, logger),
	}
}
