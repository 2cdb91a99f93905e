package service

import (
	"context"

	"github.com/MKhiriev/go-fall/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AppInfoService describes the running instance.
type AppInfoService interface {
	Info(ctx context.Context) models.Application
}

// GreetingService implements the demo greeting routes.
type GreetingService interface {
	Hello(ctx context.Context) string
	Visit(ctx context.Context, name string) (models.Visit, error)
	Visits(ctx context.Context, name string) (models.Visit, error)
}
