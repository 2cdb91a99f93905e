package http

import (
	"github.com/MKhiriev/go-fall/internal/config"
	"github.com/MKhiriev/go-fall/internal/health"
	"github.com/MKhiriev/go-fall/internal/logger"
	"github.com/MKhiriev/go-fall/internal/metrics"
	"github.com/MKhiriev/go-fall/internal/service"
)

type Handler struct {
	services       *service.Services
	health         *health.Registry
	metrics        *metrics.Metrics
	requestHandler RequestHandler
	cfg            config.Server

	logger *logger.Logger
}

// NewHandler builds the HTTP handler. Bearer authentication is switched on
// when cfg.App.TokenSignKey is set.
func NewHandler(services *service.Services, registry *health.Registry, m *metrics.Metrics, cfg *config.StructuredConfig, logger *logger.Logger) *Handler {
	var requestHandler RequestHandler = DefaultRequestHandler{}
	if cfg.App.TokenSignKey != "" {
		requestHandler = NewJWTRequestHandler(cfg.App.TokenSignKey, cfg.App.TokenIssuer)
		logger.Info().Msg("bearer token authentication enabled")
	}

	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		health:         registry,
		metrics:        m,
		requestHandler: requestHandler,
		cfg:            cfg.Server,
		logger:         logger,
	}
}

// WithRequestHandler replaces the request hooks.
func (h *Handler) WithRequestHandler(rh RequestHandler) *Handler {
	h.requestHandler = rh
	return h
}
