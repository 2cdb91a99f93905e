package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-fall/internal/config"
	"github.com/MKhiriev/go-fall/internal/health"
	"github.com/MKhiriev/go-fall/internal/logger"
	"github.com/MKhiriev/go-fall/internal/metrics"
)

// HealthProbe runs the health checks periodically and publishes the result
// as the fall_health_status gauge.
type HealthProbe struct {
	registry *health.Registry
	metrics  *metrics.Metrics
	interval time.Duration
	logger   *logger.Logger
}

// NewHealthProbe builds the probe. A non-positive interval falls back to
// [config.DefaultHealthProbeInterval].
func NewHealthProbe(registry *health.Registry, m *metrics.Metrics, interval time.Duration, logger *logger.Logger) *HealthProbe {
	if interval <= 0 {
		interval = config.DefaultHealthProbeInterval
	}
	return &HealthProbe{
		registry: registry,
		metrics:  m,
		interval: interval,
		logger:   logger,
	}
}

// Run probes once right away and then on every tick until ctx is done.
func (p *HealthProbe) Run(ctx context.Context) error {
	p.logger.Info().Dur("interval", p.interval).Msg("health probe started")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		p.probe(ctx)

		select {
		case <-ctx.Done():
			p.logger.Info().Msg("health probe stopped")
			return nil
		case <-ticker.C:
		}
	}
}

func (p *HealthProbe) probe(ctx context.Context) {
	h := p.registry.Check(ctx)
	for name, detail := range h.Detail {
		p.metrics.SetHealth(name, detail.Up())
		if !detail.Up() {
			p.logger.Warn().Str("check", name).Str("error", detail.Err).Msg("health check failed")
		}
	}
}
