package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-fall/internal/adapter"
	"github.com/MKhiriev/go-fall/internal/config"
	handler "github.com/MKhiriev/go-fall/internal/handler/http"
	"github.com/MKhiriev/go-fall/internal/health"
	"github.com/MKhiriev/go-fall/internal/logger"
	"github.com/MKhiriev/go-fall/internal/metrics"
	"github.com/MKhiriev/go-fall/internal/server"
	"github.com/MKhiriev/go-fall/internal/service"
	"github.com/MKhiriev/go-fall/internal/store"
	"github.com/MKhiriev/go-fall/internal/workers"
	"github.com/MKhiriev/go-fall/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(build)

	if err := run(build); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(build models.AppBuildInfo) error {
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}

	log, err := logger.NewConfiguredLogger(cfg.App.Name, logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return fmt.Errorf("error creating logger: %w", err)
	}
	log.Info().Str("address", cfg.Server.HTTPAddress).Msg("start web")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Err(err).Msg("error creating storages")
		return err
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("error closing storages")
		}
	}()

	registry := newHealthRegistry(storages.HealthCheckers(), cfg.Upstream, log)

	m := metrics.New()
	services := service.NewServices(storages, cfg, build, log)
	h := handler.NewHandler(services, registry, m, cfg, log)

	ws := workers.NewWorkers(
		workers.NewHealthProbe(registry, m, cfg.Workers.HealthProbeInterval, log),
	)

	srv, err := server.NewServer(h.Init(), ws, cfg.Server, log)
	if err != nil {
		log.Err(err).Msg("error creating server")
		return err
	}

	return srv.RunServer(ctx)
}

// newHealthRegistry registers the storage checks and, when configured, the
// upstream health route.
func newHealthRegistry(checkers map[string]health.Checker, upstream config.Upstream, log *logger.Logger) *health.Registry {
	registry := health.NewRegistry()
	for name, checker := range checkers {
		registry.Add(name, checker)
	}

	if upstream.Enabled() {
		client := adapter.NewTracedClient(
			adapter.WithBaseURL(upstream.URL),
			adapter.WithTimeout(upstream.Timeout),
			adapter.WithLogger(log),
		)
		registry.Add(upstream.Name, adapter.NewHealthChecker(client, upstream.HealthPath))
		log.Info().Str("upstream", upstream.URL).Msg("upstream health check registered")
	}

	return registry
}

func printBuildInfo(build models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", build.BuildVersion())
	fmt.Printf("Build date: %s\n", build.BuildDate())
	fmt.Printf("Build commit: %s\n", build.BuildCommit())
}
