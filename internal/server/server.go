package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/MKhiriev/go-fall/internal/config"
	"github.com/MKhiriev/go-fall/internal/logger"
	"github.com/MKhiriev/go-fall/internal/workers"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	httpServer      *http.Server
	workers         *workers.Workers
	shutdownTimeout time.Duration
	addr            atomic.Value
	logger          *logger.Logger
}

// NewServer serves handler on cfg.HTTPAddress. workers may be nil.
func NewServer(handler http.Handler, workers *workers.Workers, cfg config.Server, logger *logger.Logger) (*Server, error) {
	logger.Info().Msg("creating new server...")
	if cfg.HTTPAddress == "" {
		return nil, errNoHTTPAddress
	}

	shutdownTimeout := cfg.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = config.DefaultShutdownTimeout
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.HTTPAddress,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		workers:         workers,
		shutdownTimeout: shutdownTimeout,
		logger:          logger,
	}, nil
}

// RunServer runs until the process receives SIGINT, SIGTERM or SIGQUIT.
func (s *Server) RunServer(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx,
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	return s.Run(ctx)
}

// Run serves HTTP and runs the workers until ctx is done or one of them
// fails, then shuts the HTTP server down within the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("%w on %s: %w", ErrListening, s.httpServer.Addr, err)
	}
	s.addr.Store(ln.Addr().String())

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info().Str("address", ln.Addr().String()).Msg("launching HTTP server")
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%w: %w", ErrServing, err)
		}
		return nil
	})

	if s.workers != nil {
		g.Go(func() error {
			return s.workers.Run(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		return s.shutdown()
	})

	if err = g.Wait(); err != nil {
		s.logger.Err(err).Msg("server stopped with error")
		return err
	}

	s.logger.Info().Msg("server shutdown gracefully")
	return nil
}

// Addr is the address the server listens on, or "" before Run.
func (s *Server) Addr() string {
	addr, _ := s.addr.Load().(string)
	return addr
}

func (s *Server) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	s.logger.Info().Dur("timeout", s.shutdownTimeout).Msg("shutting down HTTP server")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrShuttingDown, err)
	}
	return nil
}
