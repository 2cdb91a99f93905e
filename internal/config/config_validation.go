// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.Name == "" {
		return fmt.Errorf("%w: empty application name", ErrInvalidAppConfigs)
	}

	if err := validateAddress(cfg.Server.HTTPAddress); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidServerConfigs, err)
	}
	if cfg.Server.RequestTimeout < 0 || cfg.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("%w: negative timeout", ErrInvalidServerConfigs)
	}

	if err := cfg.Storage.DB.Pool.validate(); err != nil {
		return fmt.Errorf("%w: db pool: %w", ErrInvalidStorageConfigs, err)
	}
	if err := cfg.Storage.Redis.Pool.validate(); err != nil {
		return fmt.Errorf("%w: redis pool: %w", ErrInvalidStorageConfigs, err)
	}

	if cfg.Workers.HealthProbeInterval < 0 {
		return fmt.Errorf("%w: negative health probe interval", ErrInvalidWorkerConfigs)
	}

	if cfg.Upstream.Timeout < 0 {
		return fmt.Errorf("%w: negative timeout", ErrInvalidUpstreamConfigs)
	}
	if cfg.Upstream.Enabled() {
		if _, err := url.ParseRequestURI(cfg.Upstream.URL); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidUpstreamConfigs, err)
		}
	}

	return nil
}

func (p Pool) validate() error {
	if p.MaxSize < 0 || p.MinIdle < 0 {
		return fmt.Errorf("negative pool size")
	}
	if p.MaxSize > 0 && p.MinIdle > p.MaxSize {
		return fmt.Errorf("min idle %d exceeds max size %d", p.MinIdle, p.MaxSize)
	}
	if p.MaxLifetime < 0 || p.IdleTimeout < 0 || p.ConnectionTimeout < 0 {
		return fmt.Errorf("negative pool duration")
	}
	return nil
}

func validateAddress(addr string) error {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("address %q: %w", addr, err)
	}
	p, err := strconv.Atoi(port)
	if err != nil || p < 0 || p > 65535 {
		return fmt.Errorf("address %q: invalid port", addr)
	}
	return nil
}
