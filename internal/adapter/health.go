package adapter

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-fall/internal/health"
)

// HealthChecker checks an upstream through its health route. The upstream
// counts as down when the call fails, answers non-2xx, or reports a status
// other than UP.
type HealthChecker struct {
	client *TracedClient
	path   string
}

func NewHealthChecker(client *TracedClient, path string) *HealthChecker {
	return &HealthChecker{client: client, path: path}
}

func (c *HealthChecker) Check(ctx context.Context) error {
	var result health.Health
	resp, err := AcceptJSON(c.client.Get(ctx, c.path)).
		SetResult(&result).
		Send()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUpstreamUnreachable, err)
	}
	if err = DecodeRemoteError(resp); err != nil {
		return err
	}

	if !result.Up() {
		if result.Err != "" {
			return fmt.Errorf("%w: %s: %s", ErrUpstreamDown, result.Status, result.Err)
		}
		return fmt.Errorf("%w: status %q", ErrUpstreamDown, result.Status)
	}
	return nil
}
