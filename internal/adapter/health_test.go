package adapter

import (
	"context"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-fall/internal/apperr"
	"github.com/MKhiriev/go-fall/internal/health"
	"github.com/MKhiriev/go-fall/internal/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthChecker_UpPropagatesChildTrace(t *testing.T) {
	srv, seen := echoServer(t, http.StatusOK, `{"status":"UP"}`)
	checker := NewHealthChecker(NewTracedClient(WithBaseURL(srv.URL)), "/endpoints/health")

	ctx := trace.WithContext(context.Background(), trace.New(0x0a, 0x0b, nil))
	require.NoError(t, checker.Check(ctx))

	got := seen()
	require.Len(t, got, 1)
	assert.Equal(t, "/endpoints/health", got[0].path)
	assert.Equal(t, "000000000000000a", got[0].header.Get(trace.HeaderTraceID))
	assert.Equal(t, "000000000000000b", got[0].header.Get(trace.HeaderParentSpanID))
	assert.Regexp(t, `^[0-9a-f]{16}$`, got[0].header.Get(trace.HeaderSpanID))
	assert.Equal(t, "application/json", got[0].header.Get("Accept"))
}

func TestHealthChecker_ThroughRegistry(t *testing.T) {
	srv, seen := echoServer(t, http.StatusOK, `{"status":"DOWN","err":"db gone"}`)

	registry := health.NewRegistry()
	registry.Add("billing", NewHealthChecker(NewTracedClient(WithBaseURL(srv.URL)), "/endpoints/health"))

	ctx := trace.WithContext(context.Background(), trace.New(7, 8, nil))
	result := registry.Check(ctx)

	assert.Equal(t, health.StatusDown, result.Status)
	assert.Equal(t, health.StatusDown, result.Detail["billing"].Status)
	assert.Contains(t, result.Detail["billing"].Err, "db gone")
	assert.Equal(t, "0000000000000007", seen()[0].header.Get(trace.HeaderTraceID))
}

func TestHealthChecker_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "down", status: http.StatusOK, body: `{"status":"DOWN"}`, wantErr: ErrUpstreamDown},
		{name: "not a health body", status: http.StatusOK, body: `{}`, wantErr: ErrUpstreamDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := echoServer(t, tt.status, tt.body)
			err := NewHealthChecker(NewTracedClient(WithBaseURL(srv.URL)), "/").Check(context.Background())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestHealthChecker_RemoteError(t *testing.T) {
	srv, _ := echoServer(t, http.StatusServiceUnavailable, `{"status":503,"message":"draining"}`)

	err := NewHealthChecker(NewTracedClient(WithBaseURL(srv.URL)), "/").Check(context.Background())

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindRemote, appErr.Kind)
	assert.Equal(t, http.StatusServiceUnavailable, appErr.Status)
}

func TestHealthChecker_Unreachable(t *testing.T) {
	srv, _ := echoServer(t, http.StatusOK, `{}`)
	url := srv.URL
	srv.Close()

	err := NewHealthChecker(NewTracedClient(WithBaseURL(url)), "/").Check(context.Background())
	assert.ErrorIs(t, err, ErrUpstreamUnreachable)
}
