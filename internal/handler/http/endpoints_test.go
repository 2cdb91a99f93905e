package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-fall/internal/health"
	"github.com/MKhiriev/go-fall/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestInfo(t *testing.T) {
	h := newTestHandler(t, nil)
	app := models.Application{
		Name:       "fall-web",
		Version:    "0.1.0",
		InstanceID: "6f1c2f5e-7b1a-4c84-9a57-6a8d4a3c2b10",
		StartedAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Features:   models.Features{Database: true},
	}
	h.appInfo.EXPECT().Info(gomock.Any()).Return(app)

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/endpoints/info", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got models.Application
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, app, got)
}

func TestHealth_NoChecks(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/endpoints/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"UP"}`, rec.Body.String())
}

func TestHealth_DownStillReturns200(t *testing.T) {
	h := newTestHandler(t, nil)
	h.registry.Add("database", health.CheckerFunc(func(context.Context) error { return errors.New("connection refused") }))
	h.registry.Add("redis", health.CheckerFunc(func(context.Context) error { return nil }))

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/endpoints/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"status": "DOWN",
		"detail": {
			"database": {"status": "DOWN", "err": "connection refused"},
			"redis": {"status": "UP"}
		}
	}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestHandler(t, nil)
	h.greeting.EXPECT().Hello(gomock.Any()).Return("Hello, world")
	router := h.Init()

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/hello", nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/endpoints/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `fall_http_requests_total{method="GET",route="/hello",status="200"} 1`)
}
