package http

import (
	"net/http"

	"github.com/MKhiriev/go-fall/internal/logger"
	"github.com/MKhiriev/go-fall/internal/utils"
)

func (h *Handler) info(w http.ResponseWriter, r *http.Request) {
	app := h.services.AppInfoService.Info(r.Context())

	if _, err := utils.WriteJSON(w, app, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing application info")
	}
}

// healthCheck always answers 200; the state is in the body.
func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	result := h.health.Check(r.Context())
	if !result.Up() {
		logger.FromRequest(r).Warn().Any("health", result).Msg("health check is down")
	}

	if _, err := utils.WriteJSON(w, result, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing health")
	}
}
