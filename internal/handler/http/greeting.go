package http

import (
	"net/http"

	"github.com/MKhiriev/go-fall/internal/apperr"
	"github.com/MKhiriev/go-fall/internal/logger"
	"github.com/MKhiriev/go-fall/internal/utils"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) hello(w http.ResponseWriter, r *http.Request) {
	msg := h.services.GreetingService.Hello(r.Context())

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(msg)); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing greeting")
	}
}

func (h *Handler) visit(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	name := chi.URLParam(r, "name")

	visit, err := h.services.GreetingService.Visit(r.Context(), name)
	if err != nil {
		log.Err(err).Str("name", name).Msg("error recording visit")
		apperr.Write(w, r, toAppError(err))
		return
	}

	if _, err = utils.WriteJSON(w, visit, http.StatusOK); err != nil {
		log.Err(err).Msg("error writing visit")
	}
}

func (h *Handler) visits(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	name := chi.URLParam(r, "name")

	visit, err := h.services.GreetingService.Visits(r.Context(), name)
	if err != nil {
		log.Err(err).Str("name", name).Msg("error reading visits")
		apperr.Write(w, r, toAppError(err))
		return
	}

	if _, err = utils.WriteJSON(w, visit, http.StatusOK); err != nil {
		log.Err(err).Msg("error writing visits")
	}
}
