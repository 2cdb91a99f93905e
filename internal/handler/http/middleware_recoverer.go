package http

import (
	"net/http"
	"runtime/debug"

	"github.com/MKhiriev/go-fall/internal/apperr"
	"github.com/MKhiriev/go-fall/internal/logger"
)

// withRecoverer turns a panic anywhere below it, request hooks included,
// into a 500 error body. http.ErrAbortHandler is re-raised for net/http.
func (h *Handler) withRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}

			logger.FromRequest(r).Error().
				Interface("panic", rvr).
				Bytes("stack", debug.Stack()).
				Str("uri", r.RequestURI).
				Msg("recovered from panic")
			apperr.Write(w, r, apperr.Internal(ErrPanicRecovered))
		}()

		next.ServeHTTP(w, r)
	})
}
