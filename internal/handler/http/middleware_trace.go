package http

import (
	"net/http"

	"github.com/MKhiriev/go-fall/internal/trace"
)

// withTrace reads the B3 headers of the request, stores the trace and a
// logger carrying its ids in the request context and echoes the trace and
// span ids on the response.
func (h *Handler) withTrace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ot := trace.FromHeader(r.Header)

		l := h.logger.WithTrace(ot)
		ctx := trace.WithContext(r.Context(), ot)
		r = r.WithContext(l.WithContext(ctx))

		w.Header().Set(trace.HeaderTraceID, ot.TraceID)
		w.Header().Set(trace.HeaderSpanID, ot.SpanID)
		next.ServeHTTP(w, r)
	})
}
