package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Route prefix of the management routes. Requests under it skip
// authentication.
const endpointsPrefix = "/endpoints/"

const gzipLevel = 5

var compressedContentTypes = []string{"application/json", "text/plain"}

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(
		h.withTrace,
		h.withLogging,
		h.withRecoverer,
		h.withRequestHandler,
		middleware.Compress(gzipLevel, compressedContentTypes...),
	)
	if h.cfg.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.cfg.RequestTimeout))
	}

	router.Route("/endpoints", func(r chi.Router) {
		r.Get("/info", h.info)
		r.Get("/health", h.healthCheck)
		r.Handle("/metrics", h.metrics.Handler())
	})

	router.Get("/hello", h.hello)
	router.Get("/hello/", h.visit)
	router.Get("/hello/{name}", h.visit)
	router.Get("/hello/{name}/visits", h.visits)

	router.NotFound(notFound)
	router.MethodNotAllowed(methodNotAllowed)

	return router
}
