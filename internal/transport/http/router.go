package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"safecircle/internal/platform/middleware"
)

// Registrar is anything that can mount its routes on a chi router.
type Registrar interface {
	Register(r chi.Router)
}

// NewRouter assembles the API surface: the shared middleware chain, the
// health and metrics endpoints, and every handler's routes under /v1.
func NewRouter(logger *slog.Logger, handlers ...Registrar) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		for _, h := range handlers {
			h.Register(r)
		}
	})

	return r
}
