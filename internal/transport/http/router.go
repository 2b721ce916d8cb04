// Package httptransport assembles the HTTP router. Transport concerns stay
// here; handlers delegate to domain services.
package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	screeninghandler "skyscreen/internal/screening/handler"
	"skyscreen/pkg/requestcontext"
)

// NewRouter wires all public endpoints plus /metrics and /healthz.
func NewRouter(h *screeninghandler.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(requestMeta)

	h.Register(r)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Server spans and trace-context propagation come from the globally
	// registered tracer provider; without one this is a no-op wrapper.
	return otelhttp.NewHandler(r, "skyscreen.http")
}

// requestMeta assigns each request an ID and pins the request time so every
// component in the call sees one consistent clock.
func requestMeta(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := r.Header.Get("X-Request-Id")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx = requestcontext.WithRequestID(ctx, requestID)
		ctx = requestcontext.WithTime(ctx, requestcontext.Now(ctx))
		w.Header().Set("X-Request-Id", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
