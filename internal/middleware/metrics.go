package middleware

import (
	"net/http"
	"strconv"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sandwichproject/host-locator/internal/metrics"
)

// NewMetricsHandler returns a middleware that counts every request in the
// Prometheus RequestsTotal counter, labeled by method and status code.
func NewMetricsHandler() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			metrics.RequestsTotal.WithLabelValues(r.Method, strconv.Itoa(ww.Status())).Inc()
		})
	}
}
