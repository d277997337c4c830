package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/GregMSThompson/steps-backend/internal/metrics"
	"github.com/GregMSThompson/steps-backend/pkg/logger"
)

type metricsMiddleware struct {
	Metrics *metrics.Manager
}

func NewMetricsMiddleware(m *metrics.Manager) *metricsMiddleware {
	return &metricsMiddleware{Metrics: m}
}

// Instrument records request count, in-flight gauge and duration per chi
// route pattern. Panics are counted and turned into a 500.
func (m *metricsMiddleware) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		m.Metrics.GaugeRequests.Inc()
		defer m.Metrics.GaugeRequests.Dec()

		defer func() {
			if rec := recover(); rec != nil {
				m.Metrics.CounterRequestPanic.Inc()
				logger.FromContext(r.Context()).Error("panic while serving request", "panic", rec)
				if ww.Status() == 0 {
					ww.WriteHeader(http.StatusInternalServerError)
				}
			}

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			m.Metrics.CounterRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
			m.Metrics.HistRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		}()

		next.ServeHTTP(ww, r)
	})
}
