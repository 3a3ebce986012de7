package middlewares

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/filevault/internal"
	"github.com/dmitrymomot/filevault/pkg/metrics"
)

// Metrics records inflight requests, request counts and latency.
// The route label is the matched chi pattern so object keys never become labels.
func Metrics(m *metrics.Metrics) internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			start := time.Now()
			done := m.TrackInflight()
			defer done()

			err := next(c)

			code := http.StatusOK
			if rw, ok := c.Response().(*internal.ResponseWriter); ok {
				code = rw.Status()
			}
			if err != nil && !c.Written() {
				code = http.StatusInternalServerError
				if httpErr := internal.AsHTTPError(err); httpErr != nil {
					code = httpErr.Code
				}
			}

			route := ""
			if rctx := chi.RouteContext(c.Request().Context()); rctx != nil {
				route = rctx.RoutePattern()
			}
			m.ObserveRequest(c.Request().Method, route, code, time.Since(start))
			return err
		}
	}
}
