package handlers

import (
	"net/http"

	"github.com/dmitrymomot/filevault/internal"
	"github.com/dmitrymomot/filevault/pkg/health"
)

// System serves the unauthenticated probes and the metrics endpoint.
type System struct {
	live    http.Handler
	ready   http.Handler
	metrics http.Handler
}

// NewSystem creates the probe handler. A nil metrics handler disables /metrics.
func NewSystem(checks health.Checks, metrics http.Handler, opts ...health.Option) *System {
	return &System{
		live:    health.LivenessHandler(),
		ready:   health.ReadinessHandler(checks, opts...),
		metrics: metrics,
	}
}

// Routes declares GET /, the health probes and GET /metrics.
func (h *System) Routes(r internal.Router) {
	r.GET("/", h.root)
	r.GET("/health/live", serve(h.live))
	r.GET("/health/ready", serve(h.ready))
	if h.metrics != nil {
		r.GET("/metrics", serve(h.metrics))
	}
}

func (h *System) root(c internal.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func serve(next http.Handler) internal.HandlerFunc {
	return func(c internal.Context) error {
		next.ServeHTTP(c.Response(), c.Request())
		return nil
	}
}
