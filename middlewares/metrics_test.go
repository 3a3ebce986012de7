package middlewares_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/filevault/internal"
	"github.com/dmitrymomot/filevault/middlewares"
	"github.com/dmitrymomot/filevault/pkg/metrics"
)

func TestMetrics(t *testing.T) {
	t.Parallel()

	m := metrics.New("")
	app := newApp(t,
		[]internal.Middleware{middlewares.Metrics(m), middlewares.Recover()},
		func(r internal.Router) {
			r.GET("/files/*", ok)
			r.GET("/missing", func(c internal.Context) error {
				return c.Error(http.StatusNotFound, "File not found")
			})
			r.GET("/panic", func(internal.Context) error { panic(errors.New("boom")) })
		},
	)

	serve(app, httptest.NewRequest(http.MethodGet, "/files/u1/a_b.txt/download", nil))
	serve(app, httptest.NewRequest(http.MethodGet, "/files/u2/c_d.txt/download", nil))
	serve(app, httptest.NewRequest(http.MethodGet, "/missing", nil))
	serve(app, httptest.NewRequest(http.MethodGet, "/panic", nil))
	serve(app, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	text := string(body)
	assert.Contains(t, text, `filevault_http_requests_total{code="200",method="GET",route="/files/*"} 2`)
	assert.Contains(t, text, `filevault_http_requests_total{code="404",method="GET",route="/missing"} 1`)
	assert.Contains(t, text, `filevault_http_requests_total{code="500",method="GET",route="/panic"} 1`)
	assert.Contains(t, text, `filevault_http_inflight_requests 0`)
	assert.NotContains(t, text, "u1/a_b.txt")
}
