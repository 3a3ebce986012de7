package middlewares_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrymomot/filevault/internal"
)

// newApp builds an App with the given global middleware and routes.
func newApp(t *testing.T, mws []internal.Middleware, routes func(r internal.Router), opts ...internal.Option) *internal.App {
	t.Helper()
	opts = append([]internal.Option{
		internal.WithMiddleware(mws...),
		internal.WithHandlers(internal.RoutesFunc(routes)),
	}, opts...)
	return internal.New(opts...)
}

func serve(app http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func bufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func ok(c internal.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
