package metrics_test

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/filevault/pkg/auth"
	"github.com/dmitrymomot/filevault/pkg/files"
	"github.com/dmitrymomot/filevault/pkg/metrics"
)

func TestResult(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{nil, metrics.ResultOK},
		{fmt.Errorf("wrap: %w", files.ErrInvalidFileType), metrics.ResultInvalidFileType},
		{files.ErrNotFound, metrics.ResultNotFound},
		{files.ErrForbidden, metrics.ResultForbidden},
		{files.ErrSigningUnavailable, metrics.ResultSigningUnavailable},
		{files.ErrNoFiles, metrics.ResultNoFiles},
		{auth.ErrUnauthenticated, metrics.ResultUnauthenticated},
		{errors.New("boom"), metrics.ResultError},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, metrics.Result(tt.err))
		})
	}
}

func TestMetrics(t *testing.T) {
	t.Parallel()

	m := metrics.New("")

	m.RecordOperation(files.OpUpload, nil)
	m.RecordOperation(files.OpUpload, nil)
	m.RecordOperation(files.OpDelete, files.ErrForbidden)
	m.ObserveRequest(http.MethodGet, "/files", http.StatusOK, 20*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)
	done := m.TrackInflight()

	count, err := testutil.GatherAndCount(m.Registry(), "filevault_files_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	text := string(body)
	assert.Contains(t, text, `filevault_files_operations_total{op="upload",result="ok"} 2`)
	assert.Contains(t, text, `filevault_files_operations_total{op="delete",result="forbidden"} 1`)
	assert.Contains(t, text, `filevault_http_requests_total{code="200",method="GET",route="/files"} 1`)
	assert.Contains(t, text, `route="unmatched"`)
	assert.Contains(t, text, "filevault_http_inflight_requests 1")

	done()
}
