package internal

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResponseWriter(t *testing.T) {
	t.Parallel()

	t.Run("WriteHeader records status once", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		rw := NewResponseWriter(rec)
		require.False(t, rw.Written())
		require.Equal(t, http.StatusOK, rw.Status())

		rw.WriteHeader(http.StatusNotFound)
		rw.WriteHeader(http.StatusInternalServerError)

		require.True(t, rw.Written())
		require.Equal(t, http.StatusNotFound, rw.Status())
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Write implies 200 and counts bytes", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		rw := NewResponseWriter(rec)

		n, err := rw.Write([]byte("hello"))
		require.NoError(t, err)
		require.Equal(t, 5, n)
		_, _ = rw.Write([]byte(" world"))

		require.True(t, rw.Written())
		require.Equal(t, http.StatusOK, rw.Status())
		require.Equal(t, int64(11), rw.Size())
		require.Equal(t, "hello world", rec.Body.String())
	})

	t.Run("wrapping is idempotent", func(t *testing.T) {
		t.Parallel()

		rw := NewResponseWriter(httptest.NewRecorder())
		require.Same(t, rw, NewResponseWriter(rw))
	})

	t.Run("Unwrap returns the original writer", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		rw := NewResponseWriter(rec)
		require.Equal(t, http.ResponseWriter(rec), rw.Unwrap())
	})

	t.Run("Flush reaches the recorder", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		NewResponseWriter(rec).Flush()
		require.True(t, rec.Flushed)
	})
}
