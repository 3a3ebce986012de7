package internal_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/filevault/internal"
)

func TestExtractor(t *testing.T) {
	t.Parallel()

	fromQuery := func(name string) internal.ExtractorSource {
		return func(c internal.Context) (string, bool) {
			v := c.Query(name)
			return v, v != ""
		}
	}

	tests := []struct {
		name    string
		sources []internal.ExtractorSource
		header  string
		url     string
		want    string
		found   bool
	}{
		{name: "no sources", url: "/items/1"},
		{name: "header hit", sources: []internal.ExtractorSource{internal.FromHeader("Authorization")}, header: "Bearer abc", url: "/items/1", want: "Bearer abc", found: true},
		{name: "header miss", sources: []internal.ExtractorSource{internal.FromHeader("Authorization")}, url: "/items/1"},
		{name: "first match wins", sources: []internal.ExtractorSource{fromQuery("token"), internal.FromHeader("Authorization")}, header: "Bearer abc", url: "/items/1?token=q", want: "q", found: true},
		{name: "falls through to later source", sources: []internal.ExtractorSource{fromQuery("token"), internal.FromHeader("Authorization")}, header: "Bearer abc", url: "/items/1", want: "Bearer abc", found: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			extract := internal.NewExtractor(tt.sources...)

			requestVia(t, req, nil, func(c internal.Context) error {
				got, found := extract.Extract(c)
				require.Equal(t, tt.want, got)
				require.Equal(t, tt.found, found)
				return nil
			})
		})
	}
}
