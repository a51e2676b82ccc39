package httpmiddleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripPrefix(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		path     string
		wantPath string
	}{
		{"strips matching prefix", "/api/v1", "/api/v1/agents/list", "/agents/list"},
		{"exact match becomes empty", "/api/v1", "/api/v1", ""},
		{"non-matching path untouched", "/api/v1", "/health", "/health"},
		{"partial segment not stripped", "/api/v1", "/api/v1beta/agents", "/api/v1beta/agents"},
		{"empty prefix is no-op", "", "/api/v1/agents", "/api/v1/agents"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath string
			handler := StripPrefix(tt.prefix)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
			}))

			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "http://example.com"+tt.path, nil))
			assert.Equal(t, tt.wantPath, gotPath)
		})
	}
}
