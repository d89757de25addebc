package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func serveCORS(origins []string, method, origin string, preflight bool) (*httptest.ResponseRecorder, bool) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(method, "/chat/message", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	if preflight {
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	}
	rec := httptest.NewRecorder()
	CORS(origins)(next).ServeHTTP(rec, req)
	return rec, called
}

func TestCORSOrigins(t *testing.T) {
	origins := []string{"https://harborview.test/", " https://*.harborview.test "}

	tests := []struct {
		name    string
		origin  string
		allowed bool
	}{
		{"exact with trailing slash in config", "https://harborview.test", true},
		{"wildcard subdomain", "https://book.harborview.test", true},
		{"bare suffix is not a subdomain", "https://.harborview.test", false},
		{"wrong scheme", "http://book.harborview.test", false},
		{"lookalike domain", "https://evilharborview.test", false},
		{"unknown", "https://other.test", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, called := serveCORS(origins, http.MethodPost, tt.origin, false)
			assert.True(t, called)
			if tt.allowed {
				assert.Equal(t, tt.origin, rec.Header().Get("Access-Control-Allow-Origin"))
				assert.Equal(t, corsExposedHeaders, rec.Header().Get("Access-Control-Expose-Headers"))
			} else {
				assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

func TestCORSAllowsAnyOrigin(t *testing.T) {
	rec, _ := serveCORS([]string{"*"}, http.MethodGet, "https://random.example", false)
	assert.Equal(t, "https://random.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflight(t *testing.T) {
	rec, called := serveCORS([]string{"https://harborview.test"}, http.MethodOptions, "https://harborview.test", true)
	assert.False(t, called)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, corsAllowedMethods, rec.Header().Get("Access-Control-Allow-Methods"))

	rec, called = serveCORS([]string{"https://harborview.test"}, http.MethodOptions, "https://other.test", true)
	assert.False(t, called)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCORSWithoutOriginPassesThrough(t *testing.T) {
	rec, called := serveCORS(nil, http.MethodOptions, "", true)
	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}
