package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORSMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	handler := CORSMiddleware()(next)

	t.Run("Headers are set on every response", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/members", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusTeapot, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	})

	t.Run("Preflight short-circuits with 200", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/members", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Max age honors the environment override", func(t *testing.T) {
		t.Setenv("CORS_MAX_AGE", "3600")
		req := httptest.NewRequest(http.MethodGet, "/api/members", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, "3600", w.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("Invalid max age override falls back to the default", func(t *testing.T) {
		t.Setenv("CORS_MAX_AGE", "not-a-number")
		req := httptest.NewRequest(http.MethodGet, "/api/members", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, "86400", w.Header().Get("Access-Control-Max-Age"))
	})
}
