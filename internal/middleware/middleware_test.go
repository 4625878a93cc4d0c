package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pet-store/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
)

func echoMethod() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.Method))
	})
}

func TestMethodOverride(t *testing.T) {
	h := MethodOverride(echoMethod())

	cases := []struct {
		name   string
		req    func() *http.Request
		method string
	}{
		{"query", func() *http.Request {
			return httptest.NewRequest(http.MethodPost, "/pets/1?_method=delete", nil)
		}, http.MethodDelete},
		{"form", func() *http.Request {
			r := httptest.NewRequest(http.MethodPost, "/pets/1", strings.NewReader("_method=PUT&name=Spider"))
			r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			return r
		}, http.MethodPut},
		{"not allowed", func() *http.Request {
			return httptest.NewRequest(http.MethodPost, "/pets?_method=GET", nil)
		}, http.MethodPost},
		{"get untouched", func() *http.Request {
			return httptest.NewRequest(http.MethodGet, "/pets/1?_method=DELETE", nil)
		}, http.MethodGet},
		{"json untouched", func() *http.Request {
			r := httptest.NewRequest(http.MethodPost, "/pets", strings.NewReader(`{"_method":"DELETE"}`))
			r.Header.Set("Content-Type", "application/json")
			return r
		}, http.MethodPost},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, tc.req())
			assert.Equal(t, tc.method, rec.Body.String())
		})
	}
}

func TestRequestLog(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Output: &buf})

	h := chimw.RequestID(RequestLog(log)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pets/missing", nil))

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "status=404")
	assert.Contains(t, out, "path=/pets/missing")
	assert.Contains(t, out, "request_id=")
}
