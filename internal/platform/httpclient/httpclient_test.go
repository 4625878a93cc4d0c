package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoJSON_RoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, UserAgent, r.Header.Get("User-Agent"))
		assert.Equal(t, "x", r.Header.Get("X-Extra"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	var out struct {
		OK bool `json:"ok"`
	}
	err := New(0).DoJSON(context.Background(), http.MethodPost, srv.URL, map[string]string{"X-Extra": "x"}, map[string]string{"a": "b"}, &out)
	require.NoError(t, err)
	assert.True(t, out.OK)
}

func TestDoJSON_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(" bad payload \n"))
	}))
	defer srv.Close()

	err := New(0).DoJSON(context.Background(), http.MethodGet, srv.URL, nil, nil, nil)
	var herr *HTTPError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, "bad payload", herr.Body)
	assert.False(t, herr.Temporary())

	err = New(0).DoJSON(context.Background(), http.MethodGet, "/relative", nil, nil, nil)
	require.Error(t, err)

	var nilClient *Client
	require.Error(t, nilClient.DoJSON(context.Background(), http.MethodGet, srv.URL, nil, nil, nil))
}
