package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-store/internal/platform/httpclient"
	"pet-store/internal/ports/notify"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotify_PostsPurchase(t *testing.T) {
	var (
		got    map[string]any
		secret string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		secret = r.Header.Get("X-Webhook-Secret")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	n, err := New(Config{URL: srv.URL + "/hooks/purchase", Secret: "s3cr3t"})
	require.NoError(t, err)

	err = n.Notify(context.Background(), notify.Message{
		Email:    "buyer@example.com",
		Amount:   decimal.RequireFromString("9.99"),
		Currency: "usd",
		ItemName: "Norman",
	})
	require.NoError(t, err)

	assert.Equal(t, "s3cr3t", secret)
	assert.Equal(t, map[string]any{
		"event":    "pet.purchased",
		"email":    "buyer@example.com",
		"amount":   "9.99",
		"currency": "usd",
		"itemName": "Norman",
	}, got)
}

func TestNotify_Non2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	n, err := New(Config{URL: srv.URL})
	require.NoError(t, err)

	err = n.Notify(context.Background(), notify.Message{Email: "a@b.c", Amount: decimal.NewFromInt(1)})
	var herr *httpclient.HTTPError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, http.StatusBadGateway, herr.StatusCode)
	assert.True(t, herr.Temporary())
}

func TestNew_RequiresURL(t *testing.T) {
	_, err := New(Config{})
	require.ErrorIs(t, err, ErrWebhookNotConfigured)
}
