package mailer

import (
	"testing"

	"pet-store/internal/ports/notify"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose(t *testing.T) {
	subject, body := compose(notify.Message{
		Email:    "buyer@example.com",
		Amount:   decimal.RequireFromString("9.99"),
		Currency: "usd",
		ItemName: "Norman",
	})

	assert.Equal(t, "Pet Store - You purchased Norman!", subject)
	assert.Contains(t, body, "Thank you for purchasing Norman.")
	assert.Contains(t, body, "9.99 USD")
}

func TestNew(t *testing.T) {
	_, err := New(Config{Domain: "mg.example.com"})
	require.ErrorIs(t, err, ErrMailerNotConfigured)

	m, err := New(Config{Domain: "mg.example.com", APIKey: "key-123"})
	require.NoError(t, err)
	assert.Equal(t, "Pet Store <no-reply@mg.example.com>", m.from)
}
