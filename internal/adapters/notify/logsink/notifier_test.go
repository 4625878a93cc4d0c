package logsink

import (
	"bytes"
	"context"
	"testing"

	"pet-store/internal/platform/logger"
	"pet-store/internal/ports/notify"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotify_Logs(t *testing.T) {
	var buf bytes.Buffer
	n := New(logger.New(logger.Options{Output: &buf, Format: logger.FormatText}))

	require.NoError(t, n.Notify(context.Background(), notify.Message{
		Email:    "buyer@example.com",
		Amount:   decimal.RequireFromString("9.99"),
		Currency: "usd",
		ItemName: "Norman",
	}))

	out := buf.String()
	assert.Contains(t, out, `msg="purchase notification"`)
	assert.Contains(t, out, "amount=9.99")
	assert.Contains(t, out, "email=buyer@example.com")
	assert.Contains(t, out, "component=notify")
}
