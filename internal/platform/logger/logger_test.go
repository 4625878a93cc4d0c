package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, Debug, ParseLevel("DEBUG"))
	assert.Equal(t, Warn, ParseLevel("warning"))
	assert.Equal(t, Error, ParseLevel(" error "))
	assert.Equal(t, Info, ParseLevel("whatever"))
	assert.Equal(t, "warn", Warn.String())
}

func TestJSONLogger_FieldsAndLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: Info, Format: FormatJSON, App: "pet-store", Output: &buf})

	log.Debug("hidden", nil)
	log.With(map[string]any{"component": "pets"}).Error("charge failed", map[string]any{
		"err":    errors.New("card declined"),
		"amount": 999,
		"":       "ignored",
	})

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "charge failed", entry["msg"])
	assert.Equal(t, "pet-store", entry["app"])
	assert.Equal(t, "pets", entry["component"])
	assert.Equal(t, "card declined", entry["err"])
	assert.EqualValues(t, 999, entry["amount"])
	assert.NotContains(t, entry, "")
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() {
		Nop().With(map[string]any{"a": 1}).Error("x", nil)
	})
}
