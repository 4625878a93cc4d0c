package pets

import (
	"testing"

	"pet-store/internal/ports/imagestore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalAvatarURL(t *testing.T) {
	base, err := canonicalAvatarURL([]imagestore.Variant{
		{Suffix: VariantStandard, URL: "https://cdn.example.com/pets/avatar/a-b-c-standard.jpg"},
		{Suffix: VariantSquare, URL: "https://cdn.example.com/pets/avatar/a-b-c-square.jpg"},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/pets/avatar/a-b-c", base)

	_, err = canonicalAvatarURL(nil)
	assert.ErrorIs(t, err, ErrUpload)

	_, err = canonicalAvatarURL([]imagestore.Variant{{URL: "nodash.jpg"}})
	assert.ErrorIs(t, err, ErrVariantMismatch)
}
