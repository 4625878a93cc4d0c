package imagestore

import (
	"bytes"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "avatar.png")
	require.NoError(t, imaging.Save(imaging.New(w, h, color.NRGBA{R: 200, G: 120, B: 40, A: 255}), p))
	return p
}

func TestRender_ProducesEverySpec(t *testing.T) {
	src := writePNG(t, 1200, 900)

	out, err := Render(src, DefaultSpecs)
	require.NoError(t, err)
	require.Len(t, out, len(DefaultSpecs))

	for i, r := range out {
		assert.Equal(t, DefaultSpecs[i].Suffix, r.Suffix)

		img, err := imaging.Decode(bytes.NewReader(r.Data))
		require.NoError(t, err)
		assert.Equal(t, r.Width, img.Bounds().Dx(), r.Suffix)
		assert.Equal(t, r.Height, img.Bounds().Dy(), r.Suffix)
	}
}

func TestRender_NotAnImage(t *testing.T) {
	_, err := Render(filepath.Join(t.TempDir(), "missing.png"), DefaultSpecs)
	require.Error(t, err)
}

func TestObjectName(t *testing.T) {
	assert.Equal(t, "pets/avatar/abc-square.jpg", ObjectName("pets/avatar/abc", "square"))
	assert.Equal(t, "pets/avatar/abc-standard.jpg", ObjectName("pets//avatar/abc/", "standard"))
}
