package local

import (
	"context"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	ports "pet-store/internal/ports/imagestore"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpload_WritesVariantsAndRemovesOriginal(t *testing.T) {
	src := filepath.Join(t.TempDir(), "avatar.png")
	require.NoError(t, imaging.Save(imaging.New(640, 480, color.White), src))

	dir := t.TempDir()
	up, err := New(Config{Dir: dir, BaseURL: "http://localhost:8080/uploads/"})
	require.NoError(t, err)

	variants, err := up.Upload(context.Background(), src, ports.UploadOptions{Key: "pets/avatar/p1"})
	require.NoError(t, err)

	assert.Equal(t, []ports.Variant{
		{Suffix: "standard", URL: "http://localhost:8080/uploads/pets/avatar/p1-standard.jpg"},
		{Suffix: "square", URL: "http://localhost:8080/uploads/pets/avatar/p1-square.jpg"},
	}, variants)

	for _, name := range []string{"p1-standard.jpg", "p1-square.jpg"} {
		_, err := os.Stat(filepath.Join(dir, "pets", "avatar", name))
		assert.NoError(t, err, name)
	}

	_, err = os.Stat(src)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNew_RequiresDir(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
}
