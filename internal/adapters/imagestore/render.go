package imagestore

import (
	"bytes"
	"fmt"
	"image"
	"path"

	"github.com/disintegration/imaging"
)

// Spec describe una variante: recorte centrado a Width x Height.
type Spec struct {
	Suffix string
	Width  int
	Height int
}

// DefaultSpecs: "standard" 16:10 y "square" 1:1.
var DefaultSpecs = []Spec{
	{Suffix: "standard", Width: 400, Height: 250},
	{Suffix: "square", Width: 300, Height: 300},
}

type Rendition struct {
	Spec
	Data []byte // JPEG
}

const jpegQuality = 85

// Render abre localPath (respetando orientación EXIF) y genera una JPEG por spec.
func Render(localPath string, specs []Spec) ([]Rendition, error) {
	src, err := imaging.Open(localPath, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}

	out := make([]Rendition, 0, len(specs))
	for _, s := range specs {
		data, err := encode(imaging.Fill(src, s.Width, s.Height, imaging.Center, imaging.Lanczos))
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", s.Suffix, err)
		}
		out = append(out, Rendition{Spec: s, Data: data})
	}
	return out, nil
}

func encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ObjectName arma "<key>-<suffix>.jpg"; el último segmento con guion identifica la variante.
func ObjectName(key, suffix string) string {
	return path.Clean(key) + "-" + suffix + ".jpg"
}
