package imagestore

import "context"

// Variant es una versión redimensionada de una imagen subida.
// La URL termina en "-<Suffix>.<ext>".
type Variant struct {
	Suffix string
	URL    string
}

type UploadOptions struct {
	// Key es la ruta del objeto sin sufijo ni extensión (p.ej. "pets/avatar/<id>").
	Key string
}

// Uploader genera las variantes de localPath, las publica y elimina el original.
type Uploader interface {
	Upload(ctx context.Context, localPath string, opts UploadOptions) ([]Variant, error)
}
