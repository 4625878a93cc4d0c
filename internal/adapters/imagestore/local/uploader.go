package local

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pet-store/internal/adapters/imagestore"
	ports "pet-store/internal/ports/imagestore"
)

// Uploader escribe las variantes en disco; el router las sirve bajo /uploads.
// Pensado para dev y tests; en producción se usa s3bucket.
type Uploader struct {
	dir     string
	baseURL string
	specs   []imagestore.Spec
}

type Config struct {
	Dir     string
	BaseURL string // p.ej. "http://localhost:8080/uploads"
}

func New(cfg Config) (*Uploader, error) {
	dir := strings.TrimSpace(cfg.Dir)
	if dir == "" {
		return nil, errors.New("local uploader: dir required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("local uploader: %w", err)
	}
	return &Uploader{
		dir:     dir,
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		specs:   imagestore.DefaultSpecs,
	}, nil
}

func (u *Uploader) Dir() string { return u.dir }

func (u *Uploader) Upload(ctx context.Context, localPath string, opts ports.UploadOptions) ([]ports.Variant, error) {
	renditions, err := imagestore.Render(localPath, u.specs)
	if err != nil {
		return nil, err
	}

	out := make([]ports.Variant, 0, len(renditions))
	for _, r := range renditions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := imagestore.ObjectName(opts.Key, r.Suffix)
		dst := filepath.Join(u.dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return nil, err
		}
		if err := os.WriteFile(dst, r.Data, 0o644); err != nil {
			return nil, err
		}

		out = append(out, ports.Variant{
			Suffix: r.Suffix,
			URL:    u.baseURL + "/" + name,
		})
	}

	if err := os.Remove(localPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("remove original: %w", err)
	}
	return out, nil
}
