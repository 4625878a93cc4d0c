package pets

import (
	"context"
	"fmt"
	"strings"

	"pet-store/internal/ports/imagestore"
)

const (
	VariantStandard = "standard"
	VariantSquare   = "square"
)

// CreateWithAvatar crea el registro y, si hay archivo, reconcilia el avatar.
// El registro se crea siempre primero (AvatarPending); si la subida falla se
// devuelve el registro tal como quedó junto con el error, sin rollback.
func (s *Service) CreateWithAvatar(ctx context.Context, in CreateInput, localPath string) (Pet, error) {
	localPath = strings.TrimSpace(localPath)
	if localPath == "" {
		return s.Create(ctx, in)
	}

	p, err := s.create(ctx, in, true)
	if err != nil {
		return Pet{}, err
	}

	updated, err := s.ReconcileAvatar(ctx, p.ID, localPath)
	if err != nil {
		if current, gerr := s.repo.GetByID(ctx, p.ID); gerr == nil {
			return current, err
		}
		return p, err
	}
	return updated, nil
}

// ReconcileAvatar sube localPath, deriva la URL base canónica de las variantes
// y la persiste en el registro. También sirve para reintentar tras un fallo.
func (s *Service) ReconcileAvatar(ctx context.Context, petID, localPath string) (Pet, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}

	log := s.log.With(map[string]any{"pet_id": p.ID})

	if s.uploader == nil {
		// recién creado por CreateWithAvatar: pasa a failed
		if p.AvatarStatus == AvatarPending {
			s.markAvatarFailed(ctx, p)
		}
		return Pet{}, fmt.Errorf("%w: uploader not configured", ErrUpload)
	}

	if p.AvatarStatus != AvatarPending {
		p.AvatarStatus = AvatarPending
		p.UpdatedAt = s.now()
		if err := s.repo.Update(ctx, p); err != nil {
			return Pet{}, err
		}
	}

	variants, err := s.uploader.Upload(ctx, localPath, imagestore.UploadOptions{
		Key: "pets/avatar/" + p.ID,
	})
	if err != nil {
		log.Error("avatar upload failed", map[string]any{"err": err})
		s.markAvatarFailed(ctx, p)
		return Pet{}, fmt.Errorf("%w: %w", ErrUpload, err)
	}

	base, err := canonicalAvatarURL(variants)
	if err != nil {
		log.Error("avatar variants rejected", map[string]any{"err": err, "variants": len(variants)})
		s.markAvatarFailed(ctx, p)
		return Pet{}, err
	}

	pending := p
	p.AvatarURL = base
	for _, v := range variants {
		switch v.Suffix {
		case VariantStandard:
			p.PicURL = v.URL
		case VariantSquare:
			p.PicURLSq = v.URL
		}
	}
	p.AvatarStatus = AvatarReady
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		log.Error("avatar url not persisted", map[string]any{"err": err})
		s.markAvatarFailed(ctx, pending)
		return Pet{}, fmt.Errorf("%w: %w", ErrUpload, err)
	}

	log.Info("avatar reconciled", map[string]any{"avatar_url": base})
	return p, nil
}

func (s *Service) markAvatarFailed(ctx context.Context, p Pet) {
	p.AvatarStatus = AvatarFailed
	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		s.log.Warn("could not mark avatar as failed", map[string]any{"pet_id": p.ID, "err": err})
	}
}

// canonicalAvatarURL quita el último segmento separado por guion de cada URL
// ("…/<id>-standard.jpg" => "…/<id>"). Todas las variantes deben coincidir.
func canonicalAvatarURL(variants []imagestore.Variant) (string, error) {
	if len(variants) == 0 {
		return "", fmt.Errorf("%w: no variants returned", ErrUpload)
	}

	var base string
	for i, v := range variants {
		cut := strings.LastIndex(v.URL, "-")
		if cut <= 0 {
			return "", fmt.Errorf("%w: %q has no suffix", ErrVariantMismatch, v.URL)
		}
		b := v.URL[:cut]
		if i == 0 {
			base = b
			continue
		}
		if b != base {
			return "", fmt.Errorf("%w: %q vs %q", ErrVariantMismatch, base, b)
		}
	}
	return base, nil
}
