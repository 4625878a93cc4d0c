package pets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-store/internal/platform/logger"
	"pet-store/internal/ports/imagestore"
	"pet-store/internal/ports/notify"
	"pet-store/internal/ports/payments"

	"github.com/google/uuid"
)

const (
	IndexPageSize  = 3
	SearchPageSize = 20

	DefaultCurrency = "usd"
)

// Deps agrupa los colaboradores externos. Todos son opcionales:
// sin Uploader no se aceptan avatares y sin Gateway no se puede comprar.
type Deps struct {
	Uploader imagestore.Uploader
	Gateway  payments.Gateway
	Notifier notify.Notifier
	Logger   logger.Logger
	Currency string

	// CheckoutKey (publishable) habilita Stripe Checkout en la página de la mascota.
	CheckoutKey string
}

type Service struct {
	repo     Repository
	uploader imagestore.Uploader
	gateway  payments.Gateway
	notifier notify.Notifier
	log      logger.Logger
	currency string

	checkoutKey string

	now func() time.Time
}

func NewService(repo Repository, deps Deps) *Service {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	currency := strings.ToLower(strings.TrimSpace(deps.Currency))
	if currency == "" {
		currency = DefaultCurrency
	}

	return &Service{
		repo:     repo,
		uploader: deps.Uploader,
		gateway:  deps.Gateway,
		notifier: deps.Notifier,
		log:      log.With(map[string]any{"component": "pets"}),
		currency: currency,
		now:      time.Now,

		checkoutKey: strings.TrimSpace(deps.CheckoutKey),
	}
}

type CreateInput struct {
	Name         string
	Birthday     string
	Species      string
	FavoriteFood string
	Description  string
	Price        Money

	PicURL    string
	PicURLSq  string
	AvatarURL string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Pet, error) {
	return s.create(ctx, in, false)
}

func (s *Service) create(ctx context.Context, in CreateInput, pendingAvatar bool) (Pet, error) {
	now := s.now()
	p := Pet{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Birthday:     strings.TrimSpace(in.Birthday),
		Species:      strings.TrimSpace(in.Species),
		FavoriteFood: strings.TrimSpace(in.FavoriteFood),
		Description:  strings.TrimSpace(in.Description),
		Price:        in.Price,
		PicURL:       strings.TrimSpace(in.PicURL),
		PicURLSq:     strings.TrimSpace(in.PicURLSq),
		AvatarURL:    strings.TrimSpace(in.AvatarURL),
		AvatarStatus: AvatarNone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	switch {
	case pendingAvatar:
		p.AvatarStatus = AvatarPending
	case p.AvatarURL != "":
		p.AvatarStatus = AvatarReady
	}

	if err := validatePet(p); err != nil {
		return Pet{}, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// UpdateInput es la lista blanca de campos editables. nil = no tocar.
type UpdateInput struct {
	Name         *string
	Birthday     *string
	Species      *string
	FavoriteFood *string
	Description  *string
	Price        *Money

	PicURL    *string
	PicURLSq  *string
	AvatarURL *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Pet, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&p.Name, in.Name)
	set(&p.Birthday, in.Birthday)
	set(&p.Species, in.Species)
	set(&p.FavoriteFood, in.FavoriteFood)
	set(&p.Description, in.Description)
	set(&p.PicURL, in.PicURL)
	set(&p.PicURLSq, in.PicURLSq)
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.AvatarURL != nil {
		p.AvatarURL = strings.TrimSpace(*in.AvatarURL)
		if p.AvatarURL != "" {
			p.AvatarStatus = AvatarReady
		} else {
			p.AvatarStatus = AvatarNone
		}
	}

	if err := validatePet(p); err != nil {
		return Pet{}, err
	}

	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

// List es el índice paginado (orden de creación).
func (s *Service) List(ctx context.Context, page int) (ResultPage, error) {
	pg := Page{Number: max(page, 1), Size: IndexPageSize}

	items, total, err := s.repo.List(ctx, pg)
	if err != nil {
		return ResultPage{}, queryErr(err)
	}
	return newResultPage(items, total, pg), nil
}

func queryErr(err error) error {
	if errors.Is(err, ErrQuery) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrQuery, err)
}
