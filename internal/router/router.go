package router

import (
	"net/http"
	"strings"

	mem "pet-store/internal/adapters/storage/memory"
	"pet-store/internal/domain/pets"
	"pet-store/internal/middleware"
	"pet-store/internal/platform/logger"
	"pet-store/internal/ports/imagestore"
	"pet-store/internal/ports/notify"
	"pet-store/internal/ports/payments"

	_ "pet-store/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Opcional: si no viene, in-memory.
	Repo pets.Repository

	Uploader imagestore.Uploader // nil = no se aceptan avatares
	Gateway  payments.Gateway    // nil = compras responden 503
	Notifier notify.Notifier     // nil = no se notifica
	Logger   logger.Logger
	Currency string

	// CheckoutKey: publishable key de Stripe para el botón de compra HTML.
	CheckoutKey string

	// UploadDir se sirve bajo /uploads cuando el uploader es local.
	UploadDir string
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(middleware.MethodOverride)
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	if dir := strings.TrimSpace(opts.UploadDir); dir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(dir))))
	}

	repo := opts.Repo
	if repo == nil {
		repo = mem.NewPetRepo()
	}

	petsSvc := pets.NewService(repo, pets.Deps{
		Uploader: opts.Uploader,
		Gateway:  opts.Gateway,
		Notifier: opts.Notifier,
		Logger:   log,
		Currency: opts.Currency,

		CheckoutKey: opts.CheckoutKey,
	})

	pets.RegisterRoutes(r, petsSvc, log)

	return r
}
