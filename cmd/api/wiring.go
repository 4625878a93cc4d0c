package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pet-store/internal/adapters/imagestore/local"
	"pet-store/internal/adapters/imagestore/s3bucket"
	"pet-store/internal/adapters/notify/logsink"
	"pet-store/internal/adapters/notify/mailer"
	"pet-store/internal/adapters/notify/webhook"
	"pet-store/internal/adapters/payments/stripepay"
	mem "pet-store/internal/adapters/storage/memory"
	"pet-store/internal/adapters/storage/mongodb"
	pg "pet-store/internal/adapters/storage/postgres"
	"pet-store/internal/domain/pets"
	"pet-store/internal/platform/config"
	"pet-store/internal/platform/logger"
	"pet-store/internal/ports/imagestore"
	"pet-store/internal/ports/notify"
	"pet-store/internal/ports/payments"
	"pet-store/internal/router"

	"go.mongodb.org/mongo-driver/mongo"
)

// app junta todo lo que arma el proceso a partir de la config.
type app struct {
	cfg config.Config
	log logger.Logger

	repo  pets.Repository
	sqlDB *sql.DB
	mongo *mongo.Client
	petDB *mongodb.PetsRepo

	uploader  imagestore.Uploader
	uploadDir string
	gateway   payments.Gateway
	notifier  notify.Notifier
}

func loadApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg: cfg,
		log: logger.New(logger.Options{
			Level:  logger.ParseLevel(cfg.LogLevel),
			Format: logger.ParseFormat(cfg.LogFormat),
			App:    cfg.AppName,
		}),
	}

	if err := a.openStorage(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *app) openStorage(ctx context.Context) error {
	switch a.cfg.StorageBackend {
	case config.BackendPostgres:
		db, err := pg.Open(a.cfg.DBDSN)
		if err != nil {
			return fmt.Errorf("open postgres: %w", err)
		}
		a.sqlDB = db
		a.repo = pg.NewPetsRepo(db)

	case config.BackendMongo:
		client, err := mongodb.Connect(ctx, a.cfg.MongoURI)
		if err != nil {
			return fmt.Errorf("connect mongo: %w", err)
		}
		a.mongo = client
		a.petDB = mongodb.NewPetsRepo(client.Database(a.cfg.MongoDatabase))
		a.repo = a.petDB

	default:
		a.repo = mem.NewPetRepo()
	}

	a.log.Info("storage ready", map[string]any{"backend": a.cfg.StorageBackend})
	return nil
}

// migrate deja el schema / índices listos; en memoria no hace nada.
func (a *app) migrate(ctx context.Context) error {
	switch {
	case a.sqlDB != nil:
		return pg.Migrate(ctx, a.sqlDB)
	case a.petDB != nil:
		return a.petDB.EnsureIndexes(ctx)
	default:
		return nil
	}
}

// wireIntegrations arma uploader, gateway y notifier. Los que no están
// configurados quedan en nil (o en su variante de dev) y se loguea.
func (a *app) wireIntegrations(ctx context.Context) error {
	if a.cfg.S3Bucket != "" {
		up, err := s3bucket.New(ctx, s3Config(a.cfg))
		if err != nil {
			return fmt.Errorf("s3 uploader: %w", err)
		}
		a.uploader = up
	} else {
		up, err := local.New(local.Config{Dir: a.cfg.UploadDir, BaseURL: a.cfg.UploadsBaseURL()})
		if err != nil {
			return err
		}
		a.uploader = up
		a.uploadDir = up.Dir()
	}

	gw, err := stripepay.New(stripepay.Config{SecretKey: a.cfg.StripeSecretKey})
	switch {
	case err == nil:
		a.gateway = gw
	case errors.Is(err, stripepay.ErrStripeNotConfigured):
		a.log.Warn("stripe not configured, purchases disabled", nil)
	default:
		return err
	}

	a.notifier, err = a.buildNotifier()
	return err
}

// s3Config: public_base_url, si viene, es la base pública de los objetos (CDN).
func s3Config(cfg config.Config) s3bucket.Config {
	return s3bucket.Config{
		Bucket:        cfg.S3Bucket,
		Region:        cfg.S3Region,
		Endpoint:      cfg.S3Endpoint,
		Prefix:        cfg.S3Prefix,
		PublicBaseURL: cfg.PublicBaseURL,
	}
}

// buildNotifier: mailgun > webhook > log.
func (a *app) buildNotifier() (notify.Notifier, error) {
	if a.cfg.MailgunDomain != "" {
		return mailer.New(mailer.Config{
			Domain: a.cfg.MailgunDomain,
			APIKey: a.cfg.MailgunAPIKey,
			From:   a.cfg.MailFrom,
		})
	}
	if a.cfg.NotifyWebhookURL != "" {
		return webhook.New(webhook.Config{URL: a.cfg.NotifyWebhookURL, Timeout: 5 * time.Second})
	}
	return logsink.New(a.log), nil
}

func (a *app) service() *pets.Service {
	return pets.NewService(a.repo, pets.Deps{
		Uploader: a.uploader,
		Gateway:  a.gateway,
		Notifier: a.notifier,
		Logger:   a.log,
		Currency: a.cfg.Currency,

		CheckoutKey: a.cfg.StripePublishableKey,
	})
}

func (a *app) routerOptions() router.Options {
	return router.Options{
		Repo:      a.repo,
		Uploader:  a.uploader,
		Gateway:   a.gateway,
		Notifier:  a.notifier,
		Logger:    a.log,
		Currency:  a.cfg.Currency,
		UploadDir: a.uploadDir,

		CheckoutKey: a.cfg.StripePublishableKey,
	}
}

func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if a.sqlDB != nil {
		_ = a.sqlDB.Close()
	}
	if a.mongo != nil {
		_ = a.mongo.Disconnect(ctx)
	}
}
