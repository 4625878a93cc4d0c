package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	BackendAuto     = "auto"
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
)

// Config es la configuración completa del proceso. Se arma desde defaults,
// un YAML opcional y variables de entorno (en ese orden de prioridad creciente).
type Config struct {
	Port string `mapstructure:"port"`

	StorageBackend string `mapstructure:"storage_backend"`
	DBDSN          string `mapstructure:"db_dsn"`
	MongoURI       string `mapstructure:"mongo_uri"`
	MongoDatabase  string `mapstructure:"mongo_database"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	AppName   string `mapstructure:"app_name"`

	UploadDir     string `mapstructure:"upload_dir"`
	PublicBaseURL string `mapstructure:"public_base_url"`
	S3Bucket      string `mapstructure:"s3_bucket"`
	S3Region      string `mapstructure:"s3_region"`
	S3Endpoint    string `mapstructure:"s3_endpoint"`
	S3Prefix      string `mapstructure:"s3_prefix"`

	StripeSecretKey      string `mapstructure:"stripe_secret_key"`
	StripePublishableKey string `mapstructure:"stripe_publishable_key"`
	Currency             string `mapstructure:"currency"`

	MailgunDomain    string `mapstructure:"mailgun_domain"`
	MailgunAPIKey    string `mapstructure:"mailgun_api_key"`
	MailFrom         string `mapstructure:"mail_from"`
	NotifyWebhookURL string `mapstructure:"notify_webhook_url"`
}

var defaults = map[string]any{
	"port":                   "8080",
	"storage_backend":        BackendAuto,
	"db_dsn":                 "",
	"mongo_uri":              "",
	"mongo_database":         "pet-store",
	"log_level":              "info",
	"log_format":             "text",
	"app_name":               "pet-store",
	"upload_dir":             "uploads",
	"public_base_url":        "",
	"s3_bucket":              "",
	"s3_region":              "us-east-1",
	"s3_endpoint":            "",
	"s3_prefix":              "",
	"stripe_secret_key":      "",
	"stripe_publishable_key": "",
	"currency":               "usd",
	"mailgun_domain":         "",
	"mailgun_api_key":        "",
	"mail_from":              "",
	"notify_webhook_url":     "",
}

// Load lee la configuración. path vacío = solo defaults + env.
func Load(path string) (Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	// PORT, DB_DSN, STRIPE_SECRET_KEY, ... sin prefijo.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path = strings.TrimSpace(path); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	c.Port = strings.TrimPrefix(strings.TrimSpace(c.Port), ":")
	c.Currency = strings.ToLower(strings.TrimSpace(c.Currency))
	c.PublicBaseURL = strings.TrimRight(strings.TrimSpace(c.PublicBaseURL), "/")

	c.StorageBackend = strings.ToLower(strings.TrimSpace(c.StorageBackend))
	switch c.StorageBackend {
	case "", BackendAuto:
		c.StorageBackend = c.resolveBackend()
	case BackendMemory:
	case BackendPostgres:
		if strings.TrimSpace(c.DBDSN) == "" {
			return errors.New("storage_backend=postgres requires db_dsn")
		}
	case BackendMongo:
		if strings.TrimSpace(c.MongoURI) == "" {
			return errors.New("storage_backend=mongo requires mongo_uri")
		}
	default:
		return fmt.Errorf("unknown storage_backend %q", c.StorageBackend)
	}
	return nil
}

// resolveBackend: mongo si hay URI, postgres si hay DSN, si no memoria.
func (c Config) resolveBackend() string {
	switch {
	case strings.TrimSpace(c.MongoURI) != "":
		return BackendMongo
	case strings.TrimSpace(c.DBDSN) != "":
		return BackendPostgres
	default:
		return BackendMemory
	}
}

func (c Config) Addr() string {
	return ":" + c.Port
}

// UploadsBaseURL es la URL pública bajo la que quedan los archivos locales.
func (c Config) UploadsBaseURL() string {
	if c.PublicBaseURL != "" {
		return c.PublicBaseURL + "/uploads"
	}
	return "/uploads"
}
