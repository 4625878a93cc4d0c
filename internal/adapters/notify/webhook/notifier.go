package webhook

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-store/internal/platform/httpclient"
	"pet-store/internal/ports/notify"
)

var ErrWebhookNotConfigured = errors.New("webhook notifier not configured")

type Config struct {
	URL     string
	Secret  string // opcional, va en X-Webhook-Secret
	Timeout time.Duration
}

// Notifier publica la confirmación como JSON a un endpoint externo.
type Notifier struct {
	url    string
	secret string
	http   *httpclient.Client
}

type payload struct {
	Event    string `json:"event"`
	Email    string `json:"email"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
	ItemName string `json:"itemName"`
}

func New(cfg Config) (*Notifier, error) {
	u := strings.TrimSpace(cfg.URL)
	if u == "" {
		return nil, ErrWebhookNotConfigured
	}
	return &Notifier{
		url:    u,
		secret: strings.TrimSpace(cfg.Secret),
		http:   httpclient.New(cfg.Timeout),
	}, nil
}

func (n *Notifier) Notify(ctx context.Context, msg notify.Message) error {
	headers := map[string]string{}
	if n.secret != "" {
		headers["X-Webhook-Secret"] = n.secret
	}

	return n.http.DoJSON(ctx, http.MethodPost, n.url, headers, payload{
		Event:    "pet.purchased",
		Email:    msg.Email,
		Amount:   msg.Amount.StringFixed(2),
		Currency: msg.Currency,
		ItemName: msg.ItemName,
	}, nil)
}
