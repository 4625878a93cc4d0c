package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pet-store/internal/ports/notify"

	"github.com/mailgun/mailgun-go/v4"
)

var ErrMailerNotConfigured = errors.New("mailgun mailer not configured")

type Config struct {
	Domain string
	APIKey string
	From   string

	// APIBase opcional (región EU: https://api.eu.mailgun.net/v3).
	APIBase string
}

// Mailer envía la confirmación de compra por Mailgun.
type Mailer struct {
	mg   mailgun.Mailgun
	from string
}

func New(cfg Config) (*Mailer, error) {
	if strings.TrimSpace(cfg.Domain) == "" || strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMailerNotConfigured
	}
	mg := mailgun.NewMailgun(strings.TrimSpace(cfg.Domain), strings.TrimSpace(cfg.APIKey))
	if base := strings.TrimSpace(cfg.APIBase); base != "" {
		mg.SetAPIBase(base)
	}

	from := strings.TrimSpace(cfg.From)
	if from == "" {
		from = "Pet Store <no-reply@" + strings.TrimSpace(cfg.Domain) + ">"
	}
	return &Mailer{mg: mg, from: from}, nil
}

func (m *Mailer) Notify(ctx context.Context, msg notify.Message) error {
	subject, body := compose(msg)
	message := m.mg.NewMessage(m.from, subject, body, msg.Email)

	if _, _, err := m.mg.Send(ctx, message); err != nil {
		return fmt.Errorf("mailgun send: %w", err)
	}
	return nil
}

func compose(msg notify.Message) (subject, body string) {
	subject = fmt.Sprintf("Pet Store - You purchased %s!", msg.ItemName)
	body = fmt.Sprintf(
		"Thank you for purchasing %s.\n\nYour card was charged %s %s.\n",
		msg.ItemName,
		msg.Amount.StringFixed(2),
		strings.ToUpper(msg.Currency),
	)
	return subject, body
}
