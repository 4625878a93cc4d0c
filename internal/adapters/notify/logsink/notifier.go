package logsink

import (
	"context"

	"pet-store/internal/platform/logger"
	"pet-store/internal/ports/notify"
)

// Notifier solo deja la notificación en el log (modo dev).
type Notifier struct {
	log logger.Logger
}

func New(log logger.Logger) *Notifier {
	if log == nil {
		log = logger.Nop()
	}
	return &Notifier{log: log.With(map[string]any{"component": "notify"})}
}

func (n *Notifier) Notify(_ context.Context, msg notify.Message) error {
	n.log.Info("purchase notification", map[string]any{
		"email":     msg.Email,
		"amount":    msg.Amount.StringFixed(2),
		"currency":  msg.Currency,
		"item_name": msg.ItemName,
	})
	return nil
}
