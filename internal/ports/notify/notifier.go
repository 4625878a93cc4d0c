package notify

import (
	"context"

	"github.com/shopspring/decimal"
)

// Message es la confirmación de compra enviada al comprador.
type Message struct {
	Email    string
	Amount   decimal.Decimal // unidades mayores
	Currency string
	ItemName string
}

type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}
