package payments

import "context"

// ChargeRequest: Amount en unidades menores; Token es el source que entregó el cliente.
type ChargeRequest struct {
	Amount      int64
	Currency    string
	Description string
	Token       string
}

type Charge struct {
	ID       string
	Amount   int64 // capturado, unidades menores
	Currency string
}

// Gateway hace un único intento de cobro, sin reintentos.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (Charge, error)
}
