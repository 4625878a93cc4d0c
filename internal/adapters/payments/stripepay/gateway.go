package stripepay

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pet-store/internal/ports/payments"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

var (
	ErrStripeNotConfigured = errors.New("stripe gateway not configured")
	ErrStripeDeclined      = errors.New("stripe charge declined")
	ErrStripeUpstream      = errors.New("stripe upstream error")
)

type Config struct {
	SecretKey string
}

type chargeAPI interface {
	New(params *stripe.ChargeParams) (*stripe.Charge, error)
}

// Gateway implementa payments.Gateway con la API de Charges.
// Usa un client propio (no stripe.Key global) para poder inyectarlo.
type Gateway struct {
	charges chargeAPI
}

func New(cfg Config) (*Gateway, error) {
	key := strings.TrimSpace(cfg.SecretKey)
	if key == "" {
		return nil, ErrStripeNotConfigured
	}
	sc := client.New(key, nil)
	return &Gateway{charges: sc.Charges}, nil
}

func (g *Gateway) Charge(ctx context.Context, req payments.ChargeRequest) (payments.Charge, error) {
	params := &stripe.ChargeParams{
		Amount:      stripe.Int64(req.Amount),
		Currency:    stripe.String(req.Currency),
		Description: stripe.String(req.Description),
	}
	params.Context = ctx
	if err := params.SetSource(req.Token); err != nil {
		return payments.Charge{}, fmt.Errorf("%w: %v", ErrStripeDeclined, err)
	}

	ch, err := g.charges.New(params)
	if err != nil {
		var serr *stripe.Error
		if errors.As(err, &serr) && serr.Type == stripe.ErrorTypeCard {
			return payments.Charge{}, fmt.Errorf("%w: %s (%s)", ErrStripeDeclined, serr.Msg, serr.Code)
		}
		return payments.Charge{}, fmt.Errorf("%w: %v", ErrStripeUpstream, err)
	}
	if !ch.Paid {
		return payments.Charge{}, fmt.Errorf("%w: status=%s", ErrStripeDeclined, ch.Status)
	}

	amount := ch.AmountCaptured
	if amount == 0 {
		amount = ch.Amount
	}
	return payments.Charge{
		ID:       ch.ID,
		Amount:   amount,
		Currency: string(ch.Currency),
	}, nil
}
