package pets

import (
	"context"
	"fmt"
	"strings"

	"pet-store/internal/ports/notify"
	"pet-store/internal/ports/payments"
)

type PurchaseInput struct {
	PathID string
	// BodyID tiene prioridad si viene y no está vacío (hay datos sembrados con el id en null).
	BodyID *string

	Token string
	Email string
}

// Receipt resume un cobro exitoso. No hay estado persistido de la compra.
type Receipt struct {
	PetID    string
	ChargeID string
	Amount   Money
	Currency string
	Email    string
	Notified bool
}

// Purchase carga el registro, cobra precio*100 en un solo intento y notifica al
// comprador. El registro de la mascota no se modifica en ningún caso.
func (s *Service) Purchase(ctx context.Context, in PurchaseInput) (Receipt, error) {
	petID := strings.TrimSpace(in.PathID)
	if in.BodyID != nil && strings.TrimSpace(*in.BodyID) != "" {
		petID = strings.TrimSpace(*in.BodyID)
	}

	log := s.log.With(map[string]any{"pet_id": petID})

	token := strings.TrimSpace(in.Token)
	if token == "" {
		return Receipt{}, fmt.Errorf("%w: payment token required", ErrInvalidInput)
	}
	if s.gateway == nil {
		return Receipt{}, ErrPaymentUnavailable
	}

	p, err := s.GetByID(ctx, petID)
	if err != nil {
		log.Warn("purchase aborted, pet not loaded", map[string]any{"err": err})
		return Receipt{}, err
	}

	charge, err := s.gateway.Charge(ctx, payments.ChargeRequest{
		Amount:      p.Price.Minor(),
		Currency:    s.currency,
		Description: fmt.Sprintf("Purchased %s, %s", p.Name, p.Species),
		Token:       token,
	})
	if err != nil {
		log.Error("charge failed", map[string]any{"err": err, "amount": p.Price.Minor()})
		return Receipt{}, fmt.Errorf("%w: %w", ErrPayment, err)
	}

	currency := charge.Currency
	if currency == "" {
		currency = s.currency
	}

	r := Receipt{
		PetID:    p.ID,
		ChargeID: charge.ID,
		Amount:   MoneyFromMinor(charge.Amount),
		Currency: currency,
		Email:    strings.TrimSpace(in.Email),
	}

	log.Info("charge captured", map[string]any{"charge_id": charge.ID, "amount": r.Amount.String()})

	if r.Email == "" || s.notifier == nil {
		log.Warn("purchase notification skipped", map[string]any{"has_email": r.Email != ""})
		return r, nil
	}

	err = s.notifier.Notify(ctx, notify.Message{
		Email:    r.Email,
		Amount:   r.Amount.Decimal(),
		Currency: r.Currency,
		ItemName: p.Name,
	})
	if err != nil {
		// El cobro ya está hecho; no se deshace.
		log.Error("purchase notification failed", map[string]any{"err": err, "charge_id": charge.ID})
		return r, nil
	}

	r.Notified = true
	return r, nil
}
