package stripepay

import (
	"context"
	"errors"
	"testing"

	"pet-store/internal/ports/payments"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
)

type fakeCharges struct {
	params *stripe.ChargeParams
	charge *stripe.Charge
	err    error
}

func (f *fakeCharges) New(params *stripe.ChargeParams) (*stripe.Charge, error) {
	f.params = params
	return f.charge, f.err
}

func TestCharge_MapsRequestAndResult(t *testing.T) {
	fake := &fakeCharges{charge: &stripe.Charge{
		ID:             "ch_123",
		Amount:         999,
		AmountCaptured: 999,
		Currency:       stripe.CurrencyUSD,
		Paid:           true,
	}}
	gw := &Gateway{charges: fake}

	got, err := gw.Charge(context.Background(), payments.ChargeRequest{
		Amount:      999,
		Currency:    "usd",
		Description: "Purchased Norman, Spider",
		Token:       "tok_visa",
	})
	require.NoError(t, err)
	assert.Equal(t, payments.Charge{ID: "ch_123", Amount: 999, Currency: "usd"}, got)

	require.NotNil(t, fake.params)
	assert.Equal(t, int64(999), *fake.params.Amount)
	assert.Equal(t, "usd", *fake.params.Currency)
	assert.Equal(t, "Purchased Norman, Spider", *fake.params.Description)
	require.NotNil(t, fake.params.Source)
	assert.Equal(t, "tok_visa", *fake.params.Source.Token)
}

func TestCharge_CardErrorIsDeclined(t *testing.T) {
	fake := &fakeCharges{err: &stripe.Error{
		Type: stripe.ErrorTypeCard,
		Code: stripe.ErrorCodeCardDeclined,
		Msg:  "Your card was declined.",
	}}
	gw := &Gateway{charges: fake}

	_, err := gw.Charge(context.Background(), payments.ChargeRequest{Amount: 100, Currency: "usd", Token: "tok_chargeDeclined"})
	require.ErrorIs(t, err, ErrStripeDeclined)
}

func TestCharge_OtherErrorsAreUpstream(t *testing.T) {
	gw := &Gateway{charges: &fakeCharges{err: errors.New("connection reset")}}

	_, err := gw.Charge(context.Background(), payments.ChargeRequest{Amount: 100, Currency: "usd", Token: "tok_visa"})
	require.ErrorIs(t, err, ErrStripeUpstream)
}

func TestCharge_UnpaidIsDeclined(t *testing.T) {
	gw := &Gateway{charges: &fakeCharges{charge: &stripe.Charge{ID: "ch_1", Paid: false, Status: stripe.ChargeStatusFailed}}}

	_, err := gw.Charge(context.Background(), payments.ChargeRequest{Amount: 100, Currency: "usd", Token: "tok_visa"})
	require.ErrorIs(t, err, ErrStripeDeclined)
}

func TestNew_RequiresKey(t *testing.T) {
	_, err := New(Config{SecretKey: " "})
	require.ErrorIs(t, err, ErrStripeNotConfigured)

	gw, err := New(Config{SecretKey: "sk_test_123"})
	require.NoError(t, err)
	assert.NotNil(t, gw.charges)
}
