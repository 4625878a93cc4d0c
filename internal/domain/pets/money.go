package pets

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidMoney = errors.New("invalid money amount")

// MaxMoney acota los importes aceptados (999.999.999,99) muy por debajo de int64.
const MaxMoney Money = 99_999_999_999

// Money es un importe en unidades menores (centavos).
// En JSON viaja como número decimal con dos posiciones: 9.99.
type Money int64

// ParseMoney interpreta texto decimal ("9.99", "10") sin pasar por float64.
// Más de dos decimales se redondea (half away from zero).
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidMoney)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMoney, s)
	}
	minor := d.Round(2).Shift(2)
	if minor.Abs().GreaterThan(decimal.NewFromInt(int64(MaxMoney))) {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalidMoney, s)
	}
	return Money(minor.IntPart()), nil
}

// MoneyFromMinor construye Money desde unidades menores (p.ej. lo capturado por el gateway).
func MoneyFromMinor(minor int64) Money { return Money(minor) }

func (m Money) Minor() int64 { return int64(m) }

// Decimal devuelve el importe en unidades mayores.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON acepta número (9.99) o string ("9.99").
func (m *Money) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	s := string(bytes.Trim(b, `"`))
	v, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}
