package domain

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/vendor_invoicing/internal/apperrors"
	"github.com/shopspring/decimal"
)

// moneyScale is the number of fractional digits carried by Money.
const moneyScale = 2

// maxMoneyCents is the largest magnitude a NUMERIC(14,2) column holds (999999999999.99).
const maxMoneyCents int64 = 99_999_999_999_999

// quantityScale and maxQuantity follow the NUMERIC(18,6) line item quantity column.
const quantityScale = 6

var maxQuantity = decimal.New(1, 12)

// Money is a currency amount held as an integer count of cents.
// Floating point is never used; decimal.Decimal is only used at the edges
// for parsing, formatting and database NUMERIC columns.
type Money struct {
	cents int64
}

// ZeroMoney is 0.00.
var ZeroMoney = Money{}

// NewMoneyFromCents creates a Money from a minor-unit count.
func NewMoneyFromCents(cents int64) Money {
	return Money{cents: cents}
}

// ParseMoney parses a decimal string such as "150.00" or "12.5".
// More than two fractional digits is rejected rather than rounded.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return ZeroMoney, fmt.Errorf("%w: invalid amount %q", apperrors.ErrValidation, s)
	}
	return MoneyFromDecimal(d)
}

// MustParseMoney is ParseMoney for constants and tests. It panics on bad input.
func MustParseMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

// MoneyFromDecimal converts an exact decimal to Money.
func MoneyFromDecimal(d decimal.Decimal) (Money, error) {
	if !d.Equal(d.Truncate(moneyScale)) {
		return ZeroMoney, fmt.Errorf("%w: amount %s has more than %d fractional digits", apperrors.ErrValidation, d.String(), moneyScale)
	}
	scaled := d.Shift(moneyScale)
	if !scaled.IsInteger() || scaled.Abs().GreaterThan(decimal.NewFromInt(maxMoneyCents)) {
		return ZeroMoney, fmt.Errorf("%w: amount %s out of range", apperrors.ErrValidation, d.String())
	}
	return Money{cents: scaled.IntPart()}, nil
}

// MoneyFromNumeric converts a fixed-scale NUMERIC column value, rounding to cents.
func MoneyFromNumeric(d decimal.Decimal) Money {
	return Money{cents: d.Round(moneyScale).Shift(moneyScale).IntPart()}
}

// Cents returns the minor-unit count.
func (m Money) Cents() int64 { return m.cents }

// Decimal returns the value as a decimal with two fractional digits.
func (m Money) Decimal() decimal.Decimal { return decimal.New(m.cents, -moneyScale) }

// Add returns m + other.
func (m Money) Add(other Money) Money { return Money{cents: m.cents + other.cents} }

// CheckedAdd returns m + other, or ErrValidation when the sum cannot be stored.
func (m Money) CheckedAdd(other Money) (Money, error) {
	sum := m.cents + other.cents
	if (other.cents > 0 && sum < m.cents) || (other.cents < 0 && sum > m.cents) || sum > maxMoneyCents || sum < -maxMoneyCents {
		return ZeroMoney, fmt.Errorf("%w: %s + %s out of range", apperrors.ErrValidation, m, other)
	}
	return Money{cents: sum}, nil
}

// Sub returns m - other. The result may be negative.
func (m Money) Sub(other Money) Money { return Money{cents: m.cents - other.cents} }

// SubNonNegative returns m - other, or ErrAmountExceedsBalance if that would be negative.
func (m Money) SubNonNegative(other Money) (Money, error) {
	if other.cents > m.cents {
		return ZeroMoney, fmt.Errorf("%w: %s exceeds %s", apperrors.ErrAmountExceedsBalance, other, m)
	}
	return Money{cents: m.cents - other.cents}, nil
}

// MulQuantity multiplies a unit price by a (possibly fractional) quantity,
// rounding half away from zero to whole cents. Products that do not fit
// the money column are rejected with ErrValidation.
func (m Money) MulQuantity(qty decimal.Decimal) (Money, error) {
	return MoneyFromDecimal(m.Decimal().Mul(qty).Round(moneyScale))
}

// CheckQuantity rejects quantities the line item column cannot hold.
// Positivity is left to Invoice.Validate.
func CheckQuantity(qty decimal.Decimal) error {
	if !qty.Equal(qty.Truncate(quantityScale)) {
		return fmt.Errorf("%w: quantity %s has more than %d fractional digits", apperrors.ErrValidation, qty.String(), quantityScale)
	}
	if qty.Abs().GreaterThanOrEqual(maxQuantity) {
		return fmt.Errorf("%w: quantity %s out of range", apperrors.ErrValidation, qty.String())
	}
	return nil
}

// Cmp returns -1, 0 or 1.
func (m Money) Cmp(other Money) int {
	switch {
	case m.cents < other.cents:
		return -1
	case m.cents > other.cents:
		return 1
	default:
		return 0
	}
}

func (m Money) Equal(other Money) bool       { return m.cents == other.cents }
func (m Money) LessThan(other Money) bool    { return m.cents < other.cents }
func (m Money) GreaterThan(other Money) bool { return m.cents > other.cents }
func (m Money) IsZero() bool                 { return m.cents == 0 }
func (m Money) IsNegative() bool             { return m.cents < 0 }
func (m Money) IsPositive() bool             { return m.cents > 0 }

// String formats the amount as "1234.50".
func (m Money) String() string {
	return m.Decimal().StringFixed(moneyScale)
}

// MarshalJSON encodes Money as a fixed two-digit decimal string.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON accepts either a JSON string ("12.50") or a JSON number (12.5).
func (m *Money) UnmarshalJSON(data []byte) error {
	var s string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	} else {
		s = string(data)
	}
	parsed, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// SumMoney adds up values, failing with ErrValidation on overflow.
func SumMoney(values ...Money) (Money, error) {
	var total Money
	for _, v := range values {
		var err error
		if total, err = total.CheckedAdd(v); err != nil {
			return ZeroMoney, err
		}
	}
	return total, nil
}
