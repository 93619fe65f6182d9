package domain_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/SscSPs/vendor_invoicing/internal/apperrors"
	"github.com/SscSPs/vendor_invoicing/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCents int64
		wantErr   bool
	}{
		{name: "whole amount", input: "150", wantCents: 15000},
		{name: "two fractional digits", input: "150.25", wantCents: 15025},
		{name: "one fractional digit", input: "12.5", wantCents: 1250},
		{name: "trailing zeros beyond cents", input: "1.500", wantCents: 150},
		{name: "negative", input: "-3.10", wantCents: -310},
		{name: "sub-cent precision is rejected", input: "1.005", wantErr: true},
		{name: "garbage", input: "twelve", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "largest storable amount", input: "999999999999.99", wantCents: 99_999_999_999_999},
		{name: "beyond the money column", input: "1000000000000.00", wantErr: true},
		{name: "beyond int64 cents", input: "40000000000000000.00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParseMoney(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCents, got.Cents())
		})
	}
}

func TestMoney_Arithmetic(t *testing.T) {
	a := domain.MustParseMoney("100.00")
	b := domain.MustParseMoney("60.01")

	assert.Equal(t, "160.01", a.Add(b).String())
	assert.Equal(t, "39.99", a.Sub(b).String())
	assert.Equal(t, "-39.99", b.Sub(a).String())
	assert.True(t, b.Sub(a).IsNegative())
	assert.True(t, b.LessThan(a))
	assert.True(t, a.GreaterThan(b))
	assert.Equal(t, 1, a.Cmp(b))
	assert.Equal(t, -1, b.Cmp(a))
	assert.Equal(t, 0, a.Cmp(domain.NewMoneyFromCents(10000)))
	sum, err := domain.SumMoney(a, b)
	require.NoError(t, err)
	assert.Equal(t, "160.01", sum.String())
	empty, err := domain.SumMoney()
	require.NoError(t, err)
	assert.True(t, empty.IsZero())

	_, err = b.SubNonNegative(a)
	assert.ErrorIs(t, err, apperrors.ErrAmountExceedsBalance)

	left, err := a.SubNonNegative(a)
	require.NoError(t, err)
	assert.True(t, left.IsZero())
}

func TestMoney_MulQuantity(t *testing.T) {
	tests := []struct {
		name  string
		price string
		qty     string
		want    string
		wantErr bool
	}{
		{name: "integer quantity", price: "33.33", qty: "3", want: "99.99"},
		{name: "fractional quantity", price: "0.10", qty: "1.5", want: "0.15"},
		{name: "rounds half away from zero", price: "10.00", qty: "0.3335", want: "3.34"},
		{name: "rounds down", price: "10.00", qty: "0.333", want: "3.33"},
		{name: "quantity past int64 cents", price: "1.00", qty: "184467440737095516.17", wantErr: true},
		{name: "product past the money column", price: "999999999999.99", qty: "2", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.MustParseMoney(tt.price).MulQuantity(decimal.RequireFromString(tt.qty))
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestMoney_CheckedAdd(t *testing.T) {
	big := domain.MustParseMoney("400000000000.00")

	sum, err := big.CheckedAdd(big)
	require.NoError(t, err)
	assert.Equal(t, "800000000000.00", sum.String())

	_, err = sum.CheckedAdd(big)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = domain.SumMoney(big, big, big, big, big)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = domain.NewMoneyFromCents(math.MaxInt64).CheckedAdd(domain.NewMoneyFromCents(1))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCheckQuantity(t *testing.T) {
	assert.NoError(t, domain.CheckQuantity(decimal.RequireFromString("999999999999.999999")))
	assert.ErrorIs(t, domain.CheckQuantity(decimal.RequireFromString("1000000000000")), apperrors.ErrValidation)
	assert.ErrorIs(t, domain.CheckQuantity(decimal.RequireFromString("0.0000001")), apperrors.ErrValidation)
}

func TestMoney_JSON(t *testing.T) {
	type body struct {
		Amount domain.Money `json:"amount"`
	}

	out, err := json.Marshal(body{Amount: domain.MustParseMoney("1234.5")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"1234.50"}`, string(out))

	var fromString, fromNumber body
	require.NoError(t, json.Unmarshal([]byte(`{"amount":"40.00"}`), &fromString))
	require.NoError(t, json.Unmarshal([]byte(`{"amount":40}`), &fromNumber))
	assert.Equal(t, fromString.Amount, fromNumber.Amount)

	var bad body
	assert.Error(t, json.Unmarshal([]byte(`{"amount":"0.001"}`), &bad))
}

func TestMoneyFromNumeric(t *testing.T) {
	assert.Equal(t, int64(12345), domain.MoneyFromNumeric(decimal.RequireFromString("123.45")).Cents())
	assert.Equal(t, int64(100), domain.MoneyFromNumeric(decimal.RequireFromString("1.0000")).Cents())
}
