// Package money is a currency-tagged decimal amount.
package money

import (
	"fmt"
	"strings"

	"booking-engine/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const DefaultCurrency = "USD"

type Money struct {
	amount   decimal.Decimal
	currency string
}

var ErrCurrencyMismatch = errs.New("currency mismatch")

func New(amount decimal.Decimal, currency string) Money {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{amount: amount, currency: currency}
}

func Parse(amount, currency string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, errs.Validation("amount", fmt.Sprintf("%q is not a decimal", amount))
	}
	return New(d, currency), nil
}

func Zero(currency string) Money {
	return New(decimal.Zero, currency)
}

func (m Money) Amount() decimal.Decimal { return m.amount }
func (m Money) Currency() string        { return m.currency }

func (m Money) IsPositive() bool { return m.amount.IsPositive() }
func (m Money) IsZero() bool     { return m.amount.IsZero() }

// IsWholeCents reports whether the amount is representable with 2 decimal places.
func (m Money) IsWholeCents() bool { return m.amount.Equal(m.amount.Round(2)) }

func (m Money) MulInt(n int64) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(n)), currency: m.currency}
}

// MulRatio multiplies by ratio and rounds half-away-from-zero to 2 places.
func (m Money) MulRatio(ratio decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(ratio).Round(2), currency: m.currency}
}

func (m Money) Sub(o Money) (Money, error) {
	if m.currency != o.currency {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{amount: m.amount.Sub(o.amount), currency: m.currency}, nil
}

func (m Money) Equal(o Money) bool {
	return m.currency == o.currency && m.amount.Equal(o.amount)
}

func (m Money) String() string {
	return m.amount.StringFixed(2) + " " + m.currency
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`{"amount":%q,"currency":%q}`, m.amount.StringFixed(2), m.currency)), nil
}
