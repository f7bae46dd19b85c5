package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func NewMoney(amount decimal.Decimal, cur currency.Unit) Money {
	return Money{Amount: amount, Currency: cur}
}

// MoneyFromMinorUnits converts an integer amount expressed in the smallest
// unit of cur (e.g. cents) into Money.
func MoneyFromMinorUnits(minor int64, cur currency.Unit) Money {
	scale, _ := currency.Standard.Rounding(cur)

	return Money{
		Amount:   decimal.New(minor, -int32(scale)),
		Currency: cur,
	}
}

// MinorUnits returns the amount in the smallest unit of its currency.
// Amounts finer than the currency scale are rejected rather than rounded.
func (m Money) MinorUnits() (int64, error) {
	scale, _ := currency.Standard.Rounding(m.Currency)

	shifted := m.Amount.Shift(int32(scale))
	if !shifted.Equal(shifted.Truncate(0)) {
		return 0, fmt.Errorf("amount[%s] has more than %d decimal places for %s", m.Amount, scale, m.Currency)
	}

	return shifted.IntPart(), nil
}

func (m Money) String() string {
	scale, _ := currency.Standard.Rounding(m.Currency)
	return m.Amount.StringFixed(int32(scale)) + " " + m.Currency.String()
}
