package kernel

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

var (
	// ErrCurrencyIsNotConstructed is returned for a zero-value Currency.
	ErrCurrencyIsNotConstructed = errs.NewValueIsRequiredError("currency must be created via NewCurrency")
	// ErrMoneyIsNotConstructed is returned for a zero-value Money.
	ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("money must be created via NewMoney or ParseMoney")
)

var hundred = decimal.NewFromInt(100)

// Currency is an ISO 4217 code such as "USD" or "AED".
type Currency struct {
	code string
}

// NewCurrency validates code against the ISO 4217 table. Lower-case input is accepted.
func NewCurrency(code string) (Currency, error) {
	if strings.TrimSpace(code) == "" {
		return Currency{}, errs.NewValueIsRequiredError("currency")
	}
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return Currency{}, errs.NewValueIsInvalidErrorWithCause("currency", err)
	}
	return Currency{code: unit.String()}, nil
}

func (c Currency) Code() string {
	return c.code
}

func (c Currency) String() string {
	return c.code
}

func (c Currency) IsEqual(other Currency) bool {
	return c.code == other.code
}

func (c Currency) Validate() error {
	if c.code == "" {
		return ErrCurrencyIsNotConstructed
	}
	return nil
}

// Money is a decimal amount in a single currency. Arithmetic between different
// currencies is rejected rather than converted.
type Money struct {
	amount   decimal.Decimal
	currency Currency
	guard    guard.ConstructorGuard
}

// NewMoney binds amount to cur.
func NewMoney(amount decimal.Decimal, cur Currency) (Money, error) {
	if err := cur.Validate(); err != nil {
		return Money{}, err
	}
	return Money{amount: amount, currency: cur, guard: guard.NewConstructorGuard()}, nil
}

// ParseMoney builds Money from a decimal string and a currency code.
func ParseMoney(amount, code string) (Money, error) {
	cur, err := NewCurrency(code)
	if err != nil {
		return Money{}, err
	}
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(value, cur)
}

// ZeroMoney returns 0 in cur.
func ZeroMoney(cur Currency) (Money, error) {
	return NewMoney(decimal.Zero, cur)
}

func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

func (m Money) Amount() decimal.Decimal {
	return m.amount
}

func (m Money) Currency() Currency {
	return m.currency
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

func (m Money) IsEqual(other Money) bool {
	return m.currency.IsEqual(other.currency) && m.amount.Equal(other.amount)
}

// Add returns m+other. Both operands must share a currency.
func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency, guard: m.guard}, nil
}

// Sub returns m-other. Both operands must share a currency.
func (m Money) Sub(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Sub(other.amount), currency: m.currency, guard: m.guard}, nil
}

// Percent returns rate percent of m, e.g. Percent(2.5) on 1000 is 25.
func (m Money) Percent(rate decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(rate).Div(hundred), currency: m.currency, guard: m.guard}
}

// Round rounds half away from zero to places decimal places.
func (m Money) Round(places int32) Money {
	return Money{amount: m.amount.Round(places), currency: m.currency, guard: m.guard}
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(2), m.currency.code)
}

func (m Money) sameCurrency(other Money) error {
	if err := validateBoth(m, other); err != nil {
		return err
	}
	if !m.currency.IsEqual(other.currency) {
		return errs.NewValueIsInvalidErrorWithCause("currency",
			fmt.Errorf("%s does not match %s", other.currency.code, m.currency.code))
	}
	return nil
}

func validateBoth(a, b Money) error {
	if err := a.Validate(); err != nil {
		return err
	}
	return b.Validate()
}
