// Package valueobject contains value objects for the domain layer.
package valueobject

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// NormalizeCurrency upper-cases and validates an ISO-4217 currency code.
func NormalizeCurrency(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || money.GetCurrency(code) == nil {
		return "", domainerror.ErrInvalidCurrency
	}
	return code, nil
}

// FractionDigits returns the number of minor-unit digits of a currency.
// Unknown or unset currencies default to two digits.
func FractionDigits(code string) int32 {
	if c := money.GetCurrency(code); c != nil {
		return int32(c.Fraction)
	}
	return 2
}

// PlainAmount renders an amount with the currency's fraction digits and no symbol,
// suitable for CSV cells and JSON strings.
func PlainAmount(amount decimal.Decimal, code string) string {
	return amount.StringFixed(FractionDigits(code))
}

// DisplayAmount renders an amount with the currency's symbol and separators, e.g. "$1,234.50".
// Amounts are rounded to the currency's minor unit.
func DisplayAmount(amount decimal.Decimal, code string) string {
	c := money.GetCurrency(code)
	if c == nil {
		return PlainAmount(amount, code)
	}
	minor := amount.Shift(int32(c.Fraction)).Round(0).IntPart()
	return money.New(minor, c.Code).Display()
}
