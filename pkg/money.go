package pkg

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MinorUnitsToDecimal converts an amount in minor units (centavos) to its
// major-unit decimal value.
func MinorUnitsToDecimal(amount int64) decimal.Decimal {
	return decimal.New(amount, -2)
}

// FormatAmount renders a minor-unit amount as "<CUR> 1500.00".
func FormatAmount(amount int64, currency string) string {
	v := MinorUnitsToDecimal(amount).StringFixed(2)
	currency = strings.TrimSpace(currency)
	if currency == "" {
		return v
	}
	return currency + " " + v
}
