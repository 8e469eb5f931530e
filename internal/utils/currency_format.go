package utils

import (
	"github.com/shopspring/decimal"
)

// moneyPrecision is the display precision for amounts. Storage keeps four places.
const moneyPrecision = 2

// FormatMoney formats an amount for messages, e.g. "3000.00 NGN".
func FormatMoney(amount decimal.Decimal, currencyCode string) string {
	formatted := amount.StringFixed(moneyPrecision)
	if currencyCode == "" {
		return formatted
	}
	return formatted + " " + currencyCode
}
