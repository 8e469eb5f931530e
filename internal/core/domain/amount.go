package domain

import (
	"fmt"

	"github.com/SscSPs/family_treasury/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Amounts are stored as NUMERIC(20,4).
const (
	AmountScale         = 4
	amountIntegerDigits = 16
)

// MaxAmount is the smallest value that no longer fits an amount column.
var MaxAmount = decimal.New(1, amountIntegerDigits)

// ValidateAmount checks that amount can be stored without rounding or overflow. It does
// not check the sign.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.Equal(amount.Truncate(AmountScale)) {
		return fmt.Errorf("%w: %s has more than %d decimal places", apperrors.ErrInvalidAmount, amount, AmountScale)
	}
	if amount.Abs().GreaterThanOrEqual(MaxAmount) {
		return fmt.Errorf("%w: %s exceeds the largest supported amount", apperrors.ErrInvalidAmount, amount)
	}
	return nil
}
