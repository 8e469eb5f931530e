package services

import (
	"context"

	"github.com/shopspring/decimal"
)

// SettlementRecorder publishes an approved payout to the external ledger and returns its
// reference. The reference is opaque to the treasury. Implementations may fail transiently.
type SettlementRecorder interface {
	Record(ctx context.Context, poolExternalReference string, claimID string, amount decimal.Decimal) (string, error)
}
