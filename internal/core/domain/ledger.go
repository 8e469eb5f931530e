package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntryType tells whether an entry credited or debited a pool.
type LedgerEntryType string

const (
	Contribution LedgerEntryType = "CONTRIBUTION"
	Payout       LedgerEntryType = "PAYOUT"
)

// LedgerEntry is a single movement of a pool's balance. Entries are written in the same
// atomic unit as the balance change they describe.
type LedgerEntry struct {
	EntryID      string          `json:"entryID"`
	PoolID       string          `json:"poolID"`
	EntryType    LedgerEntryType `json:"entryType"`
	Amount       decimal.Decimal `json:"amount"` // Always positive; EntryType carries the sign
	CurrencyCode string          `json:"currencyCode"`
	ClaimID      *string         `json:"claimID,omitempty"` // Set for payouts
	MemberID     string          `json:"memberID"`
	BalanceAfter decimal.Decimal `json:"balanceAfter"`
	OccurredAt   time.Time       `json:"occurredAt"`
}

// SignedAmount returns the entry's effect on the balance.
func (e LedgerEntry) SignedAmount() decimal.Decimal {
	if e.EntryType == Payout {
		return e.Amount.Neg()
	}
	return e.Amount
}
