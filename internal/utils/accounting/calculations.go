package accounting

import (
	"fmt"
	"slices"

	"github.com/SscSPs/family_treasury/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReplayLedger applies entries, oldest first, to the opening balance and returns the closing
// balance. It fails if any entry's BalanceAfter disagrees with the replay or if the running
// balance ever goes negative.
func ReplayLedger(opening decimal.Decimal, entries []domain.LedgerEntry) (decimal.Decimal, error) {
	balance := opening
	for _, e := range entries {
		if !e.Amount.IsPositive() {
			return decimal.Zero, fmt.Errorf("ledger entry %s has non-positive amount %s", e.EntryID, e.Amount)
		}
		balance = balance.Add(e.SignedAmount())
		if balance.IsNegative() {
			return decimal.Zero, fmt.Errorf("ledger entry %s takes balance negative (%s)", e.EntryID, balance)
		}
		if !balance.Equal(e.BalanceAfter) {
			return decimal.Zero, fmt.Errorf("ledger entry %s records balance %s, replay gives %s", e.EntryID, e.BalanceAfter, balance)
		}
	}
	return balance, nil
}

// ReconcileNewestFirst replays a page of entries as ledger reads return them, newest first.
// When complete is set the page is the whole history and must start from zero; otherwise
// the page opens at the balance before its oldest entry.
func ReconcileNewestFirst(entries []domain.LedgerEntry, complete bool) (decimal.Decimal, error) {
	chronological := slices.Clone(entries)
	slices.Reverse(chronological)

	opening := decimal.Zero
	if !complete && len(chronological) > 0 {
		first := chronological[0]
		opening = first.BalanceAfter.Sub(first.SignedAmount())
	}
	return ReplayLedger(opening, chronological)
}
