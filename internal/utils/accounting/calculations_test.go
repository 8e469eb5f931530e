package accounting

import (
	"testing"

	"github.com/SscSPs/family_treasury/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(id string, kind domain.LedgerEntryType, amount, after int64) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:      id,
		PoolID:       "p1",
		EntryType:    kind,
		Amount:       decimal.NewFromInt(amount),
		BalanceAfter: decimal.NewFromInt(after),
	}
}

// newest first, as ledger reads return them
var history = []domain.LedgerEntry{
	entry("e3", domain.Contribution, 200, 500),
	entry("e2", domain.Payout, 300, 300),
	entry("e1", domain.Contribution, 600, 600),
}

func TestReconcileNewestFirst(t *testing.T) {
	tests := []struct {
		name     string
		entries  []domain.LedgerEntry
		complete bool
		want     int64
		wantErr  string
	}{
		{name: "empty ledger", entries: nil, complete: true, want: 0},
		{name: "full history", entries: history, complete: true, want: 500},
		{name: "partial page opens at its oldest entry", entries: history[:2], complete: false, want: 500},
		{name: "partial page treated as full history", entries: history[:2], complete: true, wantErr: "takes balance negative"},
		{name: "balance mismatch", entries: []domain.LedgerEntry{
			entry("e2", domain.Contribution, 50, 120),
			entry("e1", domain.Contribution, 100, 100),
		}, complete: true, wantErr: "records balance 120"},
		{name: "zero amount", entries: []domain.LedgerEntry{
			entry("e1", domain.Contribution, 0, 0),
		}, complete: true, wantErr: "non-positive amount"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ReconcileNewestFirst(tc.entries, tc.complete)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.NewFromInt(tc.want)), "got %s", got)
		})
	}
}

func TestReconcileNewestFirst_LeavesInputOrder(t *testing.T) {
	entries := append([]domain.LedgerEntry(nil), history...)
	_, err := ReconcileNewestFirst(entries, true)
	require.NoError(t, err)
	assert.Equal(t, "e3", entries[0].EntryID)
}

func TestReplayLedger_FromOpeningBalance(t *testing.T) {
	got, err := ReplayLedger(decimal.NewFromInt(100), []domain.LedgerEntry{entry("e1", domain.Payout, 40, 60)})
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(60)))
}
