package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/family_treasury/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TreasuryTx exposes the locked reads and staged writes available inside one atomic unit.
// Every Lock* call holds the row until the surrounding WithinTx returns.
type TreasuryTx interface {
	// LockPool loads a pool and locks it against concurrent balance changes.
	LockPool(ctx context.Context, poolID string) (*domain.Pool, error)

	// LockClaim loads a claim and locks it against concurrent votes and transitions.
	LockClaim(ctx context.Context, claimID string) (*domain.Claim, error)

	// UpdatePoolBalance writes a new balance for a pool previously locked in this tx.
	UpdatePoolBalance(ctx context.Context, poolID string, balance decimal.Decimal, userID string, now time.Time) error

	// UpdateClaim writes the status, counters and settlement fields of a locked claim.
	UpdateClaim(ctx context.Context, claim domain.Claim) error

	// AppendLedgerEntry records a balance movement.
	AppendLedgerEntry(ctx context.Context, entry domain.LedgerEntry) error

	// RecordVote stores a single ballot.
	RecordVote(ctx context.Context, vote domain.Vote) error

	// HasVoted reports whether memberID already has a ballot on claimID.
	HasVoted(ctx context.Context, claimID string, memberID string) (bool, error)
}

// TransactionManager runs fn as one atomic unit. If fn returns an error, or ctx is
// cancelled before commit, nothing fn wrote is kept.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx TreasuryTx) error) error
}
