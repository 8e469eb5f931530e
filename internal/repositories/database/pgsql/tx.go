package pgsql

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/family_treasury/internal/apperrors"
	"github.com/SscSPs/family_treasury/internal/core/domain"
	portsrepo "github.com/SscSPs/family_treasury/internal/core/ports/repositories"
	"github.com/SscSPs/family_treasury/internal/middleware"
	"github.com/SscSPs/family_treasury/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxTransactionManager runs treasury units of work inside a single pgx transaction.
type PgxTransactionManager struct {
	BaseRepository
}

func newPgxTransactionManager(pool *pgxpool.Pool) portsrepo.TransactionManager {
	return &PgxTransactionManager{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionManager = (*PgxTransactionManager)(nil)

// WithinTx commits if fn returns nil and rolls back otherwise. Row locks taken through
// LockPool and LockClaim are released when the transaction ends.
func (m *PgxTransactionManager) WithinTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.TreasuryTx) error) (err error) {
	tx, err := m.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err == nil {
			return
		}
		if rbErr := m.Rollback(ctx, tx); rbErr != nil {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to rollback treasury transaction",
				slog.String("error", rbErr.Error()))
		}
	}()

	if err = fn(ctx, &pgxTreasuryTx{tx: tx}); err != nil {
		return err
	}
	return m.Commit(ctx, tx)
}

type pgxTreasuryTx struct {
	tx pgx.Tx
}

var _ portsrepo.TreasuryTx = (*pgxTreasuryTx)(nil)

func (t *pgxTreasuryTx) LockPool(ctx context.Context, poolID string) (*domain.Pool, error) {
	return findPool(ctx, t.tx, poolID, true)
}

func (t *pgxTreasuryTx) LockClaim(ctx context.Context, claimID string) (*domain.Claim, error) {
	return findClaim(ctx, t.tx, claimID, true)
}

func (t *pgxTreasuryTx) UpdatePoolBalance(ctx context.Context, poolID string, balance decimal.Decimal, userID string, now time.Time) error {
	if balance.IsNegative() {
		return fmt.Errorf("%w: balance of pool %s would become %s", apperrors.ErrInsufficientFunds, poolID, balance)
	}
	query := `
		UPDATE pools
		SET balance = $2, last_updated_at = $3, last_updated_by = $4
		WHERE pool_id = $1;
	`
	tag, err := t.tx.Exec(ctx, query, poolID, balance, now, userID)
	if err != nil {
		if pgErrorCode(err) == pgCheckViolation {
			return fmt.Errorf("%w: pool %s", apperrors.ErrInsufficientFunds, poolID)
		}
		return apperrors.NewAppError(500, "failed to update balance of pool "+poolID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPoolNotFound
	}
	return nil
}

func (t *pgxTreasuryTx) UpdateClaim(ctx context.Context, claim domain.Claim) error {
	m := mapping.ToModelClaim(claim)
	query := `
		UPDATE claims
		SET status = $2, votes_for = $3, votes_against = $4, settlement_reference = $5,
		    approved_at = $6, settled_at = $7, last_updated_at = $8, last_updated_by = $9
		WHERE claim_id = $1;
	`
	tag, err := t.tx.Exec(ctx, query,
		m.ClaimID,
		m.Status,
		m.VotesFor,
		m.VotesAgainst,
		m.SettlementReference,
		m.ApprovedAt,
		m.SettledAt,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update claim "+claim.ClaimID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrClaimNotFound
	}
	return nil
}

func (t *pgxTreasuryTx) AppendLedgerEntry(ctx context.Context, entry domain.LedgerEntry) error {
	m := mapping.ToModelLedgerEntry(entry)
	query := `
		INSERT INTO pool_ledger_entries (entry_id, pool_id, entry_type, amount, currency_code, claim_id, member_id, balance_after, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := t.tx.Exec(ctx, query,
		m.EntryID,
		m.PoolID,
		m.EntryType,
		m.Amount,
		m.CurrencyCode,
		m.ClaimID,
		m.MemberID,
		m.BalanceAfter,
		m.OccurredAt,
	)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation && m.ClaimID != nil {
			return fmt.Errorf("%w: claim %s already has a payout", apperrors.ErrClaimFinalized, *m.ClaimID)
		}
		return apperrors.NewAppError(500, "failed to append ledger entry for pool "+m.PoolID, err)
	}
	return nil
}

func (t *pgxTreasuryTx) RecordVote(ctx context.Context, vote domain.Vote) error {
	m := mapping.ToModelVote(vote)
	_, err := t.tx.Exec(ctx,
		`INSERT INTO claim_votes (vote_id, claim_id, member_id, decision, cast_at) VALUES ($1, $2, $3, $4, $5);`,
		m.VoteID, m.ClaimID, m.MemberID, m.Decision, m.CastAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to record vote on claim "+m.ClaimID, err)
	}
	return nil
}

func (t *pgxTreasuryTx) HasVoted(ctx context.Context, claimID string, memberID string) (bool, error) {
	var exists bool
	err := t.tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM claim_votes WHERE claim_id = $1 AND member_id = $2);`,
		claimID, memberID).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to check votes on claim "+claimID, err)
	}
	return exists, nil
}
