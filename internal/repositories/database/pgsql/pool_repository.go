package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/family_treasury/internal/apperrors"
	"github.com/SscSPs/family_treasury/internal/core/domain"
	portsrepo "github.com/SscSPs/family_treasury/internal/core/ports/repositories"
	"github.com/SscSPs/family_treasury/internal/models"
	"github.com/SscSPs/family_treasury/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const poolColumns = `pool_id, name, external_reference, currency_code, balance, monthly_contribution,
	approval_threshold, rejection_threshold, created_at, created_by, last_updated_at, last_updated_by`

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PgxPoolRepository struct {
	BaseRepository
}

// newPgxPoolRepository creates a new repository for pool data.
func newPgxPoolRepository(pool *pgxpool.Pool) portsrepo.PoolRepositoryFacade {
	return &PgxPoolRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PoolRepositoryFacade = (*PgxPoolRepository)(nil)

func scanPool(row pgx.Row) (models.Pool, error) {
	var m models.Pool
	err := row.Scan(
		&m.PoolID,
		&m.Name,
		&m.ExternalReference,
		&m.CurrencyCode,
		&m.Balance,
		&m.MonthlyContribution,
		&m.ApprovalThreshold,
		&m.RejectionThreshold,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func loadMemberIDs(ctx context.Context, q querier, poolID string) ([]string, error) {
	rows, err := q.Query(ctx, `SELECT member_id FROM pool_members WHERE pool_id = $1 ORDER BY joined_at, member_id;`, poolID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query members of pool "+poolID, err)
	}
	memberIDs, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan members of pool "+poolID, err)
	}
	return memberIDs, nil
}

// findPool reads a pool and its members. forUpdate locks the pool row until q's transaction ends.
func findPool(ctx context.Context, q querier, poolID string, forUpdate bool) (*domain.Pool, error) {
	query := `SELECT ` + poolColumns + ` FROM pools WHERE pool_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	m, err := scanPool(q.QueryRow(ctx, query+";", poolID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPoolNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find pool "+poolID, err)
	}
	memberIDs, err := loadMemberIDs(ctx, q, poolID)
	if err != nil {
		return nil, err
	}
	pool := mapping.ToDomainPool(m, memberIDs)
	return &pool, nil
}

// FindPoolByID retrieves a pool by its ID.
func (r *PgxPoolRepository) FindPoolByID(ctx context.Context, poolID string) (*domain.Pool, error) {
	return findPool(ctx, r.Pool, poolID, false)
}

// FindPoolByMemberID retrieves the single pool a member belongs to.
func (r *PgxPoolRepository) FindPoolByMemberID(ctx context.Context, memberID string) (*domain.Pool, error) {
	var poolID string
	err := r.Pool.QueryRow(ctx, `SELECT pool_id FROM pool_members WHERE member_id = $1;`, memberID).Scan(&poolID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPoolNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find pool for member "+memberID, err)
	}
	return findPool(ctx, r.Pool, poolID, false)
}

// ListLedgerEntries returns up to limit entries, newest first.
func (r *PgxPoolRepository) ListLedgerEntries(ctx context.Context, poolID string, limit int) ([]domain.LedgerEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT entry_id, pool_id, entry_type, amount, currency_code, claim_id, member_id, balance_after, occurred_at
		FROM pool_ledger_entries
		WHERE pool_id = $1
		ORDER BY seq DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, poolID, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger of pool "+poolID, err)
	}
	defer rows.Close()

	var entries []models.PoolLedgerEntry
	for rows.Next() {
		var m models.PoolLedgerEntry
		if err := rows.Scan(
			&m.EntryID,
			&m.PoolID,
			&m.EntryType,
			&m.Amount,
			&m.CurrencyCode,
			&m.ClaimID,
			&m.MemberID,
			&m.BalanceAfter,
			&m.OccurredAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger row of pool "+poolID, err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger rows of pool "+poolID, err)
	}
	return mapping.ToDomainLedgerEntries(entries), nil
}

// SavePool inserts a pool and its founding members in one transaction.
func (r *PgxPoolRepository) SavePool(ctx context.Context, pool domain.Pool) (err error) {
	m := mapping.ToModelPool(pool)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = r.Rollback(ctx, tx)
		}
	}()

	query := `
		INSERT INTO pools (` + poolColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, query,
		m.PoolID,
		m.Name,
		m.ExternalReference,
		m.CurrencyCode,
		m.Balance,
		m.MonthlyContribution,
		m.ApprovalThreshold,
		m.RejectionThreshold,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return fmt.Errorf("%w: pool with ID %s already exists", apperrors.ErrDuplicate, m.PoolID)
		}
		return fmt.Errorf("failed to save pool %s: %w", m.PoolID, err)
	}

	for _, memberID := range pool.MemberIDs {
		if err = insertMember(ctx, tx, models.PoolMember{MemberID: memberID, PoolID: m.PoolID, JoinedAt: m.CreatedAt}); err != nil {
			return err
		}
	}
	return r.Commit(ctx, tx)
}

// AddPoolMember associates a member with an existing pool.
func (r *PgxPoolRepository) AddPoolMember(ctx context.Context, member domain.PoolMember) error {
	return insertMember(ctx, r.Pool, models.PoolMember{
		MemberID: member.MemberID,
		PoolID:   member.PoolID,
		JoinedAt: member.JoinedAt,
	})
}

func insertMember(ctx context.Context, q querier, m models.PoolMember) error {
	_, err := q.Exec(ctx, `INSERT INTO pool_members (member_id, pool_id, joined_at) VALUES ($1, $2, $3);`,
		m.MemberID, m.PoolID, m.JoinedAt)
	if err == nil {
		return nil
	}
	switch pgErrorCode(err) {
	case pgUniqueViolation:
		return fmt.Errorf("%w: member %s already belongs to a pool", apperrors.ErrAlreadyMember, m.MemberID)
	case pgForeignKeyViolation:
		return apperrors.ErrPoolNotFound
	}
	return fmt.Errorf("failed to add member %s to pool %s: %w", m.MemberID, m.PoolID, err)
}
