package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/SscSPs/family_treasury/internal/apperrors"
	"github.com/SscSPs/family_treasury/internal/core/domain"
	portsrepo "github.com/SscSPs/family_treasury/internal/core/ports/repositories"
	"github.com/SscSPs/family_treasury/internal/models"
	"github.com/SscSPs/family_treasury/internal/utils/mapping"
	"github.com/SscSPs/family_treasury/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const claimColumns = `claim_id, pool_id, requester_member_id, amount, reason, payee_reference, attachment_refs,
	status, votes_for, votes_against, settlement_reference, approved_at, settled_at,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxClaimRepository struct {
	BaseRepository
}

// newPgxClaimRepository creates a new repository for claim data.
func newPgxClaimRepository(pool *pgxpool.Pool) portsrepo.ClaimRepositoryFacade {
	return &PgxClaimRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ClaimRepositoryFacade = (*PgxClaimRepository)(nil)

func scanClaim(row pgx.Row) (models.Claim, error) {
	var m models.Claim
	err := row.Scan(
		&m.ClaimID,
		&m.PoolID,
		&m.RequesterMemberID,
		&m.Amount,
		&m.Reason,
		&m.PayeeReference,
		&m.AttachmentRefs,
		&m.Status,
		&m.VotesFor,
		&m.VotesAgainst,
		&m.SettlementReference,
		&m.ApprovedAt,
		&m.SettledAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func findClaim(ctx context.Context, q querier, claimID string, forUpdate bool) (*domain.Claim, error) {
	query := `SELECT ` + claimColumns + ` FROM claims WHERE claim_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	m, err := scanClaim(q.QueryRow(ctx, query+";", claimID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClaimNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find claim "+claimID, err)
	}
	claim := mapping.ToDomainClaim(m)
	return &claim, nil
}

// FindClaimByID retrieves a claim by its ID.
func (r *PgxClaimRepository) FindClaimByID(ctx context.Context, claimID string) (*domain.Claim, error) {
	return findClaim(ctx, r.Pool, claimID, false)
}

// ListClaimsByPool returns a page of a pool's claims ordered by (created_at, claim_id) descending.
func (r *PgxClaimRepository) ListClaimsByPool(ctx context.Context, poolID string, limit int, nextToken *string) ([]domain.Claim, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// One extra row tells whether another page exists
	fetchLimit := limit + 1

	args := []any{poolID}
	query := `SELECT ` + claimColumns + ` FROM claims WHERE pool_id = $1`
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		query += ` AND (created_at, claim_id) < ($2, $3)`
		args = append(args, lastCreatedAt, lastID)
	}
	query += ` ORDER BY created_at DESC, claim_id DESC LIMIT $` + strconv.Itoa(len(args)+1) + `;`
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query claims for pool "+poolID, err)
	}
	defer rows.Close()

	modelClaims := make([]models.Claim, 0, fetchLimit)
	for rows.Next() {
		m, err := scanClaim(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan claim row for pool "+poolID, err)
		}
		modelClaims = append(modelClaims, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating claim rows for pool "+poolID, err)
	}

	var nextTokenVal *string
	if len(modelClaims) > limit {
		modelClaims = modelClaims[:limit]
		last := modelClaims[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.ClaimID)
		nextTokenVal = &token
	}
	return mapping.ToDomainClaimSlice(modelClaims), nextTokenVal, nil
}

// ListVotesByClaim returns ballots in the order they were cast.
func (r *PgxClaimRepository) ListVotesByClaim(ctx context.Context, claimID string) ([]domain.Vote, error) {
	query := `
		SELECT vote_id, claim_id, member_id, decision, cast_at
		FROM claim_votes
		WHERE claim_id = $1
		ORDER BY cast_at, vote_id;
	`
	rows, err := r.Pool.Query(ctx, query, claimID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query votes for claim "+claimID, err)
	}
	votes, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ClaimVote])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan votes for claim "+claimID, err)
	}
	return mapping.ToDomainVotes(votes), nil
}

// SaveClaim inserts a new claim.
func (r *PgxClaimRepository) SaveClaim(ctx context.Context, claim domain.Claim) error {
	m := mapping.ToModelClaim(claim)
	query := `
		INSERT INTO claims (` + claimColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ClaimID,
		m.PoolID,
		m.RequesterMemberID,
		m.Amount,
		m.Reason,
		m.PayeeReference,
		m.AttachmentRefs,
		m.Status,
		m.VotesFor,
		m.VotesAgainst,
		m.SettlementReference,
		m.ApprovedAt,
		m.SettledAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		switch pgErrorCode(err) {
		case pgUniqueViolation:
			return fmt.Errorf("%w: claim with ID %s already exists", apperrors.ErrDuplicate, m.ClaimID)
		case pgForeignKeyViolation:
			return apperrors.ErrPoolNotFound
		}
		return fmt.Errorf("failed to save claim %s: %w", m.ClaimID, err)
	}
	return nil
}
