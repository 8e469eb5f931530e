package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/family_treasury/internal/apperrors"
	"github.com/SscSPs/family_treasury/internal/core/domain"
	portsrepo "github.com/SscSPs/family_treasury/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/family_treasury/internal/core/ports/services"
	"github.com/SscSPs/family_treasury/internal/dto"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// claimStore implements the ClaimSvcFacade interface
type claimStore struct {
	BaseService
	claimRepo    portsrepo.ClaimRepositoryFacade
	strictVoting bool
	now          func() time.Time
}

// ClaimStoreOption is a functional option for configuring the claim store
type ClaimStoreOption func(*claimStore)

// WithStrictVoting rejects a second ballot from the same member with ErrAlreadyVoted.
func WithStrictVoting(strict bool) ClaimStoreOption {
	return func(s *claimStore) {
		s.strictVoting = strict
	}
}

// WithClaimClock replaces time.Now, for tests.
func WithClaimClock(now func() time.Time) ClaimStoreOption {
	return func(s *claimStore) {
		s.now = now
	}
}

// NewClaimStore creates the claim service. authorizer answers pool membership questions.
func NewClaimStore(repo portsrepo.ClaimRepositoryFacade, authorizer portssvc.PoolAuthorizerSvc, options ...ClaimStoreOption) portssvc.ClaimSvcFacade {
	svc := &claimStore{
		BaseService: BaseService{PoolAuthorizer: authorizer},
		claimRepo:   repo,
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ClaimSvcFacade = (*claimStore)(nil)

func (s *claimStore) CreateClaim(ctx context.Context, req dto.SubmitClaimRequest, requesterID string) (*domain.Claim, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: claim amount must be positive, got %s", apperrors.ErrInvalidAmount, req.Amount)
	}
	if err := domain.ValidateAmount(req.Amount); err != nil {
		return nil, err
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: claim reason is required", apperrors.ErrValidation)
	}
	if err := s.AuthorizeMember(ctx, requesterID, req.PoolID); err != nil {
		return nil, err
	}

	now := s.now()
	claim := domain.Claim{
		ClaimID:           uuid.NewString(),
		PoolID:            req.PoolID,
		RequesterMemberID: requesterID,
		Amount:            req.Amount,
		Reason:            reason,
		PayeeReference:    strings.TrimSpace(req.PayeeReference),
		AttachmentRefs:    lo.Uniq(lo.Compact(req.AttachmentRefs)),
		Status:            domain.ClaimPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requesterID,
			LastUpdatedAt: now,
			LastUpdatedBy: requesterID,
		},
	}
	if len(claim.AttachmentRefs) == 0 {
		claim.AttachmentRefs = nil
	}

	if err := s.claimRepo.SaveClaim(ctx, claim); err != nil {
		s.LogError(ctx, err, "Failed to save claim", slog.String("pool_id", req.PoolID))
		return nil, err
	}

	s.LogInfo(ctx, "Claim created", slog.String("claim_id", claim.ClaimID), slog.String("pool_id", claim.PoolID))
	return &claim, nil
}

func (s *claimStore) GetClaim(ctx context.Context, claimID string, memberID string) (*domain.Claim, error) {
	claim, err := s.claimRepo.FindClaimByID(ctx, claimID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find claim", slog.String("claim_id", claimID))
		}
		return nil, err
	}
	if err := s.AuthorizeMember(ctx, memberID, claim.PoolID); err != nil {
		return nil, err
	}
	return claim, nil
}

// ListClaimsForPool returns one page, newest first. A nil nextToken starts from the newest claim.
func (s *claimStore) ListClaimsForPool(ctx context.Context, poolID string, memberID string, limit int, nextToken *string) ([]domain.Claim, *string, error) {
	if err := s.AuthorizeMember(ctx, memberID, poolID); err != nil {
		return nil, nil, err
	}
	claims, token, err := s.claimRepo.ListClaimsByPool(ctx, poolID, limit, nextToken)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list claims", slog.String("pool_id", poolID))
		}
		return nil, nil, err
	}
	if claims == nil {
		claims = []domain.Claim{}
	}
	return claims, token, nil
}

func (s *claimStore) ListVotes(ctx context.Context, claimID string, memberID string) ([]domain.Vote, error) {
	if _, err := s.GetClaim(ctx, claimID, memberID); err != nil {
		return nil, err
	}
	votes, err := s.claimRepo.ListVotesByClaim(ctx, claimID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list votes", slog.String("claim_id", claimID))
		return nil, err
	}
	return votes, nil
}

// RecordVote increments the tally under the claim lock and stores the ballot. It does not
// evaluate consensus. Repeat ballots are counted unless strict voting is on.
func (s *claimStore) RecordVote(ctx context.Context, tx portsrepo.TreasuryTx, claimID string, memberID string, decision bool, now time.Time) (*domain.Claim, error) {
	claim, err := tx.LockClaim(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if claim.Status != domain.ClaimPending {
		return nil, fmt.Errorf("%w: claim %s is %s", apperrors.ErrClaimFinalized, claimID, claim.Status)
	}

	if s.strictVoting {
		voted, err := tx.HasVoted(ctx, claimID, memberID)
		if err != nil {
			return nil, err
		}
		if voted {
			return nil, fmt.Errorf("%w: claim %s", apperrors.ErrAlreadyVoted, claimID)
		}
	}

	if err := claim.ApplyVote(decision, memberID, now); err != nil {
		return nil, err
	}
	if err := tx.RecordVote(ctx, domain.Vote{
		VoteID:   uuid.NewString(),
		ClaimID:  claimID,
		MemberID: memberID,
		Decision: decision,
		CastAt:   now,
	}); err != nil {
		return nil, err
	}
	if err := tx.UpdateClaim(ctx, *claim); err != nil {
		return nil, err
	}
	return claim, nil
}

func (s *claimStore) MarkApproved(ctx context.Context, tx portsrepo.TreasuryTx, claimID string, memberID string, now time.Time) (*domain.Claim, error) {
	return s.transition(ctx, tx, claimID, func(c *domain.Claim) error {
		return c.Approve(memberID, now)
	})
}

func (s *claimStore) MarkPaid(ctx context.Context, tx portsrepo.TreasuryTx, claimID string, settlementReference string, memberID string, now time.Time) (*domain.Claim, error) {
	return s.transition(ctx, tx, claimID, func(c *domain.Claim) error {
		return c.MarkPaid(settlementReference, memberID, now)
	})
}

func (s *claimStore) MarkRejected(ctx context.Context, tx portsrepo.TreasuryTx, claimID string, memberID string, now time.Time) (*domain.Claim, error) {
	return s.transition(ctx, tx, claimID, func(c *domain.Claim) error {
		return c.Reject(memberID, now)
	})
}

func (s *claimStore) transition(ctx context.Context, tx portsrepo.TreasuryTx, claimID string, apply func(*domain.Claim) error) (*domain.Claim, error) {
	claim, err := tx.LockClaim(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if err := apply(claim); err != nil {
		return nil, err
	}
	if err := tx.UpdateClaim(ctx, *claim); err != nil {
		return nil, err
	}
	return claim, nil
}
