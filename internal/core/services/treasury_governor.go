package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/family_treasury/internal/apperrors"
	"github.com/SscSPs/family_treasury/internal/core/consensus"
	"github.com/SscSPs/family_treasury/internal/core/domain"
	portsrepo "github.com/SscSPs/family_treasury/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/family_treasury/internal/core/ports/services"
	"github.com/SscSPs/family_treasury/internal/dto"
	"github.com/SscSPs/family_treasury/internal/platform/metrics"
	"github.com/SscSPs/family_treasury/internal/utils"
)

// treasuryGovernor implements the TreasuryGovernorSvc interface
type treasuryGovernor struct {
	BaseService
	pools     portssvc.PoolSvcFacade
	claims    portssvc.ClaimSvcFacade
	poolRepo  portsrepo.PoolReader
	claimRepo portsrepo.ClaimReader
	txManager portsrepo.TransactionManager
	recorder  portssvc.SettlementRecorder

	strictVoting      bool
	settlementTimeout time.Duration
	now               func() time.Time
}

// GovernorOption is a functional option for configuring the governor
type GovernorOption func(*treasuryGovernor)

// WithGovernorStrictVoting requires voters to be pool members. Duplicate ballots are
// refused by the claim store when it is built with WithStrictVoting.
func WithGovernorStrictVoting(strict bool) GovernorOption {
	return func(s *treasuryGovernor) {
		s.strictVoting = strict
	}
}

// WithSettlementTimeout bounds each call to the settlement recorder. Zero means no bound.
func WithSettlementTimeout(d time.Duration) GovernorOption {
	return func(s *treasuryGovernor) {
		s.settlementTimeout = d
	}
}

// WithGovernorTelemetry records votes and settlements. Either argument may be nil.
func WithGovernorTelemetry(m *metrics.Metrics, analytics *utils.PosthogClientWrapper) GovernorOption {
	return func(s *treasuryGovernor) {
		s.Metrics = m
		s.Analytics = analytics
	}
}

// WithGovernorClock replaces time.Now, for tests.
func WithGovernorClock(now func() time.Time) GovernorOption {
	return func(s *treasuryGovernor) {
		s.now = now
	}
}

// NewTreasuryGovernor wires the governor over the pool and claim services.
func NewTreasuryGovernor(
	repos portsrepo.RepositoryProvider,
	pools portssvc.PoolSvcFacade,
	claims portssvc.ClaimSvcFacade,
	recorder portssvc.SettlementRecorder,
	options ...GovernorOption,
) portssvc.TreasuryGovernorSvc {
	svc := &treasuryGovernor{
		BaseService: BaseService{PoolAuthorizer: pools},
		pools:       pools,
		claims:      claims,
		poolRepo:    repos.PoolRepo,
		claimRepo:   repos.ClaimRepo,
		txManager:   repos.TxManager,
		recorder:    recorder,
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TreasuryGovernorSvc = (*treasuryGovernor)(nil)

func (s *treasuryGovernor) SubmitClaim(ctx context.Context, req dto.SubmitClaimRequest, memberID string) (*domain.Claim, error) {
	claim, err := s.claims.CreateClaim(ctx, req, memberID)
	if err != nil {
		return nil, err
	}

	s.Metrics.RecordClaimSubmitted()
	s.Track(memberID, "claim_submitted", map[string]any{
		"pool_id":  claim.PoolID,
		"claim_id": claim.ClaimID,
		"amount":   claim.Amount.String(),
	})
	s.LogInfo(ctx, "Claim proposal submitted",
		slog.String("claim_id", claim.ClaimID),
		slog.String("pool_id", claim.PoolID),
		slog.String("amount", claim.Amount.String()))
	return claim, nil
}

// CastVote records the ballot and evaluates the pool's policy in one unit, so the decision
// always sees the post-increment tally. An approved claim is settled in a second unit; if
// that fails the vote and the approval stand and the claim waits for RetrySettlement.
func (s *treasuryGovernor) CastVote(ctx context.Context, claimID string, decision bool, memberID string) (*domain.VoteResult, error) {
	current, err := s.claimRepo.FindClaimByID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if current.Status != domain.ClaimPending {
		return nil, fmt.Errorf("%w: claim %s is %s", apperrors.ErrClaimFinalized, claimID, current.Status)
	}

	pool, err := s.poolRepo.FindPoolByID(ctx, current.PoolID)
	if err != nil {
		return nil, err
	}
	if s.strictVoting && !pool.HasMember(memberID) {
		return nil, fmt.Errorf("%w: member %s cannot vote on claims of pool %s", apperrors.ErrNotAMember, memberID, pool.PoolID)
	}
	policy := consensus.ConfigForPool(pool)

	var (
		outcome consensus.Outcome
		claim   *domain.Claim
	)
	now := s.now()
	err = s.txManager.WithinTx(ctx, func(ctx context.Context, tx portsrepo.TreasuryTx) error {
		voted, err := s.claims.RecordVote(ctx, tx, claimID, memberID, decision, now)
		if err != nil {
			return err
		}
		claim = voted

		outcome = consensus.Evaluate(voted.VotesFor, voted.VotesAgainst, policy)
		switch outcome {
		case consensus.Approved:
			claim, err = s.claims.MarkApproved(ctx, tx, claimID, memberID, now)
		case consensus.Rejected:
			claim, err = s.claims.MarkRejected(ctx, tx, claimID, memberID, now)
		}
		return err
	})
	if err != nil {
		if !isExpectedGovernorError(err) {
			s.LogError(ctx, err, "Failed to record vote", slog.String("claim_id", claimID))
		}
		return nil, err
	}

	s.Metrics.RecordVote(decision)
	s.LogInfo(ctx, "Vote recorded",
		slog.String("claim_id", claimID),
		slog.Bool("decision", decision),
		slog.Int("votes_for", claim.VotesFor),
		slog.Int("votes_against", claim.VotesAgainst),
		slog.String("outcome", string(outcome)))

	switch outcome {
	case consensus.Approved:
		result, err := s.settle(ctx, claimID, memberID)
		if err != nil {
			return nil, fmt.Errorf("vote recorded and claim %s approved, settlement pending: %w", claimID, err)
		}
		return result, nil
	case consensus.Rejected:
		s.Track(memberID, "claim_rejected", map[string]any{"claim_id": claimID})
		return &domain.VoteResult{
			Status:  domain.OutcomeRejected,
			Message: "Vote recorded and claim rejected",
			Claim:   claim,
		}, nil
	default:
		return &domain.VoteResult{
			Status:  domain.OutcomeVoted,
			Message: "Vote recorded",
			Claim:   claim,
		}, nil
	}
}

// RetrySettlement re-runs settlement for an APPROVED claim. Paid or rejected claims fail
// with ErrClaimFinalized, so a claim is never paid twice.
func (s *treasuryGovernor) RetrySettlement(ctx context.Context, claimID string, memberID string) (*domain.VoteResult, error) {
	claim, err := s.claimRepo.FindClaimByID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeMember(ctx, memberID, claim.PoolID); err != nil {
		return nil, err
	}
	return s.settle(ctx, claimID, memberID)
}

// settle debits the pool, obtains the settlement reference and marks the claim PAID as one
// unit. Any failure rolls back the debit and leaves the claim APPROVED.
func (s *treasuryGovernor) settle(ctx context.Context, claimID string, memberID string) (*domain.VoteResult, error) {
	var (
		paid *domain.Claim
		pool *domain.Pool
	)
	now := s.now()
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, tx portsrepo.TreasuryTx) error {
		claim, err := tx.LockClaim(ctx, claimID)
		if err != nil {
			return err
		}
		if claim.Status != domain.ClaimApproved {
			return fmt.Errorf("%w: claim %s is %s", apperrors.ErrClaimFinalized, claimID, claim.Status)
		}

		pool, err = s.pools.DebitForClaim(ctx, tx, *claim, memberID, now)
		if err != nil {
			return err
		}

		reference, err := s.record(ctx, pool, claim)
		if err != nil {
			return err
		}

		paid, err = s.claims.MarkPaid(ctx, tx, claimID, reference, memberID, now)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInsufficientFunds):
			s.Metrics.RecordSettlement("insufficient_funds")
			s.LogWarn(ctx, "Settlement blocked by insufficient funds", slog.String("claim_id", claimID), slog.String("error", err.Error()))
		case errors.Is(err, apperrors.ErrClaimFinalized), errors.Is(err, apperrors.ErrNotFound):
			// reported by the caller
		default:
			s.Metrics.RecordSettlement("failed")
			s.LogError(ctx, err, "Settlement failed", slog.String("claim_id", claimID))
		}
		return nil, err
	}

	s.Metrics.RecordSettlement("paid")
	s.Metrics.RecordPayout(pool.CurrencyCode, paid.Amount)
	s.Track(memberID, "claim_paid", map[string]any{
		"claim_id": claimID,
		"pool_id":  pool.PoolID,
		"amount":   paid.Amount.String(),
	})
	s.LogInfo(ctx, "Claim settled",
		slog.String("claim_id", claimID),
		slog.String("settlement_reference", *paid.SettlementReference),
		slog.String("pool_balance", pool.Balance.String()))

	return &domain.VoteResult{
		Status:  domain.OutcomePaid,
		Message: "Claim approved and paid " + utils.FormatMoney(paid.Amount, pool.CurrencyCode),
		Claim:   paid,
	}, nil
}

func (s *treasuryGovernor) record(ctx context.Context, pool *domain.Pool, claim *domain.Claim) (string, error) {
	if s.settlementTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.settlementTimeout)
		defer cancel()
	}

	reference, err := s.recorder.Record(ctx, pool.ExternalReference, claim.ClaimID, claim.Amount)
	if err != nil {
		return "", fmt.Errorf("%w: %w", apperrors.ErrSettlementFailed, err)
	}
	if reference == "" {
		return "", fmt.Errorf("%w: recorder returned an empty reference for claim %s", apperrors.ErrSettlementFailed, claim.ClaimID)
	}
	return reference, nil
}

func isExpectedGovernorError(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, apperrors.ErrClaimFinalized) ||
		errors.Is(err, apperrors.ErrAlreadyVoted) ||
		errors.Is(err, apperrors.ErrNotAMember)
}
