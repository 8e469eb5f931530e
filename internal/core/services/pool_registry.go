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
	"github.com/SscSPs/family_treasury/internal/platform/metrics"
	"github.com/SscSPs/family_treasury/internal/utils"
	"github.com/SscSPs/family_treasury/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PoolDefaults apply to pools created without explicit settings.
type PoolDefaults struct {
	ApprovalThreshold  int
	RejectionThreshold int
	CurrencyCode       string
}

// DefaultPoolDefaults approves on the third vote, never rejects, and labels amounts in NGN.
func DefaultPoolDefaults() PoolDefaults {
	return PoolDefaults{
		ApprovalThreshold: domain.DefaultApprovalThreshold,
		CurrencyCode:      "NGN",
	}
}

// poolRegistry implements the PoolSvcFacade interface. It owns the balance invariant.
type poolRegistry struct {
	BaseService
	poolRepo  portsrepo.PoolRepositoryFacade
	txManager portsrepo.TransactionManager
	defaults  PoolDefaults
	now       func() time.Time
}

// PoolRegistryOption is a functional option for configuring the pool registry
type PoolRegistryOption func(*poolRegistry)

// WithPoolDefaults overrides the thresholds and currency used for new pools.
func WithPoolDefaults(d PoolDefaults) PoolRegistryOption {
	return func(s *poolRegistry) {
		s.defaults = d
	}
}

// WithPoolTelemetry records pool activity to Prometheus and PostHog. Either may be nil.
func WithPoolTelemetry(m *metrics.Metrics, analytics *utils.PosthogClientWrapper) PoolRegistryOption {
	return func(s *poolRegistry) {
		s.Metrics = m
		s.Analytics = analytics
	}
}

// WithPoolClock replaces time.Now, for tests.
func WithPoolClock(now func() time.Time) PoolRegistryOption {
	return func(s *poolRegistry) {
		s.now = now
	}
}

// NewPoolRegistry creates the pool service with the provided options
func NewPoolRegistry(repo portsrepo.PoolRepositoryFacade, txManager portsrepo.TransactionManager, options ...PoolRegistryOption) portssvc.PoolSvcFacade {
	svc := &poolRegistry{
		poolRepo:  repo,
		txManager: txManager,
		defaults:  DefaultPoolDefaults(),
		now:       time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	svc.PoolAuthorizer = svc
	return svc
}

var _ portssvc.PoolSvcFacade = (*poolRegistry)(nil)

func (s *poolRegistry) CreatePool(ctx context.Context, req dto.CreatePoolRequest, founderID string) (*domain.Pool, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: pool name is required", apperrors.ErrValidation)
	}
	if req.MonthlyContribution.IsNegative() {
		return nil, fmt.Errorf("%w: monthly contribution cannot be negative", apperrors.ErrInvalidAmount)
	}
	if err := domain.ValidateAmount(req.MonthlyContribution); err != nil {
		return nil, err
	}

	approval := s.defaults.ApprovalThreshold
	if req.ApprovalThreshold != nil {
		approval = *req.ApprovalThreshold
	}
	rejection := s.defaults.RejectionThreshold
	if req.RejectionThreshold != nil {
		rejection = *req.RejectionThreshold
	}
	if approval < 0 || rejection < 0 {
		return nil, fmt.Errorf("%w: thresholds cannot be negative", apperrors.ErrValidation)
	}
	currency := strings.ToUpper(req.CurrencyCode)
	if currency == "" {
		currency = s.defaults.CurrencyCode
	}

	address, err := utils.NewContractAddress()
	if err != nil {
		s.LogError(ctx, err, "Failed to generate pool external reference")
		return nil, apperrors.NewAppError(500, "failed to generate pool reference", err)
	}

	now := s.now()
	pool := domain.Pool{
		PoolID:              uuid.NewString(),
		Name:                name,
		ExternalReference:   address,
		CurrencyCode:        currency,
		Balance:             decimal.Zero,
		MonthlyContribution: req.MonthlyContribution,
		ApprovalThreshold:   approval,
		RejectionThreshold:  rejection,
		MemberIDs:           []string{founderID},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     founderID,
			LastUpdatedAt: now,
			LastUpdatedBy: founderID,
		},
	}

	if err := s.poolRepo.SavePool(ctx, pool); err != nil {
		if !errors.Is(err, apperrors.ErrAlreadyMember) {
			s.LogError(ctx, err, "Failed to save pool", slog.String("member_id", founderID))
		}
		return nil, err
	}

	s.Metrics.RecordPoolCreated()
	s.Track(founderID, "pool_created", map[string]any{"pool_id": pool.PoolID})
	s.LogInfo(ctx, "Pool created",
		slog.String("pool_id", pool.PoolID),
		slog.String("external_reference", pool.ExternalReference),
		slog.Int("approval_threshold", approval))
	return &pool, nil
}

func (s *poolRegistry) JoinPool(ctx context.Context, poolID string, memberID string) (*domain.Pool, error) {
	err := s.poolRepo.AddPoolMember(ctx, domain.PoolMember{
		PoolID:   poolID,
		MemberID: memberID,
		JoinedAt: s.now(),
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrAlreadyMember) {
			s.LogError(ctx, err, "Failed to add pool member", slog.String("pool_id", poolID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Member joined pool", slog.String("pool_id", poolID))
	return s.poolRepo.FindPoolByID(ctx, poolID)
}

// Fund credits the pool under its row lock and appends a CONTRIBUTION ledger entry in the same unit.
func (s *poolRegistry) Fund(ctx context.Context, poolID string, req dto.FundPoolRequest, memberID string) (*domain.Pool, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: funding amount must be positive, got %s", apperrors.ErrInvalidAmount, req.Amount)
	}
	if err := domain.ValidateAmount(req.Amount); err != nil {
		return nil, err
	}

	var funded *domain.Pool
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, tx portsrepo.TreasuryTx) error {
		pool, err := tx.LockPool(ctx, poolID)
		if err != nil {
			return err
		}

		currency := strings.ToUpper(req.CurrencyCode)
		if currency == "" {
			currency = pool.CurrencyCode
		} else if currency != pool.CurrencyCode {
			// Amounts are never converted
			s.LogWarn(ctx, "Funding currency differs from pool currency",
				slog.String("pool_id", poolID),
				slog.String("pool_currency", pool.CurrencyCode),
				slog.String("funding_currency", currency))
		}

		now := s.now()
		if err := pool.Credit(req.Amount, memberID, now); err != nil {
			return err
		}
		if err := tx.UpdatePoolBalance(ctx, poolID, pool.Balance, memberID, now); err != nil {
			return err
		}
		if err := tx.AppendLedgerEntry(ctx, domain.LedgerEntry{
			EntryID:      uuid.NewString(),
			PoolID:       poolID,
			EntryType:    domain.Contribution,
			Amount:       req.Amount,
			CurrencyCode: currency,
			MemberID:     memberID,
			BalanceAfter: pool.Balance,
			OccurredAt:   now,
		}); err != nil {
			return err
		}
		funded = pool
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to fund pool", slog.String("pool_id", poolID))
		}
		return nil, err
	}

	s.Metrics.RecordContribution(funded.CurrencyCode, req.Amount)
	s.LogInfo(ctx, "Pool funded",
		slog.String("pool_id", poolID),
		slog.String("amount", req.Amount.String()),
		slog.String("balance", funded.Balance.String()))
	return funded, nil
}

func (s *poolRegistry) GetPool(ctx context.Context, poolID string) (*domain.Pool, error) {
	pool, err := s.poolRepo.FindPoolByID(ctx, poolID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find pool", slog.String("pool_id", poolID))
		}
		return nil, err
	}
	return pool, nil
}

// GetPoolForMember returns nil, nil when the member has no pool.
func (s *poolRegistry) GetPoolForMember(ctx context.Context, memberID string) (*domain.Pool, error) {
	pool, err := s.poolRepo.FindPoolByMemberID(ctx, memberID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		s.LogError(ctx, err, "Failed to find pool for member", slog.String("member_id", memberID))
		return nil, err
	}
	return pool, nil
}

func (s *poolRegistry) ListLedger(ctx context.Context, poolID string, memberID string, limit int) ([]domain.LedgerEntry, error) {
	if err := s.AuthorizeMember(ctx, memberID, poolID); err != nil {
		return nil, err
	}
	entries, err := s.poolRepo.ListLedgerEntries(ctx, poolID, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list pool ledger", slog.String("pool_id", poolID))
		return nil, err
	}
	// A short page holds the whole history, which must replay from zero
	if _, err := accounting.ReconcileNewestFirst(entries, len(entries) < limit); err != nil {
		s.Metrics.RecordLedgerMismatch()
		s.LogError(ctx, err, "Pool ledger does not reconcile", slog.String("pool_id", poolID))
	}
	return entries, nil
}

// AuthorizeMember returns ErrPoolNotFound for a missing pool and ErrNotAMember otherwise.
func (s *poolRegistry) AuthorizeMember(ctx context.Context, memberID string, poolID string) error {
	pool, err := s.GetPool(ctx, poolID)
	if err != nil {
		return err
	}
	if !pool.HasMember(memberID) {
		s.LogWarn(ctx, "Authorization failed: member not in pool",
			slog.String("member_id", memberID),
			slog.String("pool_id", poolID))
		return fmt.Errorf("%w: member %s, pool %s", apperrors.ErrNotAMember, memberID, poolID)
	}
	return nil
}

// DebitForClaim is the only place a pool balance decreases. The caller owns tx.
func (s *poolRegistry) DebitForClaim(ctx context.Context, tx portsrepo.TreasuryTx, claim domain.Claim, memberID string, now time.Time) (*domain.Pool, error) {
	pool, err := tx.LockPool(ctx, claim.PoolID)
	if err != nil {
		return nil, err
	}
	if err := pool.Debit(claim.Amount, memberID, now); err != nil {
		return nil, err
	}
	if err := tx.UpdatePoolBalance(ctx, pool.PoolID, pool.Balance, memberID, now); err != nil {
		return nil, err
	}
	claimID := claim.ClaimID
	if err := tx.AppendLedgerEntry(ctx, domain.LedgerEntry{
		EntryID:      uuid.NewString(),
		PoolID:       pool.PoolID,
		EntryType:    domain.Payout,
		Amount:       claim.Amount,
		CurrencyCode: pool.CurrencyCode,
		ClaimID:      &claimID,
		MemberID:     claim.RequesterMemberID,
		BalanceAfter: pool.Balance,
		OccurredAt:   now,
	}); err != nil {
		return nil, err
	}
	return pool, nil
}
