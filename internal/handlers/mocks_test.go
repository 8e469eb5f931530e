package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/family_treasury/internal/core/domain"
	portsrepo "github.com/SscSPs/family_treasury/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/family_treasury/internal/core/ports/services"
	"github.com/SscSPs/family_treasury/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock PoolService ---
type MockPoolService struct {
	mock.Mock
}

func (m *MockPoolService) GetPool(ctx context.Context, poolID string) (*domain.Pool, error) {
	args := m.Called(ctx, poolID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pool), args.Error(1)
}
func (m *MockPoolService) GetPoolForMember(ctx context.Context, memberID string) (*domain.Pool, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pool), args.Error(1)
}
func (m *MockPoolService) ListLedger(ctx context.Context, poolID string, memberID string, limit int) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, poolID, memberID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}
func (m *MockPoolService) CreatePool(ctx context.Context, req dto.CreatePoolRequest, founderID string) (*domain.Pool, error) {
	args := m.Called(ctx, req, founderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pool), args.Error(1)
}
func (m *MockPoolService) JoinPool(ctx context.Context, poolID string, memberID string) (*domain.Pool, error) {
	args := m.Called(ctx, poolID, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pool), args.Error(1)
}
func (m *MockPoolService) Fund(ctx context.Context, poolID string, req dto.FundPoolRequest, memberID string) (*domain.Pool, error) {
	args := m.Called(ctx, poolID, req, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pool), args.Error(1)
}
func (m *MockPoolService) AuthorizeMember(ctx context.Context, memberID string, poolID string) error {
	args := m.Called(ctx, memberID, poolID)
	return args.Error(0)
}
func (m *MockPoolService) DebitForClaim(ctx context.Context, tx portsrepo.TreasuryTx, claim domain.Claim, memberID string, now time.Time) (*domain.Pool, error) {
	args := m.Called(ctx, tx, claim, memberID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pool), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.PoolSvcFacade = (*MockPoolService)(nil)

// --- Mock ClaimService ---
type MockClaimService struct {
	mock.Mock
}

func (m *MockClaimService) GetClaim(ctx context.Context, claimID string, memberID string) (*domain.Claim, error) {
	args := m.Called(ctx, claimID, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Claim), args.Error(1)
}
func (m *MockClaimService) ListClaimsForPool(ctx context.Context, poolID string, memberID string, limit int, nextToken *string) ([]domain.Claim, *string, error) {
	args := m.Called(ctx, poolID, memberID, limit, nextToken)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.Claim), next, args.Error(2)
}
func (m *MockClaimService) ListVotes(ctx context.Context, claimID string, memberID string) ([]domain.Vote, error) {
	args := m.Called(ctx, claimID, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vote), args.Error(1)
}
func (m *MockClaimService) CreateClaim(ctx context.Context, req dto.SubmitClaimRequest, requesterID string) (*domain.Claim, error) {
	args := m.Called(ctx, req, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Claim), args.Error(1)
}
func (m *MockClaimService) RecordVote(ctx context.Context, tx portsrepo.TreasuryTx, claimID string, memberID string, decision bool, now time.Time) (*domain.Claim, error) {
	args := m.Called(ctx, tx, claimID, memberID, decision, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Claim), args.Error(1)
}
func (m *MockClaimService) MarkApproved(ctx context.Context, tx portsrepo.TreasuryTx, claimID string, memberID string, now time.Time) (*domain.Claim, error) {
	args := m.Called(ctx, tx, claimID, memberID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Claim), args.Error(1)
}
func (m *MockClaimService) MarkPaid(ctx context.Context, tx portsrepo.TreasuryTx, claimID string, settlementReference string, memberID string, now time.Time) (*domain.Claim, error) {
	args := m.Called(ctx, tx, claimID, settlementReference, memberID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Claim), args.Error(1)
}
func (m *MockClaimService) MarkRejected(ctx context.Context, tx portsrepo.TreasuryTx, claimID string, memberID string, now time.Time) (*domain.Claim, error) {
	args := m.Called(ctx, tx, claimID, memberID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Claim), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.ClaimSvcFacade = (*MockClaimService)(nil)

// --- Mock TreasuryGovernor ---
type MockGovernorService struct {
	mock.Mock
}

func (m *MockGovernorService) SubmitClaim(ctx context.Context, req dto.SubmitClaimRequest, memberID string) (*domain.Claim, error) {
	args := m.Called(ctx, req, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Claim), args.Error(1)
}
func (m *MockGovernorService) CastVote(ctx context.Context, claimID string, decision bool, memberID string) (*domain.VoteResult, error) {
	args := m.Called(ctx, claimID, decision, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VoteResult), args.Error(1)
}
func (m *MockGovernorService) RetrySettlement(ctx context.Context, claimID string, memberID string) (*domain.VoteResult, error) {
	args := m.Called(ctx, claimID, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VoteResult), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.TreasuryGovernorSvc = (*MockGovernorService)(nil)
