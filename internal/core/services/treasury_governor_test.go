package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/family_treasury/internal/adapters/settlement"
	"github.com/SscSPs/family_treasury/internal/apperrors"
	"github.com/SscSPs/family_treasury/internal/core/domain"
	portssvc "github.com/SscSPs/family_treasury/internal/core/ports/services"
	"github.com/SscSPs/family_treasury/internal/core/services"
	"github.com/SscSPs/family_treasury/internal/dto"
	"github.com/SscSPs/family_treasury/internal/platform/config"
	"github.com/SscSPs/family_treasury/internal/repositories/database/memory"
	"github.com/SscSPs/family_treasury/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// --- Mock SettlementRecorder ---
type MockSettlementRecorder struct {
	mock.Mock
}

var _ portssvc.SettlementRecorder = (*MockSettlementRecorder)(nil)

func (m *MockSettlementRecorder) Record(ctx context.Context, poolExternalReference string, claimID string, amount decimal.Decimal) (string, error) {
	args := m.Called(ctx, poolExternalReference, claimID, amount)
	return args.String(0), args.Error(1)
}

func testConfig() *config.Config {
	return &config.Config{
		ApprovalThreshold:  2,
		RejectionThreshold: 0,
		DefaultCurrency:    "NGN",
		SettlementTimeout:  time.Second,
	}
}

func newContainer(cfg *config.Config, store *memory.Store, recorder portssvc.SettlementRecorder) *portssvc.ServiceContainer {
	return services.NewServiceContainer(cfg, store.Provider(), recorder, nil, nil)
}

// --- Test Suite ---
type TreasuryGovernorTestSuite struct {
	suite.Suite
	ctx      context.Context
	store    *memory.Store
	recorder *settlement.ChainRecorder
	svc      *portssvc.ServiceContainer
}

func (suite *TreasuryGovernorTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = memory.NewStore()
	suite.recorder = settlement.NewChainRecorder()
	suite.svc = newContainer(testConfig(), suite.store, suite.recorder)
}

func TestTreasuryGovernorTestSuite(t *testing.T) {
	suite.Run(t, new(TreasuryGovernorTestSuite))
}

// newFamily creates a pool founded by members[0] and joins the rest.
func (suite *TreasuryGovernorTestSuite) newFamily(svc *portssvc.ServiceContainer, req dto.CreatePoolRequest, members ...string) *domain.Pool {
	pool, err := svc.Pool.CreatePool(suite.ctx, req, members[0])
	suite.Require().NoError(err)
	for _, m := range members[1:] {
		_, err := svc.Pool.JoinPool(suite.ctx, pool.PoolID, m)
		suite.Require().NoError(err)
	}
	return pool
}

func (suite *TreasuryGovernorTestSuite) fund(svc *portssvc.ServiceContainer, poolID string, amount int64, memberID string) {
	_, err := svc.Pool.Fund(suite.ctx, poolID, dto.FundPoolRequest{Amount: decimal.NewFromInt(amount)}, memberID)
	suite.Require().NoError(err)
}

func (suite *TreasuryGovernorTestSuite) submit(svc *portssvc.ServiceContainer, poolID string, amount int64, memberID string) *domain.Claim {
	claim, err := svc.Governor.SubmitClaim(suite.ctx, dto.SubmitClaimRequest{
		PoolID: poolID,
		Amount: decimal.NewFromInt(amount),
		Reason: "hospital bill",
	}, memberID)
	suite.Require().NoError(err)
	return claim
}

func (suite *TreasuryGovernorTestSuite) balance(poolID string) decimal.Decimal {
	pool, err := suite.svc.Pool.GetPool(suite.ctx, poolID)
	suite.Require().NoError(err)
	return pool.Balance
}

func (suite *TreasuryGovernorTestSuite) assertLedgerReconciles(poolID string, memberID string) []domain.LedgerEntry {
	entries, err := suite.svc.Pool.ListLedger(suite.ctx, poolID, memberID, 1000)
	suite.Require().NoError(err)
	replayed, err := accounting.ReconcileNewestFirst(entries, true)
	suite.Require().NoError(err)
	suite.True(replayed.Equal(suite.balance(poolID)), "ledger replay %s differs from balance %s", replayed, suite.balance(poolID))
	return entries
}

func (suite *TreasuryGovernorTestSuite) TestOkaforFamilyFund_PaidOnThirdApproval() {
	pool := suite.newFamily(suite.svc, dto.CreatePoolRequest{
		Name:                "Okafor Family Fund",
		MonthlyContribution: decimal.NewFromInt(500),
	}, "ada", "bayo", "chidi")
	suite.fund(suite.svc, pool.PoolID, 5000, "ada")

	claim := suite.submit(suite.svc, pool.PoolID, 3000, "bayo")
	suite.Equal(domain.ClaimPending, claim.Status)

	res, err := suite.svc.Governor.CastVote(suite.ctx, claim.ClaimID, true, "ada")
	suite.Require().NoError(err)
	suite.Equal(domain.OutcomeVoted, res.Status)

	res, err = suite.svc.Governor.CastVote(suite.ctx, claim.ClaimID, true, "bayo")
	suite.Require().NoError(err)
	suite.Equal(domain.OutcomeVoted, res.Status)
	suite.Equal(domain.ClaimPending, res.Claim.Status)

	res, err = suite.svc.Governor.CastVote(suite.ctx, claim.ClaimID, true, "chidi")
	suite.Require().NoError(err)
	suite.Equal(domain.OutcomePaid, res.Status)
	suite.Equal(domain.ClaimPaid, res.Claim.Status)
	suite.Equal(3, res.Claim.VotesFor)
	suite.Require().NotNil(res.Claim.SettlementReference)
	suite.NotEmpty(*res.Claim.SettlementReference)
	suite.Contains(res.Message, "3000.00 NGN")

	suite.True(suite.balance(pool.PoolID).Equal(decimal.NewFromInt(2000)))

	issued, ok := suite.recorder.Issued(claim.ClaimID)
	suite.Require().True(ok)
	suite.Equal(issued, *res.Claim.SettlementReference)

	entries := suite.assertLedgerReconciles(pool.PoolID, "ada")
	suite.Require().Len(entries, 2)
	suite.Equal(domain.Payout, entries[0].EntryType)
	suite.Require().NotNil(entries[0].ClaimID)
	suite.Equal(claim.ClaimID, *entries[0].ClaimID)
	suite.Equal("bayo", entries[0].MemberID)

	votes, err := suite.svc.Claim.ListVotes(suite.ctx, claim.ClaimID, "ada")
	suite.Require().NoError(err)
	suite.Len(votes, 3)
}

func (suite *TreasuryGovernorTestSuite) TestTwoApprovalsStayPending() {
	pool := suite.newFamily(suite.svc, dto.CreatePoolRequest{Name: "Eze"}, "a", "b")
	suite.fund(suite.svc, pool.PoolID, 100, "a")
	claim := suite.submit(suite.svc, pool.PoolID, 50, "a")

	for _, voter := range []string{"a", "b"} {
		res, err := suite.svc.Governor.CastVote(suite.ctx, claim.ClaimID, true, voter)
		suite.Require().NoError(err)
		suite.Equal(domain.OutcomeVoted, res.Status)
	}

	stored, err := suite.svc.Claim.GetClaim(suite.ctx, claim.ClaimID, "a")
	suite.Require().NoError(err)
	suite.Equal(domain.ClaimPending, stored.Status)
	suite.Equal(2, stored.VotesFor)
	suite.True(suite.balance(pool.PoolID).Equal(decimal.NewFromInt(100)))
}

func (suite *TreasuryGovernorTestSuite) TestDuplicateVotesCountByDefault() {
	pool := suite.newFamily(suite.svc, dto.CreatePoolRequest{Name: "Solo"}, "a")
	suite.fund(suite.svc, pool.PoolID, 100, "a")
	claim := suite.submit(suite.svc, pool.PoolID, 40, "a")

	var res *domain.VoteResult
	var err error
	for range 3 {
		res, err = suite.svc.Governor.CastVote(suite.ctx, claim.ClaimID, true, "a")
		suite.Require().NoError(err)
	}
	suite.Equal(domain.OutcomePaid, res.Status)
	suite.True(suite.balance(pool.PoolID).Equal(decimal.NewFromInt(60)))
}

func (suite *TreasuryGovernorTestSuite) TestInsufficientFunds_ClaimStaysApproved() {
	pool := suite.newFamily(suite.svc, dto.CreatePoolRequest{Name: "Obi"}, "a", "b", "c")
	suite.fund(suite.svc, pool.PoolID, 1000, "a")
	claim := suite.submit(suite.svc, pool.PoolID, 3000, "b")

	_, err := suite.svc.Governor.CastVote(suite.ctx, claim.ClaimID, true, "a")
	suite.Require().NoError(err)
	_, err = suite.svc.Governor.CastVote(suite.ctx, claim.ClaimID, true, "b")
	suite.Require().NoError(err)

	_, err = suite.svc.Governor.CastVote(suite.ctx, claim.ClaimID, true, "c")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)

	stored, err := suite.svc.Claim.GetClaim(suite.ctx, claim.ClaimID, "a")
	suite.Require().NoError(err)
	suite.Equal(domain.ClaimApproved, stored.Status)
	suite.Equal(3, stored.VotesFor)
	suite.Nil(stored.SettlementReference)
	suite.True(suite.balance(pool.PoolID).Equal(decimal.NewFromInt(1000)))
	suite.Len(suite.assertLedgerReconciles(pool.PoolID, "a"), 1)

	// Further votes are refused while the claim waits for funds
	_, err = suite.svc.Governor.CastVote(suite.ctx, claim.ClaimID, true, "a")
	suite.ErrorIs(err, apperrors.ErrClaimFinalized)

	suite.fund(suite.svc, pool.PoolID, 2500, "c")
	res, err := suite.svc.Governor.RetrySettlement(suite.ctx, claim.ClaimID, "b")
	suite.Require().NoError(err)
	suite.Equal(domain.OutcomePaid, res.Status)
	suite.True(suite.balance(pool.PoolID).Equal(decimal.NewFromInt(500)))
	suite.assertLedgerReconciles(pool.PoolID, "a")
}

func (suite *TreasuryGovernorTestSuite) TestVoteOnPaidClaimIsFinalized() {
	pool := suite.newFamily(suite.svc, dto.CreatePoolRequest{Name: "Adeyemi"}, "a", "b", "c")
	suite.fund(suite.svc, pool.PoolID, 500, "a")
	claim := suite.submit(suite.svc, pool.PoolID, 200, "a")
	for _, voter := range []string{"a", "b", "c"} {
		_, err := suite.svc.Governor.CastVote(suite.ctx, claim.ClaimID, true, voter)
		suite.Require().NoError(err)
	}
	before, err := suite.svc.Claim.GetClaim(suite.ctx, claim.ClaimID, "a")
	suite.Require().NoError(err)
	suite.Require().Equal(domain.ClaimPaid, before.Status)

	_, err = suite.svc.Governor.CastVote(suite.ctx, claim.ClaimID, false, "b")
	suite.ErrorIs(err, apperrors.ErrClaimFinalized)

	_, err = suite.svc.Governor.RetrySettlement(suite.ctx, claim.ClaimID, "a")
	suite.ErrorIs(err, apperrors.ErrClaimFinalized)

	after, err := suite.svc.Claim.GetClaim(suite.ctx, claim.ClaimID, "a")
	suite.Require().NoError(err)
	suite.Equal(before, after)
	suite.True(suite.balance(pool.PoolID).Equal(decimal.NewFromInt(300)))

	votes, err := suite.svc.Claim.ListVotes(suite.ctx, claim.ClaimID, "a")
	suite.Require().NoError(err)
	suite.Len(votes, 3)
	suite.Len(suite.assertLedgerReconciles(pool.PoolID, "a"), 2)
}

func (suite *TreasuryGovernorTestSuite) TestNonMemberCannotSubmit() {
	pool := suite.newFamily(suite.svc, dto.CreatePoolRequest{Name: "Nwosu"}, "a")
	suite.fund(suite.svc, pool.PoolID, 500, "a")

	_, err := suite.svc.Governor.SubmitClaim(suite.ctx, dto.SubmitClaimRequest{
		PoolID: pool.PoolID,
		Amount: decimal.NewFromInt(100),
		Reason: "not mine to ask",
	}, "stranger")
	suite.ErrorIs(err, apperrors.ErrNotAMember)

	claims, next, err := suite.svc.Claim.ListClaimsForPool(suite.ctx, pool.PoolID, "a", 20, nil)
	suite.Require().NoError(err)
	suite.Empty(claims)
	suite.Nil(next)

	_, _, err = suite.svc.Claim.ListClaimsForPool(suite.ctx, pool.PoolID, "stranger", 20, nil)
	suite.ErrorIs(err, apperrors.ErrNotAMember)
}

func (suite *TreasuryGovernorTestSuite) TestSubmitValidation() {
	pool := suite.newFamily(suite.svc, dto.CreatePoolRequest{Name: "Okeke"}, "a")

	_, err := suite.svc.Governor.SubmitClaim(suite.ctx, dto.SubmitClaimRequest{
		PoolID: pool.PoolID, Amount: decimal.Zero, Reason: "x",
	}, "a")
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)

	_, err = suite.svc.Governor.SubmitClaim(suite.ctx, dto.SubmitClaimRequest{
		PoolID: "missing", Amount: decimal.NewFromInt(1), Reason: "x",
	}, "a")
	suite.ErrorIs(err, apperrors.ErrPoolNotFound)
	suite.ErrorIs(err, apperrors.ErrNotFound)

	claim, err := suite.svc.Governor.SubmitClaim(suite.ctx, dto.SubmitClaimRequest{
		PoolID:         pool.PoolID,
		Amount:         decimal.NewFromInt(10),
		Reason:         "  surgery  ",
		AttachmentRefs: []string{"scan.pdf", "", "scan.pdf", "bill.pdf"},
	}, "a")
	suite.Require().NoError(err)
	suite.Equal("surgery", claim.Reason)
	suite.Equal([]string{"scan.pdf", "bill.pdf"}, claim.AttachmentRefs)
}

func (suite *TreasuryGovernorTestSuite) TestCastVoteUnknownClaim() {
	_, err := suite.svc.Governor.CastVote(suite.ctx, "nope", true, "a")
	suite.ErrorIs(err, apperrors.ErrClaimNotFound)
}

func (suite *TreasuryGovernorTestSuite) TestRejectionThreshold() {
	one := 1
	pool := suite.newFamily(suite.svc, dto.CreatePoolRequest{Name: "Balogun", RejectionThreshold: &one}, "a", "b")
	suite.fund(suite.svc, pool.PoolID, 500, "a")
	claim := suite.submit(suite.svc, pool.PoolID, 100, "a")

	res, err := suite.svc.Governor.CastVote(suite.ctx, claim.ClaimID, false, "a")
	suite.Require().NoError(err)
	suite.Equal(domain.OutcomeVoted, res.Status)

	res, err = suite.svc.Governor.CastVote(suite.ctx, claim.ClaimID, false, "b")
	suite.Require().NoError(err)
	suite.Equal(domain.OutcomeRejected, res.Status)
	suite.Equal(domain.ClaimRejected, res.Claim.Status)

	before, err := suite.svc.Claim.GetClaim(suite.ctx, claim.ClaimID, "a")
	suite.Require().NoError(err)

	_, err = suite.svc.Governor.CastVote(suite.ctx, claim.ClaimID, true, "a")
	suite.ErrorIs(err, apperrors.ErrClaimFinalized)
	_, err = suite.svc.Governor.RetrySettlement(suite.ctx, claim.ClaimID, "a")
	suite.ErrorIs(err, apperrors.ErrClaimFinalized)

	after, err := suite.svc.Claim.GetClaim(suite.ctx, claim.ClaimID, "a")
	suite.Require().NoError(err)
	suite.Equal(before, after)
	suite.Equal(0, after.VotesFor)
	suite.Equal(2, after.VotesAgainst)

	votes, err := suite.svc.Claim.ListVotes(suite.ctx, claim.ClaimID, "a")
	suite.Require().NoError(err)
	suite.Len(votes, 2)
	suite.True(suite.balance(pool.PoolID).Equal(decimal.NewFromInt(500)))
	suite.Len(suite.assertLedgerReconciles(pool.PoolID, "a"), 1)
}

func (suite *TreasuryGovernorTestSuite) TestStrictVoting() {
	cfg := testConfig()
	cfg.StrictVoting = true
	svc := newContainer(cfg, suite.store, suite.recorder)

	pool := suite.newFamily(svc, dto.CreatePoolRequest{Name: "Strict"}, "a", "b", "c")
	suite.fund(svc, pool.PoolID, 500, "a")
	claim := suite.submit(svc, pool.PoolID, 100, "a")

	_, err := svc.Governor.CastVote(suite.ctx, claim.ClaimID, true, "a")
	suite.Require().NoError(err)

	_, err = svc.Governor.CastVote(suite.ctx, claim.ClaimID, true, "a")
	suite.ErrorIs(err, apperrors.ErrAlreadyVoted)

	_, err = svc.Governor.CastVote(suite.ctx, claim.ClaimID, true, "outsider")
	suite.ErrorIs(err, apperrors.ErrNotAMember)

	stored, err := svc.Claim.GetClaim(suite.ctx, claim.ClaimID, "a")
	suite.Require().NoError(err)
	suite.Equal(1, stored.VotesFor)

	_, err = svc.Governor.CastVote(suite.ctx, claim.ClaimID, true, "b")
	suite.Require().NoError(err)
	res, err := svc.Governor.CastVote(suite.ctx, claim.ClaimID, true, "c")
	suite.Require().NoError(err)
	suite.Equal(domain.OutcomePaid, res.Status)
}

func (suite *TreasuryGovernorTestSuite) TestSettlementFailureLeavesClaimApproved() {
	recorder := new(MockSettlementRecorder)
	svc := newContainer(testConfig(), suite.store, recorder)

	pool := suite.newFamily(svc, dto.CreatePoolRequest{Name: "Flaky"}, "a", "b", "c")
	suite.fund(svc, pool.PoolID, 1000, "a")
	claim := suite.submit(svc, pool.PoolID, 400, "a")
	amount := decimal.NewFromInt(400)

	recorder.On("Record", mock.Anything, pool.ExternalReference, claim.ClaimID, amount).
		Return("", errors.New("node unavailable")).Once()

	for _, voter := range []string{"a", "b"} {
		_, err := svc.Governor.CastVote(suite.ctx, claim.ClaimID, true, voter)
		suite.Require().NoError(err)
	}
	_, err := svc.Governor.CastVote(suite.ctx, claim.ClaimID, true, "c")
	suite.ErrorIs(err, apperrors.ErrSettlementFailed)

	stored, err := svc.Claim.GetClaim(suite.ctx, claim.ClaimID, "a")
	suite.Require().NoError(err)
	suite.Equal(domain.ClaimApproved, stored.Status)
	suite.Nil(stored.SettlementReference)
	suite.True(suite.balance(pool.PoolID).Equal(decimal.NewFromInt(1000)))
	suite.Len(suite.assertLedgerReconciles(pool.PoolID, "a"), 1)

	recorder.On("Record", mock.Anything, pool.ExternalReference, claim.ClaimID, amount).
		Return("0xfeed", nil).Once()

	res, err := svc.Governor.RetrySettlement(suite.ctx, claim.ClaimID, "b")
	suite.Require().NoError(err)
	suite.Equal(domain.OutcomePaid, res.Status)
	suite.Equal("0xfeed", *res.Claim.SettlementReference)
	suite.True(suite.balance(pool.PoolID).Equal(decimal.NewFromInt(600)))
	recorder.AssertExpectations(suite.T())
}

func (suite *TreasuryGovernorTestSuite) TestEmptySettlementReferenceIsAFailure() {
	recorder := new(MockSettlementRecorder)
	svc := newContainer(testConfig(), suite.store, recorder)

	pool := suite.newFamily(svc, dto.CreatePoolRequest{Name: "Blank", ApprovalThreshold: new(int)}, "a")
	suite.fund(svc, pool.PoolID, 100, "a")
	claim := suite.submit(svc, pool.PoolID, 10, "a")

	recorder.On("Record", mock.Anything, mock.Anything, claim.ClaimID, mock.Anything).Return("", nil)

	_, err := svc.Governor.CastVote(suite.ctx, claim.ClaimID, true, "a")
	suite.ErrorIs(err, apperrors.ErrSettlementFailed)
	suite.True(suite.balance(pool.PoolID).Equal(decimal.NewFromInt(100)))
}

func (suite *TreasuryGovernorTestSuite) TestRetrySettlementRequiresMembership() {
	pool := suite.newFamily(suite.svc, dto.CreatePoolRequest{Name: "Members"}, "a")
	claim := suite.submit(suite.svc, pool.PoolID, 10, "a")

	_, err := suite.svc.Governor.RetrySettlement(suite.ctx, claim.ClaimID, "stranger")
	suite.ErrorIs(err, apperrors.ErrNotAMember)

	_, err = suite.svc.Governor.RetrySettlement(suite.ctx, claim.ClaimID, "a")
	suite.ErrorIs(err, apperrors.ErrClaimFinalized)
}

func (suite *TreasuryGovernorTestSuite) TestConcurrentFundingIsSerialized() {
	pool := suite.newFamily(suite.svc, dto.CreatePoolRequest{Name: "Busy"}, "a")

	var wg sync.WaitGroup
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := suite.svc.Pool.Fund(suite.ctx, pool.PoolID, dto.FundPoolRequest{Amount: decimal.NewFromInt(100)}, "a")
			suite.NoError(err)
		}()
	}
	wg.Wait()

	suite.True(suite.balance(pool.PoolID).Equal(decimal.NewFromInt(200)))
	suite.Len(suite.assertLedgerReconciles(pool.PoolID, "a"), 2)
}

func (suite *TreasuryGovernorTestSuite) TestConcurrentVotesAndFundingKeepBalanceNonNegative() {
	members := []string{"a", "b", "c", "d", "e"}
	pool := suite.newFamily(suite.svc, dto.CreatePoolRequest{Name: "Crowd"}, members...)
	suite.fund(suite.svc, pool.PoolID, 1000, "a")

	var claims []*domain.Claim
	for range 4 {
		claims = append(claims, suite.submit(suite.svc, pool.PoolID, 400, "a"))
	}

	var wg sync.WaitGroup
	for _, claim := range claims {
		for _, voter := range members {
			wg.Add(1)
			go func(claimID, voter string) {
				defer wg.Done()
				_, _ = suite.svc.Governor.CastVote(suite.ctx, claimID, true, voter)
			}(claim.ClaimID, voter)
		}
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := suite.svc.Pool.Fund(suite.ctx, pool.PoolID, dto.FundPoolRequest{Amount: decimal.NewFromInt(50)}, "b")
		suite.NoError(err)
	}()
	wg.Wait()

	suite.False(suite.balance(pool.PoolID).IsNegative())
	entries := suite.assertLedgerReconciles(pool.PoolID, "a")

	paid := 0
	for _, claim := range claims {
		stored, err := suite.svc.Claim.GetClaim(suite.ctx, claim.ClaimID, "a")
		suite.Require().NoError(err)
		if stored.Status == domain.ClaimPaid {
			paid++
		} else {
			suite.Equal(domain.ClaimApproved, stored.Status)
		}
	}
	// 1050 covers at most two payouts of 400
	suite.Equal(2, paid)
	suite.Len(entries, 2+paid)
}

func (suite *TreasuryGovernorTestSuite) TestCancelledContextRollsBackVote() {
	pool := suite.newFamily(suite.svc, dto.CreatePoolRequest{Name: "Cancel"}, "a")
	claim := suite.submit(suite.svc, pool.PoolID, 10, "a")

	ctx, cancel := context.WithCancel(suite.ctx)
	cancel()
	_, err := suite.svc.Governor.CastVote(ctx, claim.ClaimID, true, "a")
	suite.ErrorIs(err, context.Canceled)

	stored, err := suite.svc.Claim.GetClaim(suite.ctx, claim.ClaimID, "a")
	suite.Require().NoError(err)
	suite.Equal(0, stored.VotesFor)
}

func TestTreasuryGovernor_StampsInjectedClock(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2026, time.March, 1, 9, 30, 0, 0, time.UTC)
	clock := func() time.Time { return fixed }

	repos := memory.NewRepositoryProvider()
	pools := services.NewPoolRegistry(repos.PoolRepo, repos.TxManager,
		services.WithPoolDefaults(services.PoolDefaults{ApprovalThreshold: 0, CurrencyCode: "NGN"}),
		services.WithPoolClock(clock))
	claims := services.NewClaimStore(repos.ClaimRepo, pools, services.WithClaimClock(clock))
	governor := services.NewTreasuryGovernor(repos, pools, claims, settlement.NewChainRecorder(),
		services.WithSettlementTimeout(time.Second), services.WithGovernorClock(clock))

	pool, err := pools.CreatePool(ctx, dto.CreatePoolRequest{Name: "Clocked"}, "ada")
	require.NoError(t, err)
	assert.True(t, pool.CreatedAt.Equal(fixed))

	_, err = pools.Fund(ctx, pool.PoolID, dto.FundPoolRequest{Amount: decimal.NewFromInt(50)}, "ada")
	require.NoError(t, err)

	claim, err := governor.SubmitClaim(ctx, dto.SubmitClaimRequest{PoolID: pool.PoolID, Amount: decimal.NewFromInt(20), Reason: "fees"}, "ada")
	require.NoError(t, err)
	assert.True(t, claim.CreatedAt.Equal(fixed))

	result, err := governor.CastVote(ctx, claim.ClaimID, true, "ada")
	require.NoError(t, err)
	require.Equal(t, domain.OutcomePaid, result.Status)
	require.NotNil(t, result.Claim.SettledAt)
	assert.True(t, result.Claim.SettledAt.Equal(fixed))

	votes, err := claims.ListVotes(ctx, claim.ClaimID, "ada")
	require.NoError(t, err)
	require.Len(t, votes, 1)
	assert.True(t, votes[0].CastAt.Equal(fixed))

	ledger, err := pools.ListLedger(ctx, pool.PoolID, "ada", 10)
	require.NoError(t, err)
	for _, entry := range ledger {
		assert.True(t, entry.OccurredAt.Equal(fixed), "%s entry", entry.EntryType)
	}
}
