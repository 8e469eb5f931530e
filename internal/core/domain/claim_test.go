package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/family_treasury/internal/apperrors"
	"github.com/SscSPs/family_treasury/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaim_Transitions(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		from    domain.ClaimStatus
		apply   func(c *domain.Claim) error
		want    domain.ClaimStatus
		wantErr error
	}{
		{
			name:  "approve pending",
			from:  domain.ClaimPending,
			apply: func(c *domain.Claim) error { return c.Approve("m1", now) },
			want:  domain.ClaimApproved,
		},
		{
			name:    "approve already approved",
			from:    domain.ClaimApproved,
			apply:   func(c *domain.Claim) error { return c.Approve("m1", now) },
			want:    domain.ClaimApproved,
			wantErr: apperrors.ErrClaimFinalized,
		},
		{
			name:  "pay approved",
			from:  domain.ClaimApproved,
			apply: func(c *domain.Claim) error { return c.MarkPaid("0xabc", "m1", now) },
			want:  domain.ClaimPaid,
		},
		{
			name:    "pay pending",
			from:    domain.ClaimPending,
			apply:   func(c *domain.Claim) error { return c.MarkPaid("0xabc", "m1", now) },
			want:    domain.ClaimPending,
			wantErr: apperrors.ErrClaimFinalized,
		},
		{
			name:    "pay twice",
			from:    domain.ClaimPaid,
			apply:   func(c *domain.Claim) error { return c.MarkPaid("0xdef", "m1", now) },
			want:    domain.ClaimPaid,
			wantErr: apperrors.ErrClaimFinalized,
		},
		{
			name:    "pay without reference",
			from:    domain.ClaimApproved,
			apply:   func(c *domain.Claim) error { return c.MarkPaid("", "m1", now) },
			want:    domain.ClaimApproved,
			wantErr: apperrors.ErrValidation,
		},
		{
			name:  "reject pending",
			from:  domain.ClaimPending,
			apply: func(c *domain.Claim) error { return c.Reject("m1", now) },
			want:  domain.ClaimRejected,
		},
		{
			name:    "reject paid",
			from:    domain.ClaimPaid,
			apply:   func(c *domain.Claim) error { return c.Reject("m1", now) },
			want:    domain.ClaimPaid,
			wantErr: apperrors.ErrClaimFinalized,
		},
		{
			name:    "vote on rejected",
			from:    domain.ClaimRejected,
			apply:   func(c *domain.Claim) error { return c.ApplyVote(true, "m1", now) },
			want:    domain.ClaimRejected,
			wantErr: apperrors.ErrClaimFinalized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := domain.Claim{ClaimID: "claim-1", Status: tt.from, Amount: decimal.NewFromInt(10)}
			err := tt.apply(&c)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, c.Status)
		})
	}
}

func TestClaim_MarkPaidSetsReference(t *testing.T) {
	now := time.Now()
	c := domain.Claim{ClaimID: "claim-1", Status: domain.ClaimApproved}

	require.NoError(t, c.MarkPaid("0xPayout1", "m1", now))
	require.NotNil(t, c.SettlementReference)
	assert.Equal(t, "0xPayout1", *c.SettlementReference)
	require.NotNil(t, c.SettledAt)
	assert.True(t, c.Status.IsTerminal())
}

func TestClaim_ApplyVoteCounts(t *testing.T) {
	c := domain.Claim{ClaimID: "claim-1", Status: domain.ClaimPending}

	require.NoError(t, c.ApplyVote(true, "m1", time.Now()))
	require.NoError(t, c.ApplyVote(false, "m2", time.Now()))
	require.NoError(t, c.ApplyVote(true, "m3", time.Now()))

	assert.Equal(t, 2, c.VotesFor)
	assert.Equal(t, 1, c.VotesAgainst)
	assert.Equal(t, "m3", c.LastUpdatedBy)
}

func TestPool_DebitNeverOverdraws(t *testing.T) {
	p := domain.Pool{PoolID: "pool-1", Balance: decimal.NewFromInt(1000)}

	err := p.Debit(decimal.NewFromInt(3000), "m1", time.Now())
	assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
	assert.True(t, p.Balance.Equal(decimal.NewFromInt(1000)))

	require.NoError(t, p.Debit(decimal.NewFromInt(1000), "m1", time.Now()))
	assert.True(t, p.Balance.IsZero())

	assert.ErrorIs(t, p.Credit(decimal.Zero, "m1", time.Now()), apperrors.ErrInvalidAmount)
	assert.ErrorIs(t, p.Debit(decimal.NewFromInt(-5), "m1", time.Now()), apperrors.ErrInvalidAmount)
}
