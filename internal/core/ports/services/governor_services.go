package services

import (
	"context"

	"github.com/SscSPs/family_treasury/internal/core/domain"
	"github.com/SscSPs/family_treasury/internal/dto"
)

// TreasuryGovernorSvc orchestrates claims, votes and settlement. It is the only
// service that changes a claim and its pool's balance together.
type TreasuryGovernorSvc interface {
	// SubmitClaim opens a claim for a member of the pool. No balance changes.
	SubmitClaim(ctx context.Context, req dto.SubmitClaimRequest, memberID string) (*domain.Claim, error)

	// CastVote records a ballot, evaluates the pool's policy and settles the claim once approved.
	CastVote(ctx context.Context, claimID string, decision bool, memberID string) (*domain.VoteResult, error)

	// RetrySettlement settles a claim left APPROVED by an earlier failed settlement.
	RetrySettlement(ctx context.Context, claimID string, memberID string) (*domain.VoteResult, error)
}
