package services

import (
	"context"
	"time"

	"github.com/SscSPs/family_treasury/internal/core/domain"
	portsrepo "github.com/SscSPs/family_treasury/internal/core/ports/repositories"
	"github.com/SscSPs/family_treasury/internal/dto"
)

// ClaimReaderSvc defines read operations for claim data. Callers must be members of the claim's pool.
type ClaimReaderSvc interface {
	GetClaim(ctx context.Context, claimID string, memberID string) (*domain.Claim, error)
	ListClaimsForPool(ctx context.Context, poolID string, memberID string, limit int, nextToken *string) ([]domain.Claim, *string, error)
	ListVotes(ctx context.Context, claimID string, memberID string) ([]domain.Vote, error)
}

// ClaimWriterSvc defines claim creation
type ClaimWriterSvc interface {
	// CreateClaim opens a PENDING claim. The requester must belong to req.PoolID.
	CreateClaim(ctx context.Context, req dto.SubmitClaimRequest, requesterID string) (*domain.Claim, error)
}

// ClaimTransitionSvc mutates claims inside a caller-owned tx
type ClaimTransitionSvc interface {
	// RecordVote stores a ballot and returns the claim with the post-increment tally.
	RecordVote(ctx context.Context, tx portsrepo.TreasuryTx, claimID string, memberID string, decision bool, now time.Time) (*domain.Claim, error)

	MarkApproved(ctx context.Context, tx portsrepo.TreasuryTx, claimID string, memberID string, now time.Time) (*domain.Claim, error)
	MarkPaid(ctx context.Context, tx portsrepo.TreasuryTx, claimID string, settlementReference string, memberID string, now time.Time) (*domain.Claim, error)
	MarkRejected(ctx context.Context, tx portsrepo.TreasuryTx, claimID string, memberID string, now time.Time) (*domain.Claim, error)
}

// ClaimSvcFacade combines all claim-related service interfaces
type ClaimSvcFacade interface {
	ClaimReaderSvc
	ClaimWriterSvc
	ClaimTransitionSvc
}
