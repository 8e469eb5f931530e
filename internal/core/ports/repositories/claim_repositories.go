package repositories

import (
	"context"

	"github.com/SscSPs/family_treasury/internal/core/domain"
)

// ClaimReader defines read operations for claim data
type ClaimReader interface {
	// FindClaimByID retrieves a claim by its unique identifier.
	FindClaimByID(ctx context.Context, claimID string) (*domain.Claim, error)

	// ListClaimsByPool retrieves a page of claims for a pool, newest first.
	// The returned token is nil when there are no more pages.
	ListClaimsByPool(ctx context.Context, poolID string, limit int, nextToken *string) ([]domain.Claim, *string, error)

	// ListVotesByClaim returns every ballot cast on a claim in the order they were cast.
	ListVotesByClaim(ctx context.Context, claimID string) ([]domain.Vote, error)
}

// ClaimWriter defines write operations for claim data
type ClaimWriter interface {
	// SaveClaim persists a new claim.
	SaveClaim(ctx context.Context, claim domain.Claim) error
}

// ClaimRepositoryFacade combines all claim-related repository interfaces
type ClaimRepositoryFacade interface {
	ClaimReader
	ClaimWriter
}
