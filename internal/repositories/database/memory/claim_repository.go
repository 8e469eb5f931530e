package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/family_treasury/internal/apperrors"
	"github.com/SscSPs/family_treasury/internal/core/domain"
	"github.com/SscSPs/family_treasury/internal/utils/pagination"
)

// FindClaimByID retrieves a claim by ID.
func (s *Store) FindClaimByID(_ context.Context, claimID string) (*domain.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.claims[claimID]
	if !ok {
		return nil, apperrors.ErrClaimNotFound
	}
	out := cloneClaim(c)
	return &out, nil
}

// ListClaimsByPool returns a page of a pool's claims ordered by (CreatedAt, ClaimID) descending.
func (s *Store) ListClaimsByPool(_ context.Context, poolID string, limit int, nextToken *string) ([]domain.Claim, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	var (
		hasCursor bool
		cursorAt  time.Time
		cursorID  string
	)
	if nextToken != nil && *nextToken != "" {
		at, id, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		hasCursor, cursorAt, cursorID = true, at, id
	}

	s.mu.RLock()
	items := make([]domain.Claim, 0, len(s.claimOrder[poolID]))
	for _, id := range s.claimOrder[poolID] {
		c := s.claims[id]
		if hasCursor && !pagination.After(c.CreatedAt, c.ClaimID, cursorAt, cursorID) {
			continue
		}
		items = append(items, cloneClaim(c))
	}
	s.mu.RUnlock()

	slices.SortFunc(items, func(a, b domain.Claim) int {
		if byTime := b.CreatedAt.Compare(a.CreatedAt); byTime != 0 {
			return byTime
		}
		return strings.Compare(b.ClaimID, a.ClaimID)
	})

	if len(items) <= limit {
		return items, nil, nil
	}
	page := items[:limit]
	last := page[limit-1]
	token := pagination.EncodeToken(last.CreatedAt, last.ClaimID)
	return page, &token, nil
}

// ListVotesByClaim returns ballots in the order they were cast.
func (s *Store) ListVotesByClaim(_ context.Context, claimID string) ([]domain.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Vote{}, s.votes[claimID]...), nil
}

// SaveClaim inserts a new claim.
func (s *Store) SaveClaim(_ context.Context, claim domain.Claim) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pools[claim.PoolID]; !ok {
		return apperrors.ErrPoolNotFound
	}
	if _, exists := s.claims[claim.ClaimID]; exists {
		return fmt.Errorf("%w: claim with ID %s already exists", apperrors.ErrDuplicate, claim.ClaimID)
	}
	s.claims[claim.ClaimID] = cloneClaim(claim)
	s.claimOrder[claim.PoolID] = append(s.claimOrder[claim.PoolID], claim.ClaimID)
	return nil
}
