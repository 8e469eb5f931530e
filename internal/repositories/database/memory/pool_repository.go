package memory

import (
	"context"
	"fmt"

	"github.com/SscSPs/family_treasury/internal/apperrors"
	"github.com/SscSPs/family_treasury/internal/core/domain"
)

// FindPoolByID retrieves a pool with its member set.
func (s *Store) FindPoolByID(_ context.Context, poolID string) (*domain.Pool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pools[poolID]
	if !ok {
		return nil, apperrors.ErrPoolNotFound
	}
	out := clonePool(p)
	return &out, nil
}

// FindPoolByMemberID retrieves the pool a member belongs to.
func (s *Store) FindPoolByMemberID(_ context.Context, memberID string) (*domain.Pool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	poolID, ok := s.members[memberID]
	if !ok {
		return nil, apperrors.ErrPoolNotFound
	}
	out := clonePool(s.pools[poolID])
	return &out, nil
}

// ListLedgerEntries returns up to limit entries, newest first.
func (s *Store) ListLedgerEntries(_ context.Context, poolID string, limit int) ([]domain.LedgerEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := s.ledger[poolID]
	out := make([]domain.LedgerEntry, 0, min(limit, len(entries)))
	for i := len(entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, entries[i])
	}
	return out, nil
}

// SavePool inserts a pool and records each member's association with it.
func (s *Store) SavePool(_ context.Context, pool domain.Pool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.pools[pool.PoolID]; exists {
		return fmt.Errorf("%w: pool with ID %s already exists", apperrors.ErrDuplicate, pool.PoolID)
	}
	for _, memberID := range pool.MemberIDs {
		if existing, ok := s.members[memberID]; ok {
			return fmt.Errorf("%w: member %s is in pool %s", apperrors.ErrAlreadyMember, memberID, existing)
		}
	}
	s.pools[pool.PoolID] = clonePool(pool)
	for _, memberID := range pool.MemberIDs {
		s.members[memberID] = pool.PoolID
	}
	return nil
}

// AddPoolMember associates a member with an existing pool.
func (s *Store) AddPoolMember(_ context.Context, member domain.PoolMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pools[member.PoolID]
	if !ok {
		return apperrors.ErrPoolNotFound
	}
	if existing, ok := s.members[member.MemberID]; ok {
		return fmt.Errorf("%w: member %s is in pool %s", apperrors.ErrAlreadyMember, member.MemberID, existing)
	}
	// copy so snapshots handed out earlier keep their own slice
	p.MemberIDs = append(append([]string(nil), p.MemberIDs...), member.MemberID)
	s.pools[member.PoolID] = p
	s.members[member.MemberID] = member.PoolID
	return nil
}
