package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/family_treasury/internal/apperrors"
	"github.com/SscSPs/family_treasury/internal/core/domain"
	portsrepo "github.com/SscSPs/family_treasury/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

type balanceUpdate struct {
	balance decimal.Decimal
	by      string
	at      time.Time
}

// memTx stages writes until commit. Locks taken through LockPool/LockClaim are held
// until WithinTx returns, whether it commits or not.
type memTx struct {
	store *Store
	held  map[string]bool
	order []string

	pools        map[string]domain.Pool
	claims       map[string]domain.Claim
	poolUpdates  map[string]balanceUpdate
	claimUpdates map[string]domain.Claim
	ledger       []domain.LedgerEntry
	votes        []domain.Vote
}

var _ portsrepo.TreasuryTx = (*memTx)(nil)

// WithinTx runs fn with exclusive access to every pool and claim it locks. Staged writes
// are applied only if fn succeeds and ctx is still live.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.TreasuryTx) error) error {
	tx := &memTx{
		store:        s,
		held:         make(map[string]bool),
		pools:        make(map[string]domain.Pool),
		claims:       make(map[string]domain.Claim),
		poolUpdates:  make(map[string]balanceUpdate),
		claimUpdates: make(map[string]domain.Claim),
	}
	defer tx.release()

	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	tx.commit()
	return nil
}

func (t *memTx) acquire(ctx context.Context, key string) error {
	if t.held[key] {
		return nil
	}
	if err := t.store.locks.lock(ctx, key); err != nil {
		return err
	}
	t.held[key] = true
	t.order = append(t.order, key)
	return nil
}

func (t *memTx) release() {
	for i := len(t.order) - 1; i >= 0; i-- {
		t.store.locks.unlock(t.order[i])
	}
	t.order = nil
}

func (t *memTx) commit() {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for poolID, upd := range t.poolUpdates {
		p := s.pools[poolID]
		p.Balance = upd.balance
		p.LastUpdatedAt = upd.at
		p.LastUpdatedBy = upd.by
		s.pools[poolID] = p
	}
	for claimID, c := range t.claimUpdates {
		s.claims[claimID] = cloneClaim(c)
	}
	for _, e := range t.ledger {
		s.ledger[e.PoolID] = append(s.ledger[e.PoolID], e)
	}
	for _, v := range t.votes {
		s.votes[v.ClaimID] = append(s.votes[v.ClaimID], v)
	}
}

func poolKey(poolID string) string   { return "pool:" + poolID }
func claimKey(claimID string) string { return "claim:" + claimID }

func (t *memTx) LockPool(ctx context.Context, poolID string) (*domain.Pool, error) {
	if err := t.acquire(ctx, poolKey(poolID)); err != nil {
		return nil, err
	}
	if p, ok := t.pools[poolID]; ok {
		out := clonePool(p)
		return &out, nil
	}
	t.store.mu.RLock()
	p, ok := t.store.pools[poolID]
	t.store.mu.RUnlock()
	if !ok {
		return nil, apperrors.ErrPoolNotFound
	}
	p = clonePool(p)
	t.pools[poolID] = p
	out := clonePool(p)
	return &out, nil
}

func (t *memTx) LockClaim(ctx context.Context, claimID string) (*domain.Claim, error) {
	if err := t.acquire(ctx, claimKey(claimID)); err != nil {
		return nil, err
	}
	if c, ok := t.claims[claimID]; ok {
		out := cloneClaim(c)
		return &out, nil
	}
	t.store.mu.RLock()
	c, ok := t.store.claims[claimID]
	t.store.mu.RUnlock()
	if !ok {
		return nil, apperrors.ErrClaimNotFound
	}
	c = cloneClaim(c)
	t.claims[claimID] = c
	out := cloneClaim(c)
	return &out, nil
}

func (t *memTx) UpdatePoolBalance(_ context.Context, poolID string, balance decimal.Decimal, userID string, now time.Time) error {
	p, ok := t.pools[poolID]
	if !ok {
		return apperrors.NewAppError(500, "pool "+poolID+" was not locked in this transaction", nil)
	}
	if balance.IsNegative() {
		return fmt.Errorf("%w: balance of pool %s would become %s", apperrors.ErrInsufficientFunds, poolID, balance)
	}
	p.Balance = balance
	p.LastUpdatedAt = now
	p.LastUpdatedBy = userID
	t.pools[poolID] = p
	t.poolUpdates[poolID] = balanceUpdate{balance: balance, by: userID, at: now}
	return nil
}

func (t *memTx) UpdateClaim(_ context.Context, claim domain.Claim) error {
	if _, ok := t.claims[claim.ClaimID]; !ok {
		return apperrors.NewAppError(500, "claim "+claim.ClaimID+" was not locked in this transaction", nil)
	}
	t.claims[claim.ClaimID] = cloneClaim(claim)
	t.claimUpdates[claim.ClaimID] = cloneClaim(claim)
	return nil
}

func (t *memTx) AppendLedgerEntry(_ context.Context, entry domain.LedgerEntry) error {
	t.ledger = append(t.ledger, entry)
	return nil
}

func (t *memTx) RecordVote(_ context.Context, vote domain.Vote) error {
	t.votes = append(t.votes, vote)
	return nil
}

func (t *memTx) HasVoted(_ context.Context, claimID string, memberID string) (bool, error) {
	for _, v := range t.votes {
		if v.ClaimID == claimID && v.MemberID == memberID {
			return true, nil
		}
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	for _, v := range t.store.votes[claimID] {
		if v.MemberID == memberID {
			return true, nil
		}
	}
	return false, nil
}
