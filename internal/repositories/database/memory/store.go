// Package memory is an in-process implementation of the treasury repositories. It backs
// STORAGE_DRIVER=memory and the service tests.
package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/family_treasury/internal/core/domain"
	portsrepo "github.com/SscSPs/family_treasury/internal/core/ports/repositories"
)

// Store holds all treasury state. mu guards the maps; per-entity locks serialize
// transactions that touch the same pool or claim.
type Store struct {
	mu         sync.RWMutex
	pools      map[string]domain.Pool
	members    map[string]string // memberID -> poolID
	claims     map[string]domain.Claim
	claimOrder map[string][]string // poolID -> claimIDs, insertion order
	votes      map[string][]domain.Vote
	ledger     map[string][]domain.LedgerEntry // poolID -> entries, oldest first

	locks *keyedLocks
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		pools:      make(map[string]domain.Pool),
		members:    make(map[string]string),
		claims:     make(map[string]domain.Claim),
		claimOrder: make(map[string][]string),
		votes:      make(map[string][]domain.Vote),
		ledger:     make(map[string][]domain.LedgerEntry),
		locks:      newKeyedLocks(),
	}
}

// NewRepositoryProvider wires a fresh store into every repository port.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	return NewStore().Provider()
}

// Provider exposes s through the repository ports.
func (s *Store) Provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		PoolRepo:  s,
		ClaimRepo: s,
		TxManager: s,
	}
}

var (
	_ portsrepo.PoolRepositoryFacade  = (*Store)(nil)
	_ portsrepo.ClaimRepositoryFacade = (*Store)(nil)
	_ portsrepo.TransactionManager    = (*Store)(nil)
)

// keyedLocks is a set of context-aware mutexes. A slot lives while some transaction holds
// or waits for its key and is dropped on the last release.
type keyedLocks struct {
	mu    sync.Mutex
	slots map[string]*lockSlot
}

type lockSlot struct {
	ch   chan struct{}
	refs int
}

func newKeyedLocks() *keyedLocks {
	return &keyedLocks{slots: make(map[string]*lockSlot)}
}

func (l *keyedLocks) ref(key string) *lockSlot {
	l.mu.Lock()
	defer l.mu.Unlock()
	slot, ok := l.slots[key]
	if !ok {
		slot = &lockSlot{ch: make(chan struct{}, 1)}
		l.slots[key] = slot
	}
	slot.refs++
	return slot
}

func (l *keyedLocks) unref(key string, slot *lockSlot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	slot.refs--
	if slot.refs == 0 {
		delete(l.slots, key)
	}
}

// lock blocks until key is free or ctx is done.
func (l *keyedLocks) lock(ctx context.Context, key string) error {
	slot := l.ref(key)
	select {
	case slot.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		l.unref(key, slot)
		return ctx.Err()
	}
}

// unlock releases a key taken with lock.
func (l *keyedLocks) unlock(key string) {
	l.mu.Lock()
	slot := l.slots[key]
	l.mu.Unlock()
	<-slot.ch
	l.unref(key, slot)
}

func clonePool(p domain.Pool) domain.Pool {
	p.MemberIDs = append([]string(nil), p.MemberIDs...)
	return p
}

func cloneClaim(c domain.Claim) domain.Claim {
	if c.AttachmentRefs != nil {
		c.AttachmentRefs = append([]string(nil), c.AttachmentRefs...)
	}
	return c
}
