package repositories

import (
	"context"

	"github.com/SscSPs/family_treasury/internal/core/domain"
)

// PoolReader defines read operations for pool data
type PoolReader interface {
	// FindPoolByID retrieves a pool with its member set.
	FindPoolByID(ctx context.Context, poolID string) (*domain.Pool, error)

	// FindPoolByMemberID retrieves the pool a member belongs to, or ErrPoolNotFound.
	FindPoolByMemberID(ctx context.Context, memberID string) (*domain.Pool, error)

	// ListLedgerEntries returns the pool's most recent balance movements, newest first.
	ListLedgerEntries(ctx context.Context, poolID string, limit int) ([]domain.LedgerEntry, error)
}

// PoolWriter defines write operations for pool data
type PoolWriter interface {
	// SavePool persists a new pool together with its founding members.
	// Fails with ErrAlreadyMember if any of them already belongs to a pool.
	SavePool(ctx context.Context, pool domain.Pool) error

	// AddPoolMember associates a member with a pool. Fails with ErrAlreadyMember.
	AddPoolMember(ctx context.Context, member domain.PoolMember) error
}

// PoolRepositoryFacade combines all pool-related repository interfaces
type PoolRepositoryFacade interface {
	PoolReader
	PoolWriter
}
