package services

import (
	"context"
	"time"

	"github.com/SscSPs/family_treasury/internal/core/domain"
	portsrepo "github.com/SscSPs/family_treasury/internal/core/ports/repositories"
	"github.com/SscSPs/family_treasury/internal/dto"
)

// PoolReaderSvc defines read operations for pool data
type PoolReaderSvc interface {
	// GetPool retrieves a pool by ID.
	GetPool(ctx context.Context, poolID string) (*domain.Pool, error)

	// GetPoolForMember retrieves the member's pool. Returns nil and no error when the member has none.
	GetPoolForMember(ctx context.Context, memberID string) (*domain.Pool, error)

	// ListLedger returns the pool's balance movements, newest first. Members only.
	ListLedger(ctx context.Context, poolID string, memberID string, limit int) ([]domain.LedgerEntry, error)
}

// PoolWriterSvc defines write operations for pool data
type PoolWriterSvc interface {
	// CreatePool creates a pool with the founder as its only member.
	CreatePool(ctx context.Context, req dto.CreatePoolRequest, founderID string) (*domain.Pool, error)

	// JoinPool adds a member to an existing pool.
	JoinPool(ctx context.Context, poolID string, memberID string) (*domain.Pool, error)

	// Fund credits the pool balance.
	Fund(ctx context.Context, poolID string, req dto.FundPoolRequest, memberID string) (*domain.Pool, error)
}

// PoolAuthorizerSvc checks pool membership
type PoolAuthorizerSvc interface {
	// AuthorizeMember fails with ErrNotAMember unless memberID belongs to poolID.
	AuthorizeMember(ctx context.Context, memberID string, poolID string) error
}

// PoolSettlementSvc is the debit side of the registry. Only the governor calls it, inside its own tx.
type PoolSettlementSvc interface {
	// DebitForClaim locks the claim's pool, debits the claim amount and appends a PAYOUT entry.
	DebitForClaim(ctx context.Context, tx portsrepo.TreasuryTx, claim domain.Claim, memberID string, now time.Time) (*domain.Pool, error)
}

// PoolSvcFacade combines all pool-related service interfaces
type PoolSvcFacade interface {
	PoolReaderSvc
	PoolWriterSvc
	PoolAuthorizerSvc
	PoolSettlementSvc
}
