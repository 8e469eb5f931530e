package pgsql

import (
	portsrepo "github.com/SscSPs/family_treasury/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	poolRepo := newPgxPoolRepository(dbPool)
	claimRepo := newPgxClaimRepository(dbPool)
	txManager := newPgxTransactionManager(dbPool)

	return portsrepo.RepositoryProvider{
		PoolRepo:  poolRepo,
		ClaimRepo: claimRepo,
		TxManager: txManager,
	}
}
