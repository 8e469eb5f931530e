package services

import (
	portsrepo "github.com/SscSPs/family_treasury/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/family_treasury/internal/core/ports/services"
	"github.com/SscSPs/family_treasury/internal/platform/config"
	"github.com/SscSPs/family_treasury/internal/platform/metrics"
	"github.com/SscSPs/family_treasury/internal/utils"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// m and analytics may be nil.
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	recorder portssvc.SettlementRecorder,
	m *metrics.Metrics,
	analytics *utils.PosthogClientWrapper,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The pool registry answers membership questions for everything else
	container.Pool = NewPoolRegistry(
		repos.PoolRepo,
		repos.TxManager,
		WithPoolDefaults(PoolDefaults{
			ApprovalThreshold:  cfg.ApprovalThreshold,
			RejectionThreshold: cfg.RejectionThreshold,
			CurrencyCode:       cfg.DefaultCurrency,
		}),
		WithPoolTelemetry(m, analytics),
	)

	container.Claim = NewClaimStore(
		repos.ClaimRepo,
		container.Pool,
		WithStrictVoting(cfg.StrictVoting),
	)

	container.Governor = NewTreasuryGovernor(
		repos,
		container.Pool,
		container.Claim,
		recorder,
		WithGovernorStrictVoting(cfg.StrictVoting),
		WithSettlementTimeout(cfg.SettlementTimeout),
		WithGovernorTelemetry(m, analytics),
	)

	return container
}
