package services

import (
	portsrepo "github.com/kiranacart/marketplace_backend/internal/core/ports/repositories"
	portssvc "github.com/kiranacart/marketplace_backend/internal/core/ports/services"
	"github.com/kiranacart/marketplace_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	accountSvc := NewAccountService(repos.AccountRepo)
	container.Account = accountSvc

	container.Ledger = NewLedgerService(repos.LedgerRepo, repos.AccountRepo)
	container.Order = NewOrderService(repos.OrderRepo)

	// Settlement sits under assignment: the OTP confirmation path is the
	// only caller that settles money.
	container.Settlement = NewSettlementService(
		repos.AssignmentRepo,
		repos.SettlementRepo,
		repos.AgentRepo,
		accountSvc,
		cfg.OutOfCityBonusRate,
	)

	container.Assignment = NewAssignmentService(
		repos.AssignmentRepo,
		repos.OrderRepo,
		repos.AgentRepo,
		repos.StatsRepo,
		container.Settlement,
	)

	container.Stats = NewStatsService(repos.StatsRepo, repos.AgentRepo)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade    = (*AccountService)(nil)
	_ portssvc.LedgerSvcFacade     = (*LedgerService)(nil)
	_ portssvc.OrderSvcFacade      = (*OrderService)(nil)
	_ portssvc.AssignmentSvcFacade = (*AssignmentService)(nil)
	_ portssvc.SettlementSvcFacade = (*SettlementService)(nil)
	_ portssvc.StatsSvcFacade      = (*StatsService)(nil)
)
