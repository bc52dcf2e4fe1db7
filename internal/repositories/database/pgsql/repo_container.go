package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/kiranacart/marketplace_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool, accountRepo)
	orderRepo := newPgxOrderRepository(dbPool)
	agentRepo := newPgxAgentRepository(dbPool)
	assignmentRepo := newPgxAssignmentRepository(dbPool)
	settlementRepo := newPgxSettlementRepository(dbPool, accountRepo, ledgerRepo)
	statsRepo := newPgxStatsRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:    accountRepo,
		LedgerRepo:     ledgerRepo,
		OrderRepo:      orderRepo,
		AgentRepo:      agentRepo,
		AssignmentRepo: assignmentRepo,
		SettlementRepo: settlementRepo,
		StatsRepo:      statsRepo,
	}
}
