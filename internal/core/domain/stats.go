package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AgentStats holds an agent's lifetime rolling totals. It is a derived read
// model: the settlement transaction keeps it current, and it can always be
// recomputed from ledger and assignment history.
type AgentStats struct {
	AgentID             string          `json:"agentID"` // Primary key, FK -> delivery_agents
	TotalDeliveries     int             `json:"totalDeliveries"`
	CompletedDeliveries int             `json:"completedDeliveries"`
	FailedDeliveries    int             `json:"failedDeliveries"`
	TotalEarnings       decimal.Decimal `json:"totalEarnings"`
	LastUpdatedAt       time.Time       `json:"lastUpdatedAt"`
}

// AgentDailyStats aggregates one agent's activity for one calendar day.
// Upserted during settlement; rebuildable from the ledger by the nightly
// projection job.
type AgentDailyStats struct {
	StatsID             string          `json:"statsID"` // Primary key (UUID)
	AgentID             string          `json:"agentID"`
	StatDate            time.Time       `json:"statDate"` // Date only, UTC
	DeliveriesCompleted int             `json:"deliveriesCompleted"`
	DeliveriesFailed    int             `json:"deliveriesFailed"`
	Earnings            decimal.Decimal `json:"earnings"`
	BonusEarned         decimal.Decimal `json:"bonusEarned"`
	LastUpdatedAt       time.Time       `json:"lastUpdatedAt"`
}
