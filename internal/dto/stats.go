package dto

import (
	"time"

	"github.com/kiranacart/marketplace_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AgentStatsResponse defines an agent's lifetime totals.
type AgentStatsResponse struct {
	AgentID             string          `json:"agentID"`
	TotalDeliveries     int             `json:"totalDeliveries"`
	CompletedDeliveries int             `json:"completedDeliveries"`
	FailedDeliveries    int             `json:"failedDeliveries"`
	TotalEarnings       decimal.Decimal `json:"totalEarnings"`
	LastUpdatedAt       time.Time       `json:"lastUpdatedAt"`
}

// ToAgentStatsResponse converts domain.AgentStats to its DTO.
func ToAgentStatsResponse(s *domain.AgentStats) AgentStatsResponse {
	return AgentStatsResponse{
		AgentID:             s.AgentID,
		TotalDeliveries:     s.TotalDeliveries,
		CompletedDeliveries: s.CompletedDeliveries,
		FailedDeliveries:    s.FailedDeliveries,
		TotalEarnings:       s.TotalEarnings,
		LastUpdatedAt:       s.LastUpdatedAt,
	}
}

// AgentDailyStatsResponse defines one agent-day aggregate.
type AgentDailyStatsResponse struct {
	AgentID             string          `json:"agentID"`
	StatDate            string          `json:"statDate"` // YYYY-MM-DD
	DeliveriesCompleted int             `json:"deliveriesCompleted"`
	DeliveriesFailed    int             `json:"deliveriesFailed"`
	Earnings            decimal.Decimal `json:"earnings"`
	BonusEarned         decimal.Decimal `json:"bonusEarned"`
}

// ToAgentDailyStatsResponse converts domain.AgentDailyStats to its DTO.
func ToAgentDailyStatsResponse(s *domain.AgentDailyStats) AgentDailyStatsResponse {
	return AgentDailyStatsResponse{
		AgentID:             s.AgentID,
		StatDate:            s.StatDate.Format("2006-01-02"),
		DeliveriesCompleted: s.DeliveriesCompleted,
		DeliveriesFailed:    s.DeliveriesFailed,
		Earnings:            s.Earnings,
		BonusEarned:         s.BonusEarned,
	}
}
