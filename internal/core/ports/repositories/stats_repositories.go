package repositories

import (
	"context"
	"time"

	"github.com/kiranacart/marketplace_backend/internal/core/domain"
)

// StatsReader defines read operations over the rolling statistics read model.
type StatsReader interface {
	// FindAgentStats retrieves an agent's lifetime totals.
	FindAgentStats(ctx context.Context, agentID string) (*domain.AgentStats, error)

	// FindDailyStats retrieves one agent's aggregate for one calendar day.
	FindDailyStats(ctx context.Context, agentID string, date time.Time) (*domain.AgentDailyStats, error)
}

// StatsWriter defines the projection maintenance operations.
type StatsWriter interface {
	// RecordFailedDelivery bumps the failure counters for an agent.
	RecordFailedDelivery(ctx context.Context, agentID string, at time.Time) error

	// RebuildDailyStats recomputes every agent's daily aggregate for the
	// given date from ledger and assignment history. Idempotent.
	RebuildDailyStats(ctx context.Context, date time.Time) error
}

// StatsRepository combines all statistics repository interfaces.
type StatsRepository interface {
	StatsReader
	StatsWriter
}
