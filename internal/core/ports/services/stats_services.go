package services

import (
	"context"
	"time"

	"github.com/kiranacart/marketplace_backend/internal/core/domain"
)

// StatsReaderSvc defines read operations over agent statistics
type StatsReaderSvc interface {
	// GetAgentStats retrieves an agent's lifetime delivery and earnings totals.
	GetAgentStats(ctx context.Context, agentID string) (*domain.AgentStats, error)

	// GetAgentDailyStats retrieves an agent's aggregate for one calendar day.
	GetAgentDailyStats(ctx context.Context, agentID string, date time.Time) (*domain.AgentDailyStats, error)
}

// StatsWriterSvc defines maintenance operations over agent statistics
type StatsWriterSvc interface {
	// RebuildDailyStats recomputes every agent's daily aggregates for the
	// given date from settlement history. Idempotent.
	RebuildDailyStats(ctx context.Context, date time.Time) error
}

// StatsSvcFacade combines all statistics service interfaces
type StatsSvcFacade interface {
	StatsReaderSvc
	StatsWriterSvc
}
