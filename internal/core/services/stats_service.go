package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/kiranacart/marketplace_backend/internal/apperrors"
	"github.com/kiranacart/marketplace_backend/internal/core/domain"
	portsrepo "github.com/kiranacart/marketplace_backend/internal/core/ports/repositories"
	"github.com/kiranacart/marketplace_backend/internal/middleware"
)

type StatsService struct {
	StatsRepository portsrepo.StatsRepository
	AgentRepository portsrepo.AgentReader
}

func NewStatsService(statsRepo portsrepo.StatsRepository, agentRepo portsrepo.AgentReader) *StatsService {
	return &StatsService{
		StatsRepository: statsRepo,
		AgentRepository: agentRepo,
	}
}

// GetAgentStats retrieves an agent's lifetime totals. An agent with no
// settled deliveries yet reads as all zeros rather than not found.
func (s *StatsService) GetAgentStats(ctx context.Context, agentID string) (*domain.AgentStats, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	agent, err := s.AgentRepository.FindAgentByID(ctx, agentID)
	if err != nil {
		return nil, err
	}

	stats, err := s.StatsRepository.FindAgentStats(ctx, agent.AgentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &domain.AgentStats{AgentID: agent.AgentID}, nil
		}
		logger.Error("Failed to find agent stats in repository", slog.String("error", err.Error()), slog.String("agent_id", agentID))
		return nil, err
	}
	return stats, nil
}

// GetAgentDailyStats retrieves one agent-day aggregate, zeros when no
// activity was recorded for that day.
func (s *StatsService) GetAgentDailyStats(ctx context.Context, agentID string, date time.Time) (*domain.AgentDailyStats, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	agent, err := s.AgentRepository.FindAgentByID(ctx, agentID)
	if err != nil {
		return nil, err
	}

	day := date.UTC().Truncate(24 * time.Hour)
	stats, err := s.StatsRepository.FindDailyStats(ctx, agent.AgentID, day)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &domain.AgentDailyStats{AgentID: agent.AgentID, StatDate: day}, nil
		}
		logger.Error("Failed to find agent daily stats in repository", slog.String("error", err.Error()), slog.String("agent_id", agentID))
		return nil, err
	}
	return stats, nil
}

// RebuildDailyStats recomputes every agent's daily aggregates for the given
// date from settlement history. Running it twice for the same day converges
// on the same rows.
func (s *StatsService) RebuildDailyStats(ctx context.Context, date time.Time) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	day := date.UTC().Truncate(24 * time.Hour)
	if err := s.StatsRepository.RebuildDailyStats(ctx, day); err != nil {
		logger.Error("Failed to rebuild daily stats", slog.String("error", err.Error()), slog.String("date", day.Format("2006-01-02")))
		return err
	}

	logger.Info("Daily stats rebuilt", slog.String("date", day.Format("2006-01-02")))
	return nil
}
