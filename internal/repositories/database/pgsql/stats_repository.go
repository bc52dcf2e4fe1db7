package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kiranacart/marketplace_backend/internal/apperrors"
	"github.com/kiranacart/marketplace_backend/internal/core/domain"
	portsrepo "github.com/kiranacart/marketplace_backend/internal/core/ports/repositories"
)

type PgxStatsRepository struct {
	BaseRepository
}

// newPgxStatsRepository creates a new repository for the agent statistics
// read model.
func newPgxStatsRepository(pool *pgxpool.Pool) portsrepo.StatsRepository {
	return &PgxStatsRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.StatsRepository = (*PgxStatsRepository)(nil)

// FindAgentStats retrieves an agent's lifetime totals.
func (r *PgxStatsRepository) FindAgentStats(ctx context.Context, agentID string) (*domain.AgentStats, error) {
	query := `
		SELECT agent_id, total_deliveries, completed_deliveries, failed_deliveries, total_earnings, last_updated_at
		FROM agent_stats
		WHERE agent_id = $1;
	`
	var s domain.AgentStats
	err := r.Pool.QueryRow(ctx, query, agentID).Scan(
		&s.AgentID,
		&s.TotalDeliveries,
		&s.CompletedDeliveries,
		&s.FailedDeliveries,
		&s.TotalEarnings,
		&s.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find stats for agent %s: %w", agentID, err)
	}
	return &s, nil
}

// FindDailyStats retrieves one agent's aggregate for one calendar day.
func (r *PgxStatsRepository) FindDailyStats(ctx context.Context, agentID string, date time.Time) (*domain.AgentDailyStats, error) {
	query := `
		SELECT stats_id, agent_id, stat_date, deliveries_completed, deliveries_failed, earnings, bonus_earned, last_updated_at
		FROM agent_daily_stats
		WHERE agent_id = $1 AND stat_date = $2;
	`
	var s domain.AgentDailyStats
	err := r.Pool.QueryRow(ctx, query, agentID, date).Scan(
		&s.StatsID,
		&s.AgentID,
		&s.StatDate,
		&s.DeliveriesCompleted,
		&s.DeliveriesFailed,
		&s.Earnings,
		&s.BonusEarned,
		&s.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find daily stats for agent %s: %w", agentID, err)
	}
	return &s, nil
}

// RecordFailedDelivery bumps the failure counters for an agent.
func (r *PgxStatsRepository) RecordFailedDelivery(ctx context.Context, agentID string, at time.Time) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO agent_stats (agent_id, total_deliveries, completed_deliveries, failed_deliveries, total_earnings, last_updated_at)
		VALUES ($1, 0, 0, 1, 0, $2)
		ON CONFLICT (agent_id) DO UPDATE SET
			failed_deliveries = agent_stats.failed_deliveries + 1,
			last_updated_at = EXCLUDED.last_updated_at;
	`, agentID, at)
	if err != nil {
		return fmt.Errorf("failed to record failed delivery for agent %s: %w", agentID, err)
	}

	statDate := at.UTC().Truncate(24 * time.Hour)
	_, err = r.Pool.Exec(ctx, `
		INSERT INTO agent_daily_stats (stats_id, agent_id, stat_date, deliveries_completed, deliveries_failed, earnings, bonus_earned, last_updated_at)
		VALUES (gen_random_uuid(), $1, $2, 0, 1, 0, 0, $3)
		ON CONFLICT (agent_id, stat_date) DO UPDATE SET
			deliveries_failed = agent_daily_stats.deliveries_failed + 1,
			last_updated_at = EXCLUDED.last_updated_at;
	`, agentID, statDate, at)
	if err != nil {
		return fmt.Errorf("failed to record failed delivery in daily stats for agent %s: %w", agentID, err)
	}
	return nil
}

// RebuildDailyStats recomputes every agent's aggregate for the given date
// from commission and assignment history. Running it twice converges on the
// same rows.
func (r *PgxStatsRepository) RebuildDailyStats(ctx context.Context, date time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	dayStart := date.UTC().Truncate(24 * time.Hour)
	dayEnd := dayStart.Add(24 * time.Hour)

	_, err = tx.Exec(ctx, `DELETE FROM agent_daily_stats WHERE stat_date = $1;`, dayStart)
	if err != nil {
		return fmt.Errorf("failed to clear daily stats for %s: %w", dayStart.Format("2006-01-02"), err)
	}

	// Completed deliveries and earnings come from the commissions written by
	// settlement; failures come from assignment history.
	_, err = tx.Exec(ctx, `
		INSERT INTO agent_daily_stats (stats_id, agent_id, stat_date, deliveries_completed, deliveries_failed, earnings, bonus_earned, last_updated_at)
		SELECT gen_random_uuid(),
		       agg.agent_id,
		       $1,
		       COALESCE(SUM(agg.completed), 0),
		       COALESCE(SUM(agg.failed), 0),
		       COALESCE(SUM(agg.earnings), 0),
		       COALESCE(SUM(agg.bonus), 0),
		       NOW()
		FROM (
			SELECT agent_id, 1 AS completed, 0 AS failed, total AS earnings, distance_bonus AS bonus
			FROM commissions
			WHERE created_at >= $2 AND created_at < $3
			UNION ALL
			SELECT agent_id, 0, attempts_count, 0, 0
			FROM delivery_assignments
			WHERE status = $4 AND last_updated_at >= $2 AND last_updated_at < $3
		) agg
		GROUP BY agg.agent_id;
	`, dayStart, dayStart, dayEnd, domain.AssignmentFailed)
	if err != nil {
		return fmt.Errorf("failed to rebuild daily stats for %s: %w", dayStart.Format("2006-01-02"), err)
	}

	return r.Commit(ctx, tx)
}
