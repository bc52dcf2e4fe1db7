package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kiranacart/marketplace_backend/internal/apperrors"
	"github.com/kiranacart/marketplace_backend/internal/core/domain"
	portsrepo "github.com/kiranacart/marketplace_backend/internal/core/ports/repositories"
)

type PgxAgentRepository struct {
	BaseRepository
}

// newPgxAgentRepository creates a new read-side repository for agent profiles.
func newPgxAgentRepository(pool *pgxpool.Pool) portsrepo.AgentReader {
	return &PgxAgentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AgentReader = (*PgxAgentRepository)(nil)

// FindAgentByID retrieves an agent by its ID.
func (r *PgxAgentRepository) FindAgentByID(ctx context.Context, agentID string) (*domain.DeliveryAgent, error) {
	query := `
		SELECT agent_id, name, home_city, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM delivery_agents
		WHERE agent_id = $1;
	`
	var agent domain.DeliveryAgent
	err := r.Pool.QueryRow(ctx, query, agentID).Scan(
		&agent.AgentID,
		&agent.Name,
		&agent.HomeCity,
		&agent.IsActive,
		&agent.CreatedAt,
		&agent.CreatedBy,
		&agent.LastUpdatedAt,
		&agent.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find agent by ID %s: %w", agentID, err)
	}
	return &agent, nil
}
