package repositories

import (
	"context"

	"github.com/kiranacart/marketplace_backend/internal/core/domain"
)

// AgentReader defines the read access the engine needs into agent profiles.
// Agent registration and approval live in the surrounding system.
type AgentReader interface {
	// FindAgentByID retrieves an agent by its unique identifier.
	FindAgentByID(ctx context.Context, agentID string) (*domain.DeliveryAgent, error)
}
