package services

import (
	"context"

	"github.com/kiranacart/marketplace_backend/internal/core/domain"
)

// SettlementSvcFacade finalizes a confirmed delivery as one atomic unit:
// terminal assignment status, order close-out, commission row and the
// agent's wallet credit all land together or not at all.
type SettlementSvcFacade interface {
	// SettleDelivery settles the given assignment. Safe to call more than
	// once: replays after the first successful settlement return
	// apperrors.ErrAlreadySettled and change nothing.
	SettleDelivery(ctx context.Context, assignmentID string, actorID string) (*domain.Settlement, error)
}
