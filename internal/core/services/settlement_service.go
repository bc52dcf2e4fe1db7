package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/kiranacart/marketplace_backend/internal/apperrors"
	"github.com/kiranacart/marketplace_backend/internal/core/domain"
	portsrepo "github.com/kiranacart/marketplace_backend/internal/core/ports/repositories"
	"github.com/kiranacart/marketplace_backend/internal/dto"
	"github.com/kiranacart/marketplace_backend/internal/middleware"
	"github.com/kiranacart/marketplace_backend/internal/utils/commission"
	"github.com/shopspring/decimal"
)

// SettlementService turns a confirmed delivery into money. It assembles the
// settlement bundle (commission breakdown plus wallet credit) and hands it
// to the repository, which commits everything in one transaction serialized
// on the assignment row.
type SettlementService struct {
	AssignmentRepository portsrepo.AssignmentRepository
	SettlementRepository portsrepo.SettlementWriter
	AgentRepository      portsrepo.AgentReader
	AccountService       *AccountService
	BonusRate            decimal.Decimal
}

func NewSettlementService(
	assignmentRepo portsrepo.AssignmentRepository,
	settlementRepo portsrepo.SettlementWriter,
	agentRepo portsrepo.AgentReader,
	accountSvc *AccountService,
	bonusRate decimal.Decimal,
) *SettlementService {
	return &SettlementService{
		AssignmentRepository: assignmentRepo,
		SettlementRepository: settlementRepo,
		AgentRepository:      agentRepo,
		AccountService:       accountSvc,
		BonusRate:            bonusRate,
	}
}

// settlementReference derives the idempotency key for the ledger credit.
// It is a pure function of the assignment, so every settlement attempt for
// the same delivery produces the same reference and the ledger's unique
// index rejects all but the first.
func settlementReference(assignmentID string) string {
	return "settlement:" + assignmentID
}

// SettleDelivery settles the given assignment: terminal status, order
// close-out, commission and agent wallet credit. Replays after the first
// successful settlement return apperrors.ErrAlreadySettled.
func (s *SettlementService) SettleDelivery(ctx context.Context, assignmentID string, actorID string) (*domain.Settlement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	assignment, err := s.AssignmentRepository.FindAssignmentByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	// Fast-path guard; the repository re-checks under the row lock.
	if _, err := assignment.Status.MarkDelivered(); err != nil {
		return nil, err
	}

	agent, err := s.AgentRepository.FindAgentByID(ctx, assignment.AgentID)
	if err != nil {
		return nil, err
	}

	// Settlement must not fail because nobody opened the agent's wallet yet.
	account, err := s.AccountService.ProvisionAccount(ctx, dto.ProvisionAccountRequest{
		OwnerID:   agent.AgentID,
		OwnerType: domain.OwnerAgent,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	breakdown := commission.Compute(assignment.DeliveryFee, assignment.DeliveryCity, agent.HomeCity, s.BonusRate)

	com := domain.Commission{
		CommissionID:  uuid.NewString(),
		AssignmentID:  assignment.AssignmentID,
		OrderID:       assignment.OrderID,
		AgentID:       assignment.AgentID,
		BaseFee:       breakdown.BaseFee,
		DistanceBonus: breakdown.DistanceBonus,
		Total:         breakdown.Total,
		Status:        domain.CommissionApproved,
		CreatedAt:     now,
		ApprovedAt:    &now,
	}

	refID := settlementReference(assignment.AssignmentID)
	entry := domain.LedgerEntry{
		EntryID:     uuid.NewString(),
		AccountID:   account.AccountID,
		Amount:      breakdown.Total,
		Kind:        domain.EntryCredit,
		Description: "Delivery commission for order " + assignment.OrderID,
		ReferenceID: &refID,
		CreatedAt:   now,
	}

	settlement := domain.Settlement{
		AssignmentID: assignment.AssignmentID,
		OrderID:      assignment.OrderID,
		AgentID:      assignment.AgentID,
		AccountID:    account.AccountID,
		CompletedAt:  now,
		Commission:   com,
		LedgerEntry:  entry,
	}

	if err := s.SettlementRepository.SaveSettlement(ctx, settlement); err != nil {
		if errors.Is(err, apperrors.ErrAlreadySettled) {
			logger.Info("Settlement replay detected, nothing written", slog.String("assignment_id", assignmentID))
			return nil, err
		}
		logger.Error("Settlement transaction failed, nothing written", slog.String("error", err.Error()), slog.String("assignment_id", assignmentID))
		return nil, err
	}

	logger.Info("Delivery settled",
		slog.String("assignment_id", assignment.AssignmentID),
		slog.String("order_id", assignment.OrderID),
		slog.String("agent_id", assignment.AgentID),
		slog.String("commission_total", breakdown.Total.String()),
		slog.String("actor_id", actorID),
	)
	return &settlement, nil
}
