package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/kiranacart/marketplace_backend/internal/apperrors"
	"github.com/kiranacart/marketplace_backend/internal/core/domain"
	portsrepo "github.com/kiranacart/marketplace_backend/internal/core/ports/repositories"
	portssvc "github.com/kiranacart/marketplace_backend/internal/core/ports/services"
	"github.com/kiranacart/marketplace_backend/internal/dto"
	"github.com/kiranacart/marketplace_backend/internal/middleware"
)

type AssignmentService struct {
	AssignmentRepository portsrepo.AssignmentRepository
	OrderRepository      portsrepo.OrderRepository
	AgentRepository      portsrepo.AgentReader
	StatsRepository      portsrepo.StatsWriter
	SettlementService    portssvc.SettlementSvcFacade
}

func NewAssignmentService(
	assignmentRepo portsrepo.AssignmentRepository,
	orderRepo portsrepo.OrderRepository,
	agentRepo portsrepo.AgentReader,
	statsRepo portsrepo.StatsWriter,
	settlementSvc portssvc.SettlementSvcFacade,
) *AssignmentService {
	return &AssignmentService{
		AssignmentRepository: assignmentRepo,
		OrderRepository:      orderRepo,
		AgentRepository:      agentRepo,
		StatsRepository:      statsRepo,
		SettlementService:    settlementSvc,
	}
}

func (s *AssignmentService) GetAssignmentByID(ctx context.Context, assignmentID string) (*domain.DeliveryAssignment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	assignment, err := s.AssignmentRepository.FindAssignmentByID(ctx, assignmentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find assignment by ID in repository", slog.String("error", err.Error()), slog.String("assignment_id", assignmentID))
		}
		return nil, err
	}
	return assignment, nil
}

func (s *AssignmentService) ListActiveByAgent(ctx context.Context, agentID string) ([]domain.DeliveryAssignment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	assignments, err := s.AssignmentRepository.ListActiveByAgent(ctx, agentID)
	if err != nil {
		logger.Error("Failed to list active assignments from repository", slog.String("error", err.Error()), slog.String("agent_id", agentID))
		return nil, fmt.Errorf("failed to list active assignments: %w", err)
	}
	if assignments == nil {
		return []domain.DeliveryAssignment{}, nil
	}
	return assignments, nil
}

// CreateAssignment hands an order to a delivery agent.
func (s *AssignmentService) CreateAssignment(ctx context.Context, req dto.CreateAssignmentRequest, actorID string) (*domain.DeliveryAssignment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.DeliveryFee.IsNegative() {
		return nil, fmt.Errorf("%w: delivery fee cannot be negative", apperrors.ErrValidation)
	}

	agent, err := s.AgentRepository.FindAgentByID(ctx, req.AgentID)
	if err != nil {
		return nil, err
	}
	if !agent.IsActive {
		return nil, fmt.Errorf("%w: agent %s is not active", apperrors.ErrValidation, agent.AgentID)
	}

	if _, err := s.OrderRepository.FindOrderByID(ctx, req.OrderID); err != nil {
		return nil, err
	}

	now := time.Now()
	assignment := domain.DeliveryAssignment{
		AssignmentID: uuid.NewString(),
		OrderID:      req.OrderID,
		AgentID:      req.AgentID,
		Status:       domain.AssignmentAssigned,
		DeliveryFee:  req.DeliveryFee,
		PickupCity:   req.PickupCity,
		DeliveryCity: req.DeliveryCity,
		AssignedAt:   now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.AssignmentRepository.SaveAssignment(ctx, assignment); err != nil {
		logger.Error("Failed to save assignment in repository", slog.String("error", err.Error()), slog.String("order_id", req.OrderID), slog.String("agent_id", req.AgentID))
		return nil, err
	}

	logger.Info("Assignment created", slog.String("assignment_id", assignment.AssignmentID), slog.String("order_id", req.OrderID), slog.String("agent_id", req.AgentID))
	return &assignment, nil
}

// mustOwn loads the assignment and verifies it belongs to the agent. A
// foreign assignment reads as not found so agents cannot probe each other's
// work.
func (s *AssignmentService) mustOwn(ctx context.Context, assignmentID, agentID string) (*domain.DeliveryAssignment, error) {
	assignment, err := s.AssignmentRepository.FindAssignmentByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment.AgentID != agentID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("assignment %s not found for agent %s", assignmentID, agentID))
	}
	return assignment, nil
}

// Accept moves a fresh assignment into the agent's hands and flips the
// order's items to out_for_delivery. Items only show as being delivered once
// an agent has committed to the job.
func (s *AssignmentService) Accept(ctx context.Context, assignmentID string, agentID string) (*domain.DeliveryAssignment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	assignment, err := s.mustOwn(ctx, assignmentID, agentID)
	if err != nil {
		return nil, err
	}

	next, err := assignment.Status.Accept()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.AssignmentRepository.TransitionStatus(ctx, assignmentID, assignment.Status, next, now); err != nil {
		return nil, err
	}

	order, err := s.OrderRepository.MarkItemsOutForDelivery(ctx, assignment.OrderID)
	if err != nil {
		logger.Error("Failed to mark order items out for delivery", slog.String("error", err.Error()), slog.String("order_id", assignment.OrderID))
		return nil, err
	}

	logger.Info("Assignment accepted",
		slog.String("assignment_id", assignmentID),
		slog.String("agent_id", agentID),
		slog.String("order_status", string(order.Status)),
	)
	return s.AssignmentRepository.FindAssignmentByID(ctx, assignmentID)
}

// StartPickup marks the agent as collecting the parcel.
func (s *AssignmentService) StartPickup(ctx context.Context, assignmentID string, agentID string) (*domain.DeliveryAssignment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	assignment, err := s.mustOwn(ctx, assignmentID, agentID)
	if err != nil {
		return nil, err
	}

	next, err := assignment.Status.StartPickup()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.AssignmentRepository.TransitionStatus(ctx, assignmentID, assignment.Status, next, now); err != nil {
		return nil, err
	}

	logger.Info("Pickup started", slog.String("assignment_id", assignmentID), slog.String("agent_id", agentID))
	return s.AssignmentRepository.FindAssignmentByID(ctx, assignmentID)
}

// MarkInTransit marks the parcel as on the road.
func (s *AssignmentService) MarkInTransit(ctx context.Context, assignmentID string, agentID string) (*domain.DeliveryAssignment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	assignment, err := s.mustOwn(ctx, assignmentID, agentID)
	if err != nil {
		return nil, err
	}

	next, err := assignment.Status.MarkInTransit()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.AssignmentRepository.TransitionStatus(ctx, assignmentID, assignment.Status, next, now); err != nil {
		return nil, err
	}

	logger.Info("Assignment in transit", slog.String("assignment_id", assignmentID), slog.String("agent_id", agentID))
	return s.AssignmentRepository.FindAssignmentByID(ctx, assignmentID)
}

// MarkFailed records a failed delivery attempt. The assignment stays
// retryable and no money moves.
func (s *AssignmentService) MarkFailed(ctx context.Context, assignmentID string, agentID string, reason string) (*domain.DeliveryAssignment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	assignment, err := s.mustOwn(ctx, assignmentID, agentID)
	if err != nil {
		return nil, err
	}

	if _, err := assignment.Status.MarkFailed(); err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.AssignmentRepository.RecordFailedAttempt(ctx, assignmentID, now); err != nil {
		return nil, err
	}

	if err := s.StatsRepository.RecordFailedDelivery(ctx, agentID, now); err != nil {
		// Stats are a rebuildable projection; a failed bump must not fail
		// the attempt record.
		logger.Warn("Failed to record failure in agent stats", slog.String("error", err.Error()), slog.String("agent_id", agentID))
	}

	logger.Info("Delivery attempt failed",
		slog.String("assignment_id", assignmentID),
		slog.String("agent_id", agentID),
		slog.String("reason", reason),
	)
	return s.AssignmentRepository.FindAssignmentByID(ctx, assignmentID)
}

// otpLength is the number of digits in a delivery confirmation code.
const otpLength = 6

func generateOtpCode() (string, error) {
	const digits = "0123456789"
	code := make([]byte, otpLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", fmt.Errorf("failed to generate otp: %w", err)
		}
		code[i] = digits[n.Int64()]
	}
	return string(code), nil
}

// RequestDeliveryOtp issues a fresh confirmation code for an in-transit
// assignment. Re-requesting replaces the previous code.
func (s *AssignmentService) RequestDeliveryOtp(ctx context.Context, assignmentID string, agentID string) (*dto.OtpResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	assignment, err := s.mustOwn(ctx, assignmentID, agentID)
	if err != nil {
		return nil, err
	}

	if assignment.Status != domain.AssignmentInTransit {
		return nil, fmt.Errorf("%w: otp can only be requested in transit, current status %q", apperrors.ErrInvalidTransition, assignment.Status)
	}

	code, err := generateOtpCode()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.AssignmentRepository.StoreOtp(ctx, assignmentID, code, now); err != nil {
		logger.Error("Failed to store delivery otp", slog.String("error", err.Error()), slog.String("assignment_id", assignmentID))
		return nil, err
	}

	// The code is returned to the caller for out-of-band delivery to the
	// customer. It is never logged.
	logger.Info("Delivery otp issued", slog.String("assignment_id", assignmentID), slog.String("agent_id", agentID))
	return &dto.OtpResponse{AssignmentID: assignmentID, Code: code, IssuedAt: now}, nil
}

// MarkDelivered settles the delivery directly, without the OTP handshake.
// Repeating the call after a successful settlement is a no-op that returns
// the settled assignment, so a caller that lost the first response can
// safely retry.
func (s *AssignmentService) MarkDelivered(ctx context.Context, assignmentID string, agentID string) (*domain.DeliveryAssignment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.mustOwn(ctx, assignmentID, agentID); err != nil {
		return nil, err
	}

	if _, err := s.SettlementService.SettleDelivery(ctx, assignmentID, agentID); err != nil {
		if errors.Is(err, apperrors.ErrAlreadySettled) {
			return s.AssignmentRepository.FindAssignmentByID(ctx, assignmentID)
		}
		return nil, err
	}

	logger.Info("Delivery marked delivered", slog.String("assignment_id", assignmentID), slog.String("agent_id", agentID))
	return s.AssignmentRepository.FindAssignmentByID(ctx, assignmentID)
}

// ConfirmDeliveryWithOtp verifies the customer's code and, on match, settles
// the delivery. A mismatch changes nothing. Confirming an already-settled
// delivery is a no-op that returns the settled assignment.
func (s *AssignmentService) ConfirmDeliveryWithOtp(ctx context.Context, assignmentID string, agentID string, code string) (*domain.DeliveryAssignment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	assignment, err := s.mustOwn(ctx, assignmentID, agentID)
	if err != nil {
		return nil, err
	}

	if assignment.Status == domain.AssignmentDelivered {
		return assignment, nil
	}
	if assignment.OtpCode == "" {
		return nil, apperrors.ErrNoOtpIssued
	}
	if subtle.ConstantTimeCompare([]byte(assignment.OtpCode), []byte(code)) != 1 {
		logger.Warn("Delivery otp mismatch", slog.String("assignment_id", assignmentID), slog.String("agent_id", agentID))
		return nil, apperrors.ErrOtpMismatch
	}

	if _, err := s.SettlementService.SettleDelivery(ctx, assignmentID, agentID); err != nil {
		if errors.Is(err, apperrors.ErrAlreadySettled) {
			return s.AssignmentRepository.FindAssignmentByID(ctx, assignmentID)
		}
		return nil, err
	}

	logger.Info("Delivery confirmed with otp", slog.String("assignment_id", assignmentID), slog.String("agent_id", agentID))
	return s.AssignmentRepository.FindAssignmentByID(ctx, assignmentID)
}
