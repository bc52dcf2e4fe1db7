package services

import (
	"context"

	"github.com/kiranacart/marketplace_backend/internal/core/domain"
	"github.com/kiranacart/marketplace_backend/internal/dto"
)

// AssignmentReaderSvc defines read operations for delivery assignments
type AssignmentReaderSvc interface {
	// GetAssignmentByID retrieves a specific assignment by its unique identifier.
	GetAssignmentByID(ctx context.Context, assignmentID string) (*domain.DeliveryAssignment, error)

	// ListActiveByAgent retrieves an agent's non-terminal assignments.
	ListActiveByAgent(ctx context.Context, agentID string) ([]domain.DeliveryAssignment, error)
}

// AssignmentWriterSvc defines lifecycle operations for delivery assignments
type AssignmentWriterSvc interface {
	// CreateAssignment hands an order to a delivery agent.
	CreateAssignment(ctx context.Context, req dto.CreateAssignmentRequest, actorID string) (*domain.DeliveryAssignment, error)

	// Accept moves a fresh assignment into the agent's hands and flips the
	// order's items to out_for_delivery.
	Accept(ctx context.Context, assignmentID string, agentID string) (*domain.DeliveryAssignment, error)

	// StartPickup marks the agent as collecting the parcel.
	StartPickup(ctx context.Context, assignmentID string, agentID string) (*domain.DeliveryAssignment, error)

	// MarkInTransit marks the parcel as on the road.
	MarkInTransit(ctx context.Context, assignmentID string, agentID string) (*domain.DeliveryAssignment, error)

	// MarkFailed records a failed delivery attempt.
	MarkFailed(ctx context.Context, assignmentID string, agentID string, reason string) (*domain.DeliveryAssignment, error)

	// MarkDelivered settles the delivery directly, without the OTP
	// handshake. Repeated calls after a successful settlement are no-ops
	// returning the settled assignment.
	MarkDelivered(ctx context.Context, assignmentID string, agentID string) (*domain.DeliveryAssignment, error)
}

// DeliveryConfirmationSvc defines the OTP handshake that closes a delivery
type DeliveryConfirmationSvc interface {
	// RequestDeliveryOtp issues a fresh confirmation code for an in-transit
	// assignment. Re-requesting replaces the previous code.
	RequestDeliveryOtp(ctx context.Context, assignmentID string, agentID string) (*dto.OtpResponse, error)

	// ConfirmDeliveryWithOtp verifies the customer's code and, on match,
	// settles the delivery: terminal status, commission, wallet credit.
	// Confirming an already-settled delivery is a no-op.
	ConfirmDeliveryWithOtp(ctx context.Context, assignmentID string, agentID string, code string) (*domain.DeliveryAssignment, error)
}

// AssignmentSvcFacade combines all assignment-related service interfaces
type AssignmentSvcFacade interface {
	AssignmentReaderSvc
	AssignmentWriterSvc
	DeliveryConfirmationSvc
}
