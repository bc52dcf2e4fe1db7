package domain

import (
	"fmt"
	"time"

	"github.com/kiranacart/marketplace_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// AssignmentStatus is the lifecycle state of a delivery assignment.
//
// State transitions:
//
//	assigned ──> accepted ──> picked_up ──> in_transit ──> delivered
//	    │            │                          ^  │
//	    │            └──────────────────────────┘  │
//	    └──> rejected                   failed <───┘ (retryable)
//
// delivered, rejected and cancelled are terminal. failed is not: it
// increments the attempt counter and the assignment may re-enter transit or
// be escalated to cancelled by an external re-assignment decision.
type AssignmentStatus string

const (
	AssignmentAssigned  AssignmentStatus = "assigned"
	AssignmentAccepted  AssignmentStatus = "accepted"
	AssignmentPickedUp  AssignmentStatus = "picked_up"
	AssignmentInTransit AssignmentStatus = "in_transit"
	AssignmentDelivered AssignmentStatus = "delivered"
	AssignmentRejected  AssignmentStatus = "rejected"
	AssignmentFailed    AssignmentStatus = "failed"
	AssignmentCancelled AssignmentStatus = "cancelled"
)

// IsTerminal reports whether no further transitions are allowed.
// failed is deliberately non-terminal.
func (s AssignmentStatus) IsTerminal() bool {
	switch s {
	case AssignmentDelivered, AssignmentRejected, AssignmentCancelled:
		return true
	}
	return false
}

// Accept validates the assigned -> accepted transition.
func (s AssignmentStatus) Accept() (AssignmentStatus, error) {
	if s != AssignmentAssigned {
		return "", fmt.Errorf("%w: cannot accept from %q", apperrors.ErrInvalidTransition, s)
	}
	return AssignmentAccepted, nil
}

// StartPickup validates the accepted -> picked_up transition.
func (s AssignmentStatus) StartPickup() (AssignmentStatus, error) {
	if s != AssignmentAccepted {
		return "", fmt.Errorf("%w: cannot start pickup from %q", apperrors.ErrInvalidTransition, s)
	}
	return AssignmentPickedUp, nil
}

// MarkInTransit validates moving into transit. Legal from accepted or
// picked_up, and from failed when a delivery attempt is being retried.
func (s AssignmentStatus) MarkInTransit() (AssignmentStatus, error) {
	switch s {
	case AssignmentAccepted, AssignmentPickedUp, AssignmentFailed:
		return AssignmentInTransit, nil
	}
	return "", fmt.Errorf("%w: cannot mark in transit from %q", apperrors.ErrInvalidTransition, s)
}

// MarkDelivered validates completion. Legal from any non-terminal state; the
// delivered case is reported as ErrAlreadySettled so callers can treat a
// repeat call as a no-op instead of a violation.
func (s AssignmentStatus) MarkDelivered() (AssignmentStatus, error) {
	if s == AssignmentDelivered {
		return "", apperrors.ErrAlreadySettled
	}
	if s.IsTerminal() {
		return "", fmt.Errorf("%w: cannot deliver from %q", apperrors.ErrInvalidTransition, s)
	}
	return AssignmentDelivered, nil
}

// MarkFailed validates a failed delivery attempt. Legal from any non-terminal
// state; posts no ledger entry.
func (s AssignmentStatus) MarkFailed() (AssignmentStatus, error) {
	if s.IsTerminal() {
		return "", fmt.Errorf("%w: cannot fail from %q", apperrors.ErrInvalidTransition, s)
	}
	return AssignmentFailed, nil
}

// DeliveryAssignment binds exactly one order to one delivery agent. Records
// are append-only history: a failed delivery bumps AttemptsCount and may be
// retried, never deleted.
type DeliveryAssignment struct {
	AssignmentID  string           `json:"assignmentID"` // Primary key (UUID)
	OrderID       string           `json:"orderID"`      // 1:1 with the order's active assignment
	AgentID       string           `json:"agentID"`      // FK -> delivery_agents
	Status        AssignmentStatus `json:"status"`
	DeliveryFee   decimal.Decimal  `json:"deliveryFee"`
	PickupCity    string           `json:"pickupCity"`
	DeliveryCity  string           `json:"deliveryCity"`
	AttemptsCount int              `json:"attemptsCount"`

	// Proof of delivery
	OtpCode     string `json:"-"` // Cleared once consumed
	OtpVerified bool   `json:"otpVerified"`

	AssignedAt  time.Time  `json:"assignedAt"`
	AcceptedAt  *time.Time `json:"acceptedAt,omitempty"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	AuditFields
}
