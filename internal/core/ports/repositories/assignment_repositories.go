package repositories

import (
	"context"
	"time"

	"github.com/kiranacart/marketplace_backend/internal/core/domain"
)

// AssignmentReader defines read operations for delivery assignments.
type AssignmentReader interface {
	// FindAssignmentByID retrieves an assignment by its unique identifier.
	FindAssignmentByID(ctx context.Context, assignmentID string) (*domain.DeliveryAssignment, error)

	// ListActiveByAgent retrieves an agent's non-terminal assignments.
	ListActiveByAgent(ctx context.Context, agentID string) ([]domain.DeliveryAssignment, error)
}

// AssignmentWriter defines write operations for delivery assignments outside
// of settlement. Status moves are guarded: the UPDATE only applies when the
// row is still in the expected prior status, so a lost race surfaces as no
// rows affected instead of a silent overwrite.
type AssignmentWriter interface {
	// SaveAssignment inserts a new assignment in assigned status.
	SaveAssignment(ctx context.Context, assignment domain.DeliveryAssignment) error

	// TransitionStatus moves the assignment from exactly `from` to `to`,
	// stamping stampAt into the transition's timestamp column when one
	// exists. Returns ErrInvalidTransition (wrapped) if the row was no
	// longer in `from`.
	TransitionStatus(ctx context.Context, assignmentID string, from, to domain.AssignmentStatus, stampAt time.Time) error

	// RecordFailedAttempt sets status to failed and increments the attempt
	// counter.
	RecordFailedAttempt(ctx context.Context, assignmentID string, at time.Time) error

	// StoreOtp stores a freshly issued delivery OTP on the assignment.
	StoreOtp(ctx context.Context, assignmentID, otpCode string, at time.Time) error
}

// SettlementWriter owns the atomic multi-entity settlement commit.
type SettlementWriter interface {
	// SaveSettlement performs the all-or-nothing settlement transaction:
	// assignment to delivered, order items forced delivered with the
	// aggregate status re-derived, a tracking event, the commission, the
	// ledger credit, and the rolling statistics. It serializes on the
	// assignment row lock and returns ErrAlreadySettled if a concurrent
	// caller won the race.
	SaveSettlement(ctx context.Context, settlement domain.Settlement) error
}

// AssignmentRepository combines all assignment repository interfaces.
type AssignmentRepository interface {
	AssignmentReader
	AssignmentWriter
}
