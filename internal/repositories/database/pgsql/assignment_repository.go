package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kiranacart/marketplace_backend/internal/apperrors"
	"github.com/kiranacart/marketplace_backend/internal/core/domain"
	portsrepo "github.com/kiranacart/marketplace_backend/internal/core/ports/repositories"
)

type PgxAssignmentRepository struct {
	BaseRepository
}

// newPgxAssignmentRepository creates a new repository for delivery assignments.
func newPgxAssignmentRepository(pool *pgxpool.Pool) portsrepo.AssignmentRepository {
	return &PgxAssignmentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AssignmentRepository = (*PgxAssignmentRepository)(nil)

const assignmentColumns = `assignment_id, order_id, agent_id, status, delivery_fee, pickup_city, delivery_city, attempts_count, COALESCE(otp_code, ''), otp_verified, assigned_at, accepted_at, started_at, completed_at, created_at, created_by, last_updated_at, last_updated_by`

func scanAssignment(row pgx.Row) (*domain.DeliveryAssignment, error) {
	var a domain.DeliveryAssignment
	err := row.Scan(
		&a.AssignmentID,
		&a.OrderID,
		&a.AgentID,
		&a.Status,
		&a.DeliveryFee,
		&a.PickupCity,
		&a.DeliveryCity,
		&a.AttemptsCount,
		&a.OtpCode,
		&a.OtpVerified,
		&a.AssignedAt,
		&a.AcceptedAt,
		&a.StartedAt,
		&a.CompletedAt,
		&a.CreatedAt,
		&a.CreatedBy,
		&a.LastUpdatedAt,
		&a.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// SaveAssignment inserts a new assignment. The partial unique index on
// active assignments rejects a second live assignment for the same order.
func (r *PgxAssignmentRepository) SaveAssignment(ctx context.Context, assignment domain.DeliveryAssignment) error {
	query := `
		INSERT INTO delivery_assignments (assignment_id, order_id, agent_id, status, delivery_fee, pickup_city, delivery_city, attempts_count, otp_verified, assigned_at, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		assignment.AssignmentID,
		assignment.OrderID,
		assignment.AgentID,
		assignment.Status,
		assignment.DeliveryFee,
		assignment.PickupCity,
		assignment.DeliveryCity,
		assignment.AttemptsCount,
		assignment.OtpVerified,
		assignment.AssignedAt,
		assignment.CreatedAt,
		assignment.CreatedBy,
		assignment.LastUpdatedAt,
		assignment.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: order %s already has an active assignment", apperrors.ErrDuplicate, assignment.OrderID)
		}
		return fmt.Errorf("failed to save assignment %s: %w", assignment.AssignmentID, err)
	}
	return nil
}

// FindAssignmentByID retrieves an assignment by its ID.
func (r *PgxAssignmentRepository) FindAssignmentByID(ctx context.Context, assignmentID string) (*domain.DeliveryAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM delivery_assignments WHERE assignment_id = $1;`
	a, err := scanAssignment(r.Pool.QueryRow(ctx, query, assignmentID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find assignment by ID %s: %w", assignmentID, err)
	}
	return a, nil
}

// ListActiveByAgent retrieves an agent's non-terminal assignments.
func (r *PgxAssignmentRepository) ListActiveByAgent(ctx context.Context, agentID string) ([]domain.DeliveryAssignment, error) {
	query := `
		SELECT ` + assignmentColumns + `
		FROM delivery_assignments
		WHERE agent_id = $1 AND status NOT IN ($2, $3, $4)
		ORDER BY assigned_at;
	`
	rows, err := r.Pool.Query(ctx, query, agentID, domain.AssignmentDelivered, domain.AssignmentRejected, domain.AssignmentCancelled)
	if err != nil {
		return nil, fmt.Errorf("failed to query active assignments for agent %s: %w", agentID, err)
	}
	defer rows.Close()

	assignments := make([]domain.DeliveryAssignment, 0)
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}
	return assignments, nil
}

// transitionStampColumn maps a target status to the timestamp column it
// stamps. started_at marks the pickup, the start of the delivery run; a
// retry that re-enters transit does not re-stamp it.
func transitionStampColumn(to domain.AssignmentStatus) string {
	switch to {
	case domain.AssignmentAccepted:
		return "accepted_at"
	case domain.AssignmentPickedUp:
		return "started_at"
	case domain.AssignmentDelivered:
		return "completed_at"
	}
	return ""
}

// TransitionStatus moves the assignment from exactly `from` to `to`. The
// status guard in the WHERE clause makes a lost race surface as zero rows
// affected instead of a silent overwrite.
func (r *PgxAssignmentRepository) TransitionStatus(ctx context.Context, assignmentID string, from, to domain.AssignmentStatus, stampAt time.Time) error {
	query := `
		UPDATE delivery_assignments
		SET status = $3, last_updated_at = $4
		WHERE assignment_id = $1 AND status = $2;
	`
	if col := transitionStampColumn(to); col != "" {
		query = `
			UPDATE delivery_assignments
			SET status = $3, ` + col + ` = $4, last_updated_at = $4
			WHERE assignment_id = $1 AND status = $2;
		`
	}

	tag, err := r.Pool.Exec(ctx, query, assignmentID, from, to, stampAt)
	if err != nil {
		return fmt.Errorf("failed to transition assignment %s to %s: %w", assignmentID, to, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: assignment %s no longer in status %q", apperrors.ErrInvalidTransition, assignmentID, from)
	}
	return nil
}

// RecordFailedAttempt sets status to failed and increments the attempt
// counter. Guarded against terminal states at DB level.
func (r *PgxAssignmentRepository) RecordFailedAttempt(ctx context.Context, assignmentID string, at time.Time) error {
	query := `
		UPDATE delivery_assignments
		SET status = $2, attempts_count = attempts_count + 1, last_updated_at = $3
		WHERE assignment_id = $1 AND status NOT IN ($4, $5, $6);
	`
	tag, err := r.Pool.Exec(ctx, query, assignmentID, domain.AssignmentFailed, at,
		domain.AssignmentDelivered, domain.AssignmentRejected, domain.AssignmentCancelled)
	if err != nil {
		return fmt.Errorf("failed to record failed attempt for assignment %s: %w", assignmentID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: assignment %s is terminal", apperrors.ErrInvalidTransition, assignmentID)
	}
	return nil
}

// StoreOtp stores a freshly issued delivery OTP, replacing any previous one.
// Only an in-transit assignment can carry a code.
func (r *PgxAssignmentRepository) StoreOtp(ctx context.Context, assignmentID, otpCode string, at time.Time) error {
	query := `
		UPDATE delivery_assignments
		SET otp_code = $2, otp_verified = FALSE, last_updated_at = $3
		WHERE assignment_id = $1 AND status = $4;
	`
	tag, err := r.Pool.Exec(ctx, query, assignmentID, otpCode, at, domain.AssignmentInTransit)
	if err != nil {
		return fmt.Errorf("failed to store otp for assignment %s: %w", assignmentID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: assignment %s is not in transit", apperrors.ErrInvalidTransition, assignmentID)
	}
	return nil
}
