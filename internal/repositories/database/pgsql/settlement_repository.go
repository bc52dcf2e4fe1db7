package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kiranacart/marketplace_backend/internal/apperrors"
	"github.com/kiranacart/marketplace_backend/internal/core/domain"
	portsrepo "github.com/kiranacart/marketplace_backend/internal/core/ports/repositories"
)

// PgxSettlementRepository owns the one transaction where money moves: a
// confirmed delivery becomes a terminal assignment, a closed order, a
// commission and a wallet credit, all together or not at all.
type PgxSettlementRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepository
	ledgerRepo  portsrepo.LedgerRepository
}

func newPgxSettlementRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepository, ledgerRepo portsrepo.LedgerRepository) portsrepo.SettlementWriter {
	return &PgxSettlementRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
		ledgerRepo:     ledgerRepo,
	}
}

var _ portsrepo.SettlementWriter = (*PgxSettlementRepository)(nil)

// SaveSettlement performs the atomic settlement transaction. Concurrent
// settlements of the same assignment serialize on the assignment row lock;
// whoever sees the row already delivered gets ErrAlreadySettled and writes
// nothing.
func (r *PgxSettlementRepository) SaveSettlement(ctx context.Context, settlement domain.Settlement) error {
	return r.withinTx(ctx, func(tx pgx.Tx) error {
		return r.settleInTx(ctx, tx, settlement)
	})
}

func (r *PgxSettlementRepository) settleInTx(ctx context.Context, tx pgx.Tx, settlement domain.Settlement) error {
	now := settlement.CompletedAt

	// 1. Lock the assignment row and re-check its status. The service's
	// fast-path check ran without a lock and may be stale.
	var status domain.AssignmentStatus
	err := tx.QueryRow(ctx,
		`SELECT status FROM delivery_assignments WHERE assignment_id = $1 FOR UPDATE;`,
		settlement.AssignmentID,
	).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to lock assignment %s: %w", settlement.AssignmentID, err)
	}
	if _, err := status.MarkDelivered(); err != nil {
		return err
	}

	// 2. Close the assignment. The consumed OTP is cleared.
	_, err = tx.Exec(ctx, `
		UPDATE delivery_assignments
		SET status = $2, otp_verified = TRUE, otp_code = NULL, completed_at = $3, last_updated_at = $3
		WHERE assignment_id = $1;
	`, settlement.AssignmentID, domain.AssignmentDelivered, now)
	if err != nil {
		return fmt.Errorf("failed to close assignment %s: %w", settlement.AssignmentID, err)
	}

	// 3. Close out the order: every item still in flight is delivered, then
	// the aggregate status is re-derived from the item rows.
	prior, err := lockOrderStatusInTx(ctx, tx, settlement.OrderID)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
		UPDATE order_items
		SET status = $2, last_updated_at = $3
		WHERE order_id = $1 AND status NOT IN ($2, $4);
	`, settlement.OrderID, domain.ItemDelivered, now, domain.ItemCancelled)
	if err != nil {
		return fmt.Errorf("failed to deliver items of order %s: %w", settlement.OrderID, err)
	}
	if _, err := rederiveOrderStatusInTx(ctx, tx, settlement.OrderID, prior, now); err != nil {
		return err
	}

	// 4. Record the commission. The unique assignment index is the second
	// line of defense against double settlement.
	com := settlement.Commission
	_, err = tx.Exec(ctx, `
		INSERT INTO commissions (commission_id, assignment_id, order_id, agent_id, base_fee, distance_bonus, total, status, payment_id, notes, created_at, approved_at, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`, com.CommissionID, com.AssignmentID, com.OrderID, com.AgentID,
		com.BaseFee, com.DistanceBonus, com.Total, com.Status,
		com.PaymentID, com.Notes, com.CreatedAt, com.ApprovedAt, com.PaidAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrAlreadySettled
		}
		return fmt.Errorf("failed to insert commission for assignment %s: %w", com.AssignmentID, err)
	}

	// 5. Credit the agent's wallet under the account row lock.
	locked, err := r.accountRepo.FindAccountByIDForUpdate(ctx, tx, settlement.AccountID)
	if err != nil {
		return err
	}
	if _, err := r.ledgerRepo.AppendEntryInTx(ctx, tx, settlement.LedgerEntry, *locked); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return apperrors.ErrAlreadySettled
		}
		return err
	}

	// 6. Keep the rolling statistics current.
	return upsertSettlementStatsInTx(ctx, tx, settlement)
}

// upsertSettlementStatsInTx bumps the lifetime and per-day aggregates for
// the settling agent.
func upsertSettlementStatsInTx(ctx context.Context, tx pgx.Tx, settlement domain.Settlement) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO agent_stats (agent_id, total_deliveries, completed_deliveries, failed_deliveries, total_earnings, last_updated_at)
		VALUES ($1, 1, 1, 0, $2, $3)
		ON CONFLICT (agent_id) DO UPDATE SET
			total_deliveries = agent_stats.total_deliveries + 1,
			completed_deliveries = agent_stats.completed_deliveries + 1,
			total_earnings = agent_stats.total_earnings + EXCLUDED.total_earnings,
			last_updated_at = EXCLUDED.last_updated_at;
	`, settlement.AgentID, settlement.Commission.Total, settlement.CompletedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert lifetime stats for agent %s: %w", settlement.AgentID, err)
	}

	statDate := settlement.CompletedAt.UTC().Truncate(24 * time.Hour)
	_, err = tx.Exec(ctx, `
		INSERT INTO agent_daily_stats (stats_id, agent_id, stat_date, deliveries_completed, deliveries_failed, earnings, bonus_earned, last_updated_at)
		VALUES ($1, $2, $3, 1, 0, $4, $5, $6)
		ON CONFLICT (agent_id, stat_date) DO UPDATE SET
			deliveries_completed = agent_daily_stats.deliveries_completed + 1,
			earnings = agent_daily_stats.earnings + EXCLUDED.earnings,
			bonus_earned = agent_daily_stats.bonus_earned + EXCLUDED.bonus_earned,
			last_updated_at = EXCLUDED.last_updated_at;
	`, uuid.NewString(), settlement.AgentID, statDate,
		settlement.Commission.Total, settlement.Commission.DistanceBonus, settlement.CompletedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert daily stats for agent %s: %w", settlement.AgentID, err)
	}
	return nil
}
