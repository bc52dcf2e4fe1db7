package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kiranacart/marketplace_backend/internal/apperrors"
	"github.com/kiranacart/marketplace_backend/internal/core/domain"
	portsrepo "github.com/kiranacart/marketplace_backend/internal/core/ports/repositories"
)

type PgxOrderRepository struct {
	BaseRepository
}

// newPgxOrderRepository creates a new repository for orders, items and
// tracking history.
func newPgxOrderRepository(pool *pgxpool.Pool) portsrepo.OrderRepository {
	return &PgxOrderRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.OrderRepository = (*PgxOrderRepository)(nil)

const orderColumns = `order_id, order_number, customer_id, status, payment_status, subtotal, delivery_fee, total_amount, delivery_city, delivered_at, created_at, created_by, last_updated_at, last_updated_by`

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.OrderID,
		&o.OrderNumber,
		&o.CustomerID,
		&o.Status,
		&o.PaymentStatus,
		&o.Subtotal,
		&o.DeliveryFee,
		&o.TotalAmount,
		&o.DeliveryCity,
		&o.DeliveredAt,
		&o.CreatedAt,
		&o.CreatedBy,
		&o.LastUpdatedAt,
		&o.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindOrderByID retrieves an order with its items populated.
func (r *PgxOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_id = $1;`
	order, err := scanOrder(r.Pool.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find order by ID %s: %w", orderID, err)
	}

	itemsQuery := `
		SELECT item_id, order_id, product_id, vendor_id, product_name, unit_price, quantity, subtotal, status, created_at, created_by, last_updated_at, last_updated_by
		FROM order_items
		WHERE order_id = $1
		ORDER BY created_at, item_id;
	`
	rows, err := r.Pool.Query(ctx, itemsQuery, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for order %s: %w", orderID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var it domain.OrderItem
		err := rows.Scan(
			&it.ItemID,
			&it.OrderID,
			&it.ProductID,
			&it.VendorID,
			&it.ProductName,
			&it.UnitPrice,
			&it.Quantity,
			&it.Subtotal,
			&it.Status,
			&it.CreatedAt,
			&it.CreatedBy,
			&it.LastUpdatedAt,
			&it.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		order.Items = append(order.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}
	return order, nil
}

// ListTrackingByOrder retrieves the order's tracking history, oldest first.
func (r *PgxOrderRepository) ListTrackingByOrder(ctx context.Context, orderID string) ([]domain.TrackingEvent, error) {
	query := `
		SELECT event_id, order_id, status, location, notes, created_at
		FROM order_tracking
		WHERE order_id = $1
		ORDER BY created_at, event_id;
	`
	rows, err := r.Pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracking for order %s: %w", orderID, err)
	}
	defer rows.Close()

	events := make([]domain.TrackingEvent, 0)
	for rows.Next() {
		var ev domain.TrackingEvent
		if err := rows.Scan(&ev.EventID, &ev.OrderID, &ev.Status, &ev.Location, &ev.Notes, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tracking event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tracking events: %w", err)
	}
	return events, nil
}

// rederiveOrderStatusInTx recomputes the aggregate status from the item rows
// and persists it, stamping delivered_at and appending a tracking event when
// the aggregate actually moved. The caller must hold the order row lock.
func rederiveOrderStatusInTx(ctx context.Context, tx pgx.Tx, orderID string, prior domain.OrderStatus, now time.Time) (domain.OrderStatus, error) {
	rows, err := tx.Query(ctx, `SELECT status FROM order_items WHERE order_id = $1;`, orderID)
	if err != nil {
		return "", fmt.Errorf("failed to query item statuses for order %s: %w", orderID, err)
	}
	defer rows.Close()

	var statuses []domain.ItemStatus
	for rows.Next() {
		var s domain.ItemStatus
		if err := rows.Scan(&s); err != nil {
			return "", fmt.Errorf("failed to scan item status: %w", err)
		}
		statuses = append(statuses, s)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("error iterating item statuses: %w", err)
	}
	rows.Close()

	next := domain.ResolveOrderStatus(statuses)
	if next == prior {
		return next, nil
	}

	updateQuery := `
		UPDATE orders
		SET status = $2,
		    delivered_at = CASE WHEN $3 THEN $4 ELSE delivered_at END,
		    last_updated_at = $4
		WHERE order_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, orderID, next, next == domain.OrderDelivered, now); err != nil {
		return "", fmt.Errorf("failed to update status for order %s: %w", orderID, err)
	}

	trackQuery := `
		INSERT INTO order_tracking (event_id, order_id, status, location, notes, created_at)
		VALUES ($1, $2, $3, '', '', $4);
	`
	if _, err := tx.Exec(ctx, trackQuery, uuid.NewString(), orderID, string(next), now); err != nil {
		return "", fmt.Errorf("failed to insert tracking event for order %s: %w", orderID, err)
	}
	return next, nil
}

// lockOrderStatusInTx locks the order row and returns its current aggregate
// status.
func lockOrderStatusInTx(ctx context.Context, tx pgx.Tx, orderID string) (domain.OrderStatus, error) {
	var status domain.OrderStatus
	err := tx.QueryRow(ctx, `SELECT status FROM orders WHERE order_id = $1 FOR UPDATE;`, orderID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("failed to lock order %s: %w", orderID, err)
	}
	return status, nil
}

// UpdateItemStatus sets the vendor-scoped status of one item and re-derives
// the aggregate order status in the same transaction. The order, item and
// vendor keys are all part of the WHERE clause, so a mismatch on any of them
// reads as not found before anything is written.
func (r *PgxOrderRepository) UpdateItemStatus(ctx context.Context, orderID, itemID, vendorID string, status domain.ItemStatus) (*domain.Order, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	now := time.Now()

	// Lock the order before touching its items so concurrent item updates
	// serialize and the aggregate status is derived from a stable view.
	prior, err := lockOrderStatusInTx(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}

	updateQuery := `
		UPDATE order_items
		SET status = $4, last_updated_at = $5, last_updated_by = $3
		WHERE order_id = $1 AND item_id = $2 AND vendor_id = $3;
	`
	tag, err := tx.Exec(ctx, updateQuery, orderID, itemID, vendorID, status, now)
	if err != nil {
		return nil, fmt.Errorf("failed to update status of item %s: %w", itemID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("item %s not found in order %s for vendor %s", itemID, orderID, vendorID))
	}

	if _, err := rederiveOrderStatusInTx(ctx, tx, orderID, prior, now); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return r.FindOrderByID(ctx, orderID)
}

// MarkItemsOutForDelivery moves every non-terminal item of the order to
// out_for_delivery and re-derives the aggregate status.
func (r *PgxOrderRepository) MarkItemsOutForDelivery(ctx context.Context, orderID string) (*domain.Order, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	now := time.Now()

	prior, err := lockOrderStatusInTx(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}

	updateQuery := `
		UPDATE order_items
		SET status = $2, last_updated_at = $3
		WHERE order_id = $1 AND status NOT IN ($4, $5);
	`
	_, err = tx.Exec(ctx, updateQuery, orderID, domain.ItemOutForDelivery, now, domain.ItemDelivered, domain.ItemCancelled)
	if err != nil {
		return nil, fmt.Errorf("failed to mark items out for delivery for order %s: %w", orderID, err)
	}

	if _, err := rederiveOrderStatusInTx(ctx, tx, orderID, prior, now); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return r.FindOrderByID(ctx, orderID)
}
