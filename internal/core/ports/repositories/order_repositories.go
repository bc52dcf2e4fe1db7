package repositories

import (
	"context"

	"github.com/kiranacart/marketplace_backend/internal/core/domain"
)

// OrderReader defines read operations for orders and their tracking history.
type OrderReader interface {
	// FindOrderByID retrieves an order with its items populated.
	FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error)

	// ListTrackingByOrder retrieves the order's tracking history, newest first.
	ListTrackingByOrder(ctx context.Context, orderID string) ([]domain.TrackingEvent, error)
}

// OrderWriter defines the item-status mutations the engine performs. Every
// mutation re-derives the aggregate order status from the item statuses and
// persists it in the same transaction, so the stored status never drifts
// from what domain.ResolveOrderStatus would compute.
type OrderWriter interface {
	// UpdateItemStatus sets the vendor-scoped status of one item owned by
	// vendorID within orderID and returns the order with its re-derived
	// aggregate status. A mismatch on any of the three keys reads as not
	// found and nothing is written.
	UpdateItemStatus(ctx context.Context, orderID, itemID, vendorID string, status domain.ItemStatus) (*domain.Order, error)

	// MarkItemsOutForDelivery moves every non-terminal item of the order to
	// out_for_delivery. Invoked after a delivery agent accepts the job.
	MarkItemsOutForDelivery(ctx context.Context, orderID string) (*domain.Order, error)
}

// OrderRepository combines all order repository interfaces.
type OrderRepository interface {
	OrderReader
	OrderWriter
}
