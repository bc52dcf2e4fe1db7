package services

import (
	"context"

	"github.com/kiranacart/marketplace_backend/internal/core/domain"
)

// OrderReaderSvc defines read operations for order data
type OrderReaderSvc interface {
	// GetOrderByID retrieves an order with its items and derived aggregate status.
	GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error)

	// GetOrderTracking retrieves the append-only tracking history for an order.
	GetOrderTracking(ctx context.Context, orderID string) ([]domain.TrackingEvent, error)
}

// OrderWriterSvc defines write operations for order data
type OrderWriterSvc interface {
	// UpdateItemStatus moves one vendor's item to a new status and re-derives
	// the order's aggregate status from all items.
	UpdateItemStatus(ctx context.Context, orderID string, itemID string, vendorID string, status domain.ItemStatus) (*domain.Order, error)
}

// OrderSvcFacade combines all order-related service interfaces
type OrderSvcFacade interface {
	OrderReaderSvc
	OrderWriterSvc
}
