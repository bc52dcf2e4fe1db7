package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kiranacart/marketplace_backend/internal/apperrors"
	"github.com/kiranacart/marketplace_backend/internal/core/domain"
	portsrepo "github.com/kiranacart/marketplace_backend/internal/core/ports/repositories"
	"github.com/kiranacart/marketplace_backend/internal/middleware"
)

type OrderService struct {
	OrderRepository portsrepo.OrderRepository
}

func NewOrderService(repo portsrepo.OrderRepository) *OrderService {
	return &OrderService{OrderRepository: repo}
}

func (s *OrderService) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	order, err := s.OrderRepository.FindOrderByID(ctx, orderID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find order by ID in repository", slog.String("error", err.Error()), slog.String("order_id", orderID))
		}
		return nil, err
	}
	return order, nil
}

func (s *OrderService) GetOrderTracking(ctx context.Context, orderID string) ([]domain.TrackingEvent, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.OrderRepository.FindOrderByID(ctx, orderID); err != nil {
		return nil, err
	}

	events, err := s.OrderRepository.ListTrackingByOrder(ctx, orderID)
	if err != nil {
		logger.Error("Failed to list order tracking from repository", slog.String("error", err.Error()), slog.String("order_id", orderID))
		return nil, fmt.Errorf("failed to list order tracking: %w", err)
	}
	if events == nil {
		return []domain.TrackingEvent{}, nil
	}
	return events, nil
}

// UpdateItemStatus moves one vendor's line item to a new status. The
// repository keys the write on order, item and vendor together and applies
// the re-derived aggregate status in the same transaction; a mismatch on any
// key comes back as ErrNotFound before anything is written, so callers
// cannot probe item ownership or mutate through the wrong order.
func (s *OrderService) UpdateItemStatus(ctx context.Context, orderID string, itemID string, vendorID string, status domain.ItemStatus) (*domain.Order, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown item status %q", apperrors.ErrValidation, status)
	}

	order, err := s.OrderRepository.UpdateItemStatus(ctx, orderID, itemID, vendorID, status)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrInvalidTransition) {
			logger.Error("Failed to update item status in repository", slog.String("error", err.Error()), slog.String("item_id", itemID), slog.String("vendor_id", vendorID))
		}
		return nil, err
	}

	logger.Info("Item status updated",
		slog.String("order_id", order.OrderID),
		slog.String("item_id", itemID),
		slog.String("item_status", string(status)),
		slog.String("order_status", string(order.Status)),
	)
	return order, nil
}
