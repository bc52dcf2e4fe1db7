package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kiranacart/marketplace_backend/internal/apperrors"
	portssvc "github.com/kiranacart/marketplace_backend/internal/core/ports/services"
	"github.com/kiranacart/marketplace_backend/internal/dto"
	"github.com/kiranacart/marketplace_backend/internal/middleware"
)

// orderHandler handles HTTP requests related to orders.
type orderHandler struct {
	orderService portssvc.OrderSvcFacade
}

func newOrderHandler(os portssvc.OrderSvcFacade) *orderHandler {
	return &orderHandler{orderService: os}
}

// registerOrderRoutes registers routes related to orders.
func registerOrderRoutes(rg *gin.RouterGroup, os portssvc.OrderSvcFacade) {
	h := newOrderHandler(os)

	orders := rg.Group("/orders")
	{
		orders.GET("/:id", h.getOrder)
		orders.GET("/:id/tracking", h.getOrderTracking)
		orders.PATCH("/:id/items/:itemID/status", h.updateItemStatus)
	}
}

// getOrder godoc
// @Summary Get an order by ID
// @Description Retrieves an order with its items and derived aggregate status.
// @Tags orders
// @Produce  json
// @Param   id path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} map[string]string "Order not found"
// @Router /orders/{id} [get]
func (h *orderHandler) getOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("id")

	order, err := h.orderService.GetOrderByID(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		} else {
			logger.Error("Failed to get order from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve order"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// getOrderTracking godoc
// @Summary Get an order's tracking history
// @Tags orders
// @Produce  json
// @Param   id path string true "Order ID"
// @Success 200 {object} dto.OrderTrackingResponse
// @Failure 404 {object} map[string]string "Order not found"
// @Router /orders/{id}/tracking [get]
func (h *orderHandler) getOrderTracking(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("id")

	events, err := h.orderService.GetOrderTracking(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		} else {
			logger.Error("Failed to get order tracking from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve order tracking"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderTrackingResponse(orderID, events))
}

// updateItemStatus godoc
// @Summary Update a vendor's item status
// @Description Moves one line item to a new status and re-derives the order's aggregate status. The calling vendor is taken from the X-Vendor-ID header and can only touch its own items.
// @Tags orders
// @Accept  json
// @Produce  json
// @Param   id path string true "Order ID"
// @Param   itemID path string true "Item ID"
// @Param   X-Vendor-ID header string true "Vendor ID"
// @Param   status body dto.UpdateItemStatusRequest true "New item status"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Item not found for this vendor"
// @Router /orders/{id}/items/{itemID}/status [patch]
func (h *orderHandler) updateItemStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("id")
	itemID := c.Param("itemID")

	vendorID := c.GetHeader("X-Vendor-ID")
	if vendorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Vendor-ID header is required"})
		return
	}

	var req dto.UpdateItemStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateItemStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	order, err := h.orderService.UpdateItemStatus(c.Request.Context(), orderID, itemID, vendorID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		default:
			logger.Error("Failed to update item status in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item status"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}
