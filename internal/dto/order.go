package dto

import (
	"time"

	"github.com/kiranacart/marketplace_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpdateItemStatusRequest defines a vendor's item status change.
type UpdateItemStatusRequest struct {
	Status domain.ItemStatus `json:"status" binding:"required,oneof=waiting confirmed shipped out_for_delivery delivered cancelled"`
}

// OrderItemResponse defines the data returned for one order line item.
type OrderItemResponse struct {
	ItemID      string            `json:"itemID"`
	ProductID   string            `json:"productID"`
	VendorID    string            `json:"vendorID"`
	ProductName string            `json:"productName"`
	UnitPrice   decimal.Decimal   `json:"unitPrice"`
	Quantity    int               `json:"quantity"`
	Subtotal    decimal.Decimal   `json:"subtotal"`
	Status      domain.ItemStatus `json:"status"`
}

// OrderResponse defines the data returned for an order with its items and
// derived aggregate status.
type OrderResponse struct {
	OrderID       string               `json:"orderID"`
	OrderNumber   string               `json:"orderNumber"`
	CustomerID    string               `json:"customerID"`
	Status        domain.OrderStatus   `json:"status"`
	PaymentStatus domain.PaymentStatus `json:"paymentStatus"`
	Subtotal      decimal.Decimal      `json:"subtotal"`
	DeliveryFee   decimal.Decimal      `json:"deliveryFee"`
	TotalAmount   decimal.Decimal      `json:"totalAmount"`
	DeliveryCity  string               `json:"deliveryCity"`
	DeliveredAt   *time.Time           `json:"deliveredAt,omitempty"`
	Items         []OrderItemResponse  `json:"items"`
	CreatedAt     time.Time            `json:"createdAt"`
	LastUpdatedAt time.Time            `json:"lastUpdatedAt"`
}

// ToOrderItemResponse converts a domain.OrderItem to its DTO.
func ToOrderItemResponse(it *domain.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ItemID:      it.ItemID,
		ProductID:   it.ProductID,
		VendorID:    it.VendorID,
		ProductName: it.ProductName,
		UnitPrice:   it.UnitPrice,
		Quantity:    it.Quantity,
		Subtotal:    it.Subtotal,
		Status:      it.Status,
	}
}

// ToOrderResponse converts a domain.Order to OrderResponse DTO.
func ToOrderResponse(o *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = ToOrderItemResponse(&it)
	}
	return OrderResponse{
		OrderID:       o.OrderID,
		OrderNumber:   o.OrderNumber,
		CustomerID:    o.CustomerID,
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
		Subtotal:      o.Subtotal,
		DeliveryFee:   o.DeliveryFee,
		TotalAmount:   o.TotalAmount,
		DeliveryCity:  o.DeliveryCity,
		DeliveredAt:   o.DeliveredAt,
		Items:         items,
		CreatedAt:     o.CreatedAt,
		LastUpdatedAt: o.LastUpdatedAt,
	}
}

// TrackingEventResponse defines one row of an order's tracking history.
type TrackingEventResponse struct {
	EventID   string    `json:"eventID"`
	Status    string    `json:"status"`
	Location  string    `json:"location,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// OrderTrackingResponse wraps an order's tracking history, oldest first.
type OrderTrackingResponse struct {
	OrderID string                  `json:"orderID"`
	Events  []TrackingEventResponse `json:"events"`
}

// ToOrderTrackingResponse converts tracking events to their DTO wrapper.
func ToOrderTrackingResponse(orderID string, events []domain.TrackingEvent) OrderTrackingResponse {
	out := make([]TrackingEventResponse, len(events))
	for i, ev := range events {
		out[i] = TrackingEventResponse{
			EventID:   ev.EventID,
			Status:    ev.Status,
			Location:  ev.Location,
			Notes:     ev.Notes,
			CreatedAt: ev.CreatedAt,
		}
	}
	return OrderTrackingResponse{OrderID: orderID, Events: out}
}
