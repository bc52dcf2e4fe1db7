package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the aggregate, customer-facing status of an order. It is a
// persisted cache of ResolveOrderStatus over the order's item statuses and is
// never set independently.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderShipping  OrderStatus = "shipping"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// PaymentStatus tracks the payment side of an order.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// ItemStatus is the vendor-scoped fulfillment status of one line item,
// independent per vendor within a multi-vendor order.
type ItemStatus string

const (
	ItemWaiting        ItemStatus = "waiting"
	ItemConfirmed      ItemStatus = "confirmed"
	ItemShipped        ItemStatus = "shipped"
	ItemOutForDelivery ItemStatus = "out_for_delivery"
	ItemDelivered      ItemStatus = "delivered"
	ItemCancelled      ItemStatus = "cancelled"
)

// Valid reports whether the item status is one of the closed set.
func (s ItemStatus) Valid() bool {
	switch s {
	case ItemWaiting, ItemConfirmed, ItemShipped, ItemOutForDelivery, ItemDelivered, ItemCancelled:
		return true
	}
	return false
}

// Order is a customer purchase composed of per-vendor line items.
type Order struct {
	OrderID       string          `json:"orderID"`     // Primary key (UUID)
	OrderNumber   string          `json:"orderNumber"` // Unique human-facing number
	CustomerID    string          `json:"customerID"`
	Status        OrderStatus     `json:"status"` // Derived; see ResolveOrderStatus
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	DeliveryFee   decimal.Decimal `json:"deliveryFee"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	DeliveryCity  string          `json:"deliveryCity"`
	DeliveredAt   *time.Time      `json:"deliveredAt,omitempty"`
	Items         []OrderItem     `json:"items,omitempty"`
	AuditFields
}

// OrderItem is one vendor's line within an order. Only that vendor mutates
// its status.
type OrderItem struct {
	ItemID      string          `json:"itemID"`  // Primary key (UUID)
	OrderID     string          `json:"orderID"` // FK -> orders
	ProductID   string          `json:"productID"`
	VendorID    string          `json:"vendorID"`
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Status      ItemStatus      `json:"status"`
	AuditFields
}

// TrackingEvent is one row of an order's append-only tracking history.
type TrackingEvent struct {
	EventID   string    `json:"eventID"` // Primary key (UUID)
	OrderID   string    `json:"orderID"` // FK -> orders
	Status    string    `json:"status"`
	Location  string    `json:"location,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ResolveOrderStatus derives the aggregate order status from the multiset of
// item statuses. Precedence rules, first match wins:
//
//  1. all delivered                          -> delivered
//  2. some cancelled, rest delivered         -> delivered
//  3. any shipped or out_for_delivery        -> shipping
//  4. any confirmed                          -> confirmed
//  5. all cancelled                          -> cancelled
//  6. otherwise                              -> pending
//
// Rule 2 means a partially-cancelled but otherwise fully-delivered order
// counts as complete for the customer.
func ResolveOrderStatus(itemStatuses []ItemStatus) OrderStatus {
	if len(itemStatuses) == 0 {
		return OrderPending
	}

	var delivered, cancelled, shippingLike, confirmed int
	for _, s := range itemStatuses {
		switch s {
		case ItemDelivered:
			delivered++
		case ItemCancelled:
			cancelled++
		case ItemShipped, ItemOutForDelivery:
			shippingLike++
		case ItemConfirmed:
			confirmed++
		}
	}

	total := len(itemStatuses)
	switch {
	case delivered == total:
		return OrderDelivered
	case delivered > 0 && delivered+cancelled == total:
		return OrderDelivered
	case shippingLike > 0:
		return OrderShipping
	case confirmed > 0:
		return OrderConfirmed
	case cancelled == total:
		return OrderCancelled
	default:
		return OrderPending
	}
}

// ItemStatuses extracts the status multiset from a slice of items.
func ItemStatuses(items []OrderItem) []ItemStatus {
	statuses := make([]ItemStatus, len(items))
	for i, it := range items {
		statuses[i] = it.Status
	}
	return statuses
}
