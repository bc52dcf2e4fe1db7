package domain_test

import (
	"testing"

	"github.com/kiranacart/marketplace_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestResolveOrderStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []domain.ItemStatus
		want     domain.OrderStatus
	}{
		{
			name:     "no items resolves to pending",
			statuses: []domain.ItemStatus{},
			want:     domain.OrderPending,
		},
		{
			name:     "all delivered",
			statuses: []domain.ItemStatus{domain.ItemDelivered, domain.ItemDelivered},
			want:     domain.OrderDelivered,
		},
		{
			name:     "delivered plus cancelled counts as delivered",
			statuses: []domain.ItemStatus{domain.ItemDelivered, domain.ItemCancelled},
			want:     domain.OrderDelivered,
		},
		{
			name:     "mostly cancelled with one delivered still counts as delivered",
			statuses: []domain.ItemStatus{domain.ItemCancelled, domain.ItemCancelled, domain.ItemDelivered},
			want:     domain.OrderDelivered,
		},
		{
			name:     "any shipped wins over confirmed",
			statuses: []domain.ItemStatus{domain.ItemShipped, domain.ItemConfirmed},
			want:     domain.OrderShipping,
		},
		{
			name:     "out for delivery counts as shipping",
			statuses: []domain.ItemStatus{domain.ItemOutForDelivery, domain.ItemWaiting},
			want:     domain.OrderShipping,
		},
		{
			name:     "delivered plus shipped is still shipping",
			statuses: []domain.ItemStatus{domain.ItemDelivered, domain.ItemShipped},
			want:     domain.OrderShipping,
		},
		{
			name:     "confirmed item confirms the order",
			statuses: []domain.ItemStatus{domain.ItemConfirmed, domain.ItemWaiting},
			want:     domain.OrderConfirmed,
		},
		{
			name:     "all cancelled",
			statuses: []domain.ItemStatus{domain.ItemCancelled, domain.ItemCancelled},
			want:     domain.OrderCancelled,
		},
		{
			name:     "all waiting stays pending",
			statuses: []domain.ItemStatus{domain.ItemWaiting, domain.ItemWaiting},
			want:     domain.OrderPending,
		},
		{
			name:     "cancelled plus waiting stays pending",
			statuses: []domain.ItemStatus{domain.ItemCancelled, domain.ItemWaiting},
			want:     domain.OrderPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.ResolveOrderStatus(tt.statuses)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestItemStatusValid(t *testing.T) {
	assert.True(t, domain.ItemOutForDelivery.Valid())
	assert.True(t, domain.ItemWaiting.Valid())
	assert.False(t, domain.ItemStatus("returned").Valid())
	assert.False(t, domain.ItemStatus("").Valid())
}
