package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CommissionStatus tracks a commission through approval and payout.
type CommissionStatus string

const (
	CommissionPending  CommissionStatus = "pending"
	CommissionApproved CommissionStatus = "approved"
	CommissionPaid     CommissionStatus = "paid"
	CommissionFailed   CommissionStatus = "failed"
)

// Commission records money owed to a delivery agent for one completed
// assignment. Exactly one commission exists per assignment; the settlement
// transaction creates it directly in approved status because the triggering
// event is a verified completed delivery.
type Commission struct {
	CommissionID  string           `json:"commissionID"` // Primary key (UUID)
	AssignmentID  string           `json:"assignmentID"` // FK -> delivery_assignments, unique
	OrderID       string           `json:"orderID"`
	AgentID       string           `json:"agentID"`
	BaseFee       decimal.Decimal  `json:"baseFee"`
	DistanceBonus decimal.Decimal  `json:"distanceBonus"`
	Total         decimal.Decimal  `json:"total"`
	Status        CommissionStatus `json:"status"`
	PaymentID     *string          `json:"paymentID,omitempty"` // Payout batch that settles it
	Notes         string           `json:"notes,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	ApprovedAt    *time.Time       `json:"approvedAt,omitempty"`
	PaidAt        *time.Time       `json:"paidAt,omitempty"`
}
