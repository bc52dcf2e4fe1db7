package dto

import (
	"time"

	"github.com/kiranacart/marketplace_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAssignmentRequest defines the data needed to hand an order to an agent.
type CreateAssignmentRequest struct {
	OrderID      string          `json:"orderID" binding:"required"`
	AgentID      string          `json:"agentID" binding:"required"`
	DeliveryFee  decimal.Decimal `json:"deliveryFee" binding:"required"`
	PickupCity   string          `json:"pickupCity" binding:"required"`
	DeliveryCity string          `json:"deliveryCity" binding:"required"`
}

// MarkFailedRequest carries the reason for a failed delivery attempt.
type MarkFailedRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ConfirmOtpRequest carries the customer's delivery confirmation code.
type ConfirmOtpRequest struct {
	Code string `json:"code" binding:"required,len=6,numeric"`
}

// OtpResponse defines the data returned when a confirmation code is issued.
// The caller forwards the code to the customer through its own channel.
type OtpResponse struct {
	AssignmentID string    `json:"assignmentID"`
	Code         string    `json:"code"`
	IssuedAt     time.Time `json:"issuedAt"`
}

// AssignmentResponse defines the data returned for a delivery assignment.
type AssignmentResponse struct {
	AssignmentID  string                  `json:"assignmentID"`
	OrderID       string                  `json:"orderID"`
	AgentID       string                  `json:"agentID"`
	Status        domain.AssignmentStatus `json:"status"`
	DeliveryFee   decimal.Decimal         `json:"deliveryFee"`
	PickupCity    string                  `json:"pickupCity"`
	DeliveryCity  string                  `json:"deliveryCity"`
	AttemptsCount int                     `json:"attemptsCount"`
	OtpVerified   bool                    `json:"otpVerified"`
	AssignedAt    time.Time               `json:"assignedAt"`
	AcceptedAt    *time.Time              `json:"acceptedAt,omitempty"`
	StartedAt     *time.Time              `json:"startedAt,omitempty"`
	CompletedAt   *time.Time              `json:"completedAt,omitempty"`
}

// ToAssignmentResponse converts a domain.DeliveryAssignment to its DTO.
// The OTP code never leaves the domain layer.
func ToAssignmentResponse(a *domain.DeliveryAssignment) AssignmentResponse {
	return AssignmentResponse{
		AssignmentID:  a.AssignmentID,
		OrderID:       a.OrderID,
		AgentID:       a.AgentID,
		Status:        a.Status,
		DeliveryFee:   a.DeliveryFee,
		PickupCity:    a.PickupCity,
		DeliveryCity:  a.DeliveryCity,
		AttemptsCount: a.AttemptsCount,
		OtpVerified:   a.OtpVerified,
		AssignedAt:    a.AssignedAt,
		AcceptedAt:    a.AcceptedAt,
		StartedAt:     a.StartedAt,
		CompletedAt:   a.CompletedAt,
	}
}

// ToAssignmentResponses converts a slice of assignments to DTOs.
func ToAssignmentResponses(assignments []domain.DeliveryAssignment) []AssignmentResponse {
	responses := make([]AssignmentResponse, len(assignments))
	for i, a := range assignments {
		responses[i] = ToAssignmentResponse(&a)
	}
	return responses
}

// CommissionResponse defines the data returned for a settled commission.
type CommissionResponse struct {
	CommissionID  string                  `json:"commissionID"`
	AssignmentID  string                  `json:"assignmentID"`
	OrderID       string                  `json:"orderID"`
	AgentID       string                  `json:"agentID"`
	BaseFee       decimal.Decimal         `json:"baseFee"`
	DistanceBonus decimal.Decimal         `json:"distanceBonus"`
	Total         decimal.Decimal         `json:"total"`
	Status        domain.CommissionStatus `json:"status"`
	CreatedAt     time.Time               `json:"createdAt"`
}

// ToCommissionResponse converts a domain.Commission to its DTO.
func ToCommissionResponse(c *domain.Commission) CommissionResponse {
	return CommissionResponse{
		CommissionID:  c.CommissionID,
		AssignmentID:  c.AssignmentID,
		OrderID:       c.OrderID,
		AgentID:       c.AgentID,
		BaseFee:       c.BaseFee,
		DistanceBonus: c.DistanceBonus,
		Total:         c.Total,
		Status:        c.Status,
		CreatedAt:     c.CreatedAt,
	}
}
