package dto

import (
	"time"

	"github.com/kiranacart/marketplace_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RefundRequest defines the data needed to credit a refund to a wallet.
// ReferenceID keys the refund: replaying the same reference returns the
// original entry instead of paying twice.
type RefundRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	ReferenceID string          `json:"referenceID" binding:"required"`
	Description string          `json:"description"`
}

// LedgerEntryResponse defines the data returned for one ledger entry.
type LedgerEntryResponse struct {
	EntryID        string           `json:"entryID"`
	AccountID      string           `json:"accountID"`
	Amount         decimal.Decimal  `json:"amount"`
	Kind           domain.EntryKind `json:"kind"`
	Description    string           `json:"description"`
	ReferenceID    *string          `json:"referenceID,omitempty"`
	RunningBalance decimal.Decimal  `json:"runningBalance"`
	CreatedAt      time.Time        `json:"createdAt"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to its DTO.
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:        e.EntryID,
		AccountID:      e.AccountID,
		Amount:         e.Amount,
		Kind:           e.Kind,
		Description:    e.Description,
		ReferenceID:    e.ReferenceID,
		RunningBalance: e.RunningBalance,
		CreatedAt:      e.CreatedAt,
	}
}

// ToLedgerEntryResponses converts a slice of entries to DTOs.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	responses := make([]LedgerEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = ToLedgerEntryResponse(&e)
	}
	return responses
}

// ListLedgerEntriesParams defines query parameters for listing entries.
type ListLedgerEntriesParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListLedgerEntriesResponse wraps the list of ledger entries.
type ListLedgerEntriesResponse struct {
	Entries []LedgerEntryResponse `json:"entries"`
}
