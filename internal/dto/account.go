package dto

import (
	"time"

	"github.com/kiranacart/marketplace_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ProvisionAccountRequest defines the data needed to open a payee wallet.
type ProvisionAccountRequest struct {
	OwnerID   string           `json:"ownerID" binding:"required"`
	OwnerType domain.OwnerType `json:"ownerType" binding:"required,oneof=agent vendor"`
}

// AccountResponse defines the data returned for a wallet account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountID     string           `json:"accountID"`
	OwnerID       string           `json:"ownerID"`
	OwnerType     domain.OwnerType `json:"ownerType"`
	Balance       decimal.Decimal  `json:"balance"`
	TotalCredited decimal.Decimal  `json:"totalCredited"`
	TotalDebited  decimal.Decimal  `json:"totalDebited"`
	CreatedAt     time.Time        `json:"createdAt"`
	LastUpdatedAt time.Time        `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		OwnerID:       acc.OwnerID,
		OwnerType:     acc.OwnerType,
		Balance:       acc.Balance,
		TotalCredited: acc.TotalCredited,
		TotalDebited:  acc.TotalDebited,
		CreatedAt:     acc.CreatedAt,
		LastUpdatedAt: acc.LastUpdatedAt,
	}
}

// AccountBalanceResponse defines the data returned for a balance query.
type AccountBalanceResponse struct {
	AccountID string          `json:"accountID"`
	Balance   decimal.Decimal `json:"balance"`
}
