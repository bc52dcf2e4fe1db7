package domain

import (
	"github.com/shopspring/decimal"
)

// OwnerType identifies which kind of payee an account belongs to.
type OwnerType string

const (
	OwnerAgent  OwnerType = "agent"
	OwnerVendor OwnerType = "vendor"
)

// Account is a payee wallet. Its balance is mutated only through ledger
// appends executed inside a repository transaction; the sum of an account's
// ledger entries always equals Balance.
type Account struct {
	AccountID     string          `json:"accountID"` // Primary key (UUID)
	OwnerID       string          `json:"ownerID"`   // Agent or vendor profile ID
	OwnerType     OwnerType       `json:"ownerType"`
	Balance       decimal.Decimal `json:"balance"` // Never below zero
	TotalCredited decimal.Decimal `json:"totalCredited"`
	TotalDebited  decimal.Decimal `json:"totalDebited"`
	AuditFields
}
