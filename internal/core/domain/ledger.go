package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind classifies a ledger entry.
type EntryKind string

const (
	EntryCredit EntryKind = "credit"
	EntryDebit  EntryKind = "debit"
	EntryRefund EntryKind = "refund" // A credit originating from a reversal
)

// IsCredit reports whether the entry kind increases the account balance.
func (k EntryKind) IsCredit() bool {
	return k == EntryCredit || k == EntryRefund
}

// Valid reports whether the kind is one of the closed set.
func (k EntryKind) Valid() bool {
	switch k {
	case EntryCredit, EntryDebit, EntryRefund:
		return true
	}
	return false
}

// LedgerEntry is an immutable record of one balance change. Entries are only
// ever appended, never updated or deleted.
type LedgerEntry struct {
	EntryID        string          `json:"entryID"`   // Primary key (UUID)
	AccountID      string          `json:"accountID"` // FK -> accounts
	Amount         decimal.Decimal `json:"amount"`    // Always positive; Kind carries the sign
	Kind           EntryKind       `json:"kind"`
	Description    string          `json:"description"`
	ReferenceID    *string         `json:"referenceID,omitempty"` // e.g. commission ID, unique when set
	RunningBalance decimal.Decimal `json:"runningBalance"`        // Balance after this entry
	CreatedAt      time.Time       `json:"createdAt"`
}

// SignedAmount returns the amount with the sign implied by the entry kind.
func (e LedgerEntry) SignedAmount() decimal.Decimal {
	if e.Kind.IsCredit() {
		return e.Amount
	}
	return e.Amount.Neg()
}
