package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/kiranacart/marketplace_backend/internal/core/domain"
)

// LedgerReader defines read operations over the append-only ledger.
type LedgerReader interface {
	// ListEntriesByAccount retrieves entries for an account, newest first.
	ListEntriesByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.LedgerEntry, error)

	// FindEntryByReference retrieves the entry carrying the given reference
	// id, if any. Used for replay-safety checks.
	FindEntryByReference(ctx context.Context, referenceID string) (*domain.LedgerEntry, error)
}

// LedgerWriter defines the single way money moves on an account. The
// implementation locks the account row, computes the running balance, inserts
// the entry and updates the account totals in one transaction.
type LedgerWriter interface {
	// AppendEntry posts one entry in its own transaction and returns it with
	// the running balance filled in.
	AppendEntry(ctx context.Context, entry domain.LedgerEntry) (*domain.LedgerEntry, error)

	// AppendEntryInTx posts one entry inside an already-open transaction.
	// The caller must have locked the account row.
	AppendEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry, locked domain.Account) (*domain.LedgerEntry, error)
}

// LedgerRepository combines all ledger repository interfaces.
type LedgerRepository interface {
	LedgerReader
	LedgerWriter
}
