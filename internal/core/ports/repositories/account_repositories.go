package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/kiranacart/marketplace_backend/internal/core/domain"
)

// AccountReader defines read operations for wallet accounts.
type AccountReader interface {
	// FindAccountByID retrieves an account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByOwner retrieves the account provisioned for an owner.
	FindAccountByOwner(ctx context.Context, ownerID string, ownerType domain.OwnerType) (*domain.Account, error)
}

// AccountWriter defines write operations for wallet accounts. Balances are
// never written here; only ledger appends move money.
type AccountWriter interface {
	// SaveAccount inserts a newly provisioned account with a zero balance.
	SaveAccount(ctx context.Context, account domain.Account) error
}

// AccountLocker exposes row-lock access for use inside an open transaction.
type AccountLocker interface {
	// FindAccountByIDForUpdate retrieves an account and locks its row.
	// Must be called within a transaction.
	FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error)
}

// AccountRepository combines all account repository interfaces.
type AccountRepository interface {
	AccountReader
	AccountWriter
	AccountLocker
}
