package services

import (
	"context"

	"github.com/kiranacart/marketplace_backend/internal/core/domain"
	"github.com/kiranacart/marketplace_backend/internal/dto"
)

// AccountReaderSvc defines read operations for wallet account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountByOwner retrieves the account belonging to an owner (agent or vendor).
	GetAccountByOwner(ctx context.Context, ownerID string, ownerType domain.OwnerType) (*domain.Account, error)
}

// AccountWriterSvc defines write operations for wallet account data
type AccountWriterSvc interface {
	// ProvisionAccount creates a zero-balance account for an owner.
	// Provisioning twice for the same owner returns the existing account.
	ProvisionAccount(ctx context.Context, req dto.ProvisionAccountRequest) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
