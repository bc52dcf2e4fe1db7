package services

import (
	"context"

	"github.com/kiranacart/marketplace_backend/internal/core/domain"
	"github.com/kiranacart/marketplace_backend/internal/dto"
)

// LedgerReaderSvc defines read operations over the ledger
type LedgerReaderSvc interface {
	// ListEntriesByAccount retrieves a paginated list of ledger entries for
	// an account, newest first.
	ListEntriesByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.LedgerEntry, error)
}

// LedgerWriterSvc defines write operations over the ledger
type LedgerWriterSvc interface {
	// RefundToAccount credits an account with a refund entry. The refund is
	// keyed by reference so replays return the original entry.
	RefundToAccount(ctx context.Context, accountID string, req dto.RefundRequest, actorID string) (*domain.LedgerEntry, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
