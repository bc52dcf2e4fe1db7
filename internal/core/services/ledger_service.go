package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/kiranacart/marketplace_backend/internal/apperrors"
	"github.com/kiranacart/marketplace_backend/internal/core/domain"
	portsrepo "github.com/kiranacart/marketplace_backend/internal/core/ports/repositories"
	"github.com/kiranacart/marketplace_backend/internal/dto"
	"github.com/kiranacart/marketplace_backend/internal/middleware"
)

type LedgerService struct {
	LedgerRepository  portsrepo.LedgerRepository
	AccountRepository portsrepo.AccountRepository
}

func NewLedgerService(ledgerRepo portsrepo.LedgerRepository, accountRepo portsrepo.AccountRepository) *LedgerService {
	return &LedgerService{
		LedgerRepository:  ledgerRepo,
		AccountRepository: accountRepo,
	}
}

// ListEntriesByAccount retrieves a page of ledger entries, newest first.
func (s *LedgerService) ListEntriesByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.AccountRepository.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}

	entries, err := s.LedgerRepository.ListEntriesByAccount(ctx, accountID, limit, offset)
	if err != nil {
		logger.Error("Failed to list ledger entries from repository", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	if entries == nil {
		return []domain.LedgerEntry{}, nil
	}
	return entries, nil
}

// RefundToAccount credits a refund to the account. The refund is keyed by
// req.ReferenceID: replaying the same reference returns the entry posted the
// first time and moves no money.
func (s *LedgerService) RefundToAccount(ctx context.Context, accountID string, req dto.RefundRequest, actorID string) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.IsNegative() || req.Amount.IsZero() {
		return nil, fmt.Errorf("%w: refund amount must be positive", apperrors.ErrValidation)
	}

	if existing, err := s.LedgerRepository.FindEntryByReference(ctx, req.ReferenceID); err == nil {
		logger.Info("Refund replayed, returning original entry", slog.String("reference_id", req.ReferenceID), slog.String("entry_id", existing.EntryID))
		return existing, nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	if _, err := s.AccountRepository.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}

	description := req.Description
	if description == "" {
		description = "Refund " + req.ReferenceID
	}
	refID := req.ReferenceID
	entry := domain.LedgerEntry{
		EntryID:     uuid.NewString(),
		AccountID:   accountID,
		Amount:      req.Amount,
		Kind:        domain.EntryRefund,
		Description: description,
		ReferenceID: &refID,
		CreatedAt:   time.Now(),
	}

	posted, err := s.LedgerRepository.AppendEntry(ctx, entry)
	if err != nil {
		// The unique reference index closes the check-then-insert race: a
		// concurrent replay loses here and we return the winner's entry.
		if errors.Is(err, apperrors.ErrDuplicate) {
			return s.LedgerRepository.FindEntryByReference(ctx, req.ReferenceID)
		}
		logger.Error("Failed to append refund entry", slog.String("error", err.Error()), slog.String("account_id", accountID), slog.String("reference_id", req.ReferenceID))
		return nil, err
	}

	logger.Info("Refund credited", slog.String("account_id", accountID), slog.String("entry_id", posted.EntryID), slog.String("amount", posted.Amount.String()), slog.String("actor_id", actorID))
	return posted, nil
}
