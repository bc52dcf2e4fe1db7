package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/kiranacart/marketplace_backend/internal/apperrors"
	"github.com/kiranacart/marketplace_backend/internal/core/domain"
	portsrepo "github.com/kiranacart/marketplace_backend/internal/core/ports/repositories"
	"github.com/kiranacart/marketplace_backend/internal/dto"
	"github.com/kiranacart/marketplace_backend/internal/middleware"
	"github.com/shopspring/decimal"
)

type AccountService struct {
	AccountRepository portsrepo.AccountRepository
}

func NewAccountService(repo portsrepo.AccountRepository) *AccountService {
	return &AccountService{AccountRepository: repo}
}

// ProvisionAccount opens a zero-balance wallet for an owner. Provisioning is
// idempotent: a second call for the same owner returns the existing account.
func (s *AccountService) ProvisionAccount(ctx context.Context, req dto.ProvisionAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.AccountRepository.FindAccountByOwner(ctx, req.OwnerID, req.OwnerType)
	if err == nil {
		logger.Debug("Account already provisioned for owner", slog.String("owner_id", req.OwnerID), slog.String("account_id", existing.AccountID))
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check existing account for owner", slog.String("error", err.Error()), slog.String("owner_id", req.OwnerID))
		return nil, err
	}

	now := time.Now()
	account := domain.Account{
		AccountID:     uuid.NewString(),
		OwnerID:       req.OwnerID,
		OwnerType:     req.OwnerType,
		Balance:       decimal.Zero,
		TotalCredited: decimal.Zero,
		TotalDebited:  decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     req.OwnerID,
			LastUpdatedAt: now,
			LastUpdatedBy: req.OwnerID,
		},
	}

	if err := s.AccountRepository.SaveAccount(ctx, account); err != nil {
		// A concurrent provision for the same owner may have won; surface
		// the existing account instead of the duplicate error.
		if errors.Is(err, apperrors.ErrDuplicate) {
			return s.AccountRepository.FindAccountByOwner(ctx, req.OwnerID, req.OwnerType)
		}
		logger.Error("Failed to save account in repository", slog.String("error", err.Error()), slog.String("account_id", account.AccountID))
		return nil, err
	}

	logger.Info("Account provisioned", slog.String("account_id", account.AccountID), slog.String("owner_id", req.OwnerID), slog.String("owner_type", string(req.OwnerType)))
	return &account, nil
}

func (s *AccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	account, err := s.AccountRepository.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account by ID in repository", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *AccountService) GetAccountByOwner(ctx context.Context, ownerID string, ownerType domain.OwnerType) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	account, err := s.AccountRepository.FindAccountByOwner(ctx, ownerID, ownerType)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account by owner in repository", slog.String("error", err.Error()), slog.String("owner_id", ownerID))
		}
		return nil, err
	}
	return account, nil
}
