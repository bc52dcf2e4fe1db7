package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/kiranacart/marketplace_backend/internal/apperrors"
	"github.com/kiranacart/marketplace_backend/internal/core/domain"
	"github.com/kiranacart/marketplace_backend/internal/core/services"
	"github.com/kiranacart/marketplace_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo  *MockLedgerRepository
	mockAccountRepo *MockAccountRepository
	service         *services.LedgerService
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewLedgerService(suite.mockLedgerRepo, suite.mockAccountRepo)
}

func (suite *LedgerServiceTestSuite) TestRefundToAccount_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	refID := "return:" + uuid.NewString()
	req := dto.RefundRequest{Amount: decimal.NewFromInt(75), ReferenceID: refID}

	suite.mockLedgerRepo.On("FindEntryByReference", ctx, refID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(&domain.Account{AccountID: accountID}, nil).Once()
	suite.mockLedgerRepo.On("AppendEntry", ctx, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.AccountID == accountID &&
			e.Kind == domain.EntryRefund &&
			e.Amount.Equal(decimal.NewFromInt(75)) &&
			e.ReferenceID != nil && *e.ReferenceID == refID
	})).Return(&domain.LedgerEntry{EntryID: uuid.NewString(), AccountID: accountID, Amount: req.Amount, Kind: domain.EntryRefund}, nil).Once()

	entry, err := suite.service.RefundToAccount(ctx, accountID, req, "ops-1")

	suite.Require().NoError(err)
	suite.Equal(domain.EntryRefund, entry.Kind)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestRefundToAccount_ReplayReturnsOriginal() {
	ctx := context.Background()
	accountID := uuid.NewString()
	refID := "return:" + uuid.NewString()
	original := &domain.LedgerEntry{EntryID: uuid.NewString(), AccountID: accountID, Kind: domain.EntryRefund}

	suite.mockLedgerRepo.On("FindEntryByReference", ctx, refID).Return(original, nil).Once()

	entry, err := suite.service.RefundToAccount(ctx, accountID, dto.RefundRequest{Amount: decimal.NewFromInt(75), ReferenceID: refID}, "ops-1")

	suite.Require().NoError(err)
	suite.Equal(original.EntryID, entry.EntryID)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "AppendEntry", mock.Anything, mock.Anything)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestRefundToAccount_RejectsNonPositiveAmount() {
	ctx := context.Background()

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-10)} {
		_, err := suite.service.RefundToAccount(ctx, uuid.NewString(), dto.RefundRequest{Amount: amount, ReferenceID: "r1"}, "ops-1")
		suite.Require().Error(err)
		suite.ErrorIs(err, apperrors.ErrValidation)
	}
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "AppendEntry", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestListEntriesByAccount_EmptyIsNotAnError() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(&domain.Account{AccountID: accountID}, nil).Once()
	suite.mockLedgerRepo.On("ListEntriesByAccount", ctx, accountID, 20, 0).Return([]domain.LedgerEntry{}, nil).Once()

	entries, err := suite.service.ListEntriesByAccount(ctx, accountID, 20, 0)

	suite.Require().NoError(err)
	suite.Empty(entries)
	suite.NotNil(entries)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
