package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/kiranacart/marketplace_backend/internal/apperrors"
	"github.com/kiranacart/marketplace_backend/internal/core/domain"
	"github.com/kiranacart/marketplace_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type SettlementServiceTestSuite struct {
	suite.Suite
	mockAssignmentRepo *MockAssignmentRepository
	mockSettlementRepo *MockSettlementWriter
	mockAgentRepo      *MockAgentRepository
	mockAccountRepo    *MockAccountRepository
	service            *services.SettlementService
}

func (suite *SettlementServiceTestSuite) SetupTest() {
	suite.mockAssignmentRepo = new(MockAssignmentRepository)
	suite.mockSettlementRepo = new(MockSettlementWriter)
	suite.mockAgentRepo = new(MockAgentRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewSettlementService(
		suite.mockAssignmentRepo,
		suite.mockSettlementRepo,
		suite.mockAgentRepo,
		services.NewAccountService(suite.mockAccountRepo),
		decimal.NewFromFloat(0.20),
	)
}

func (suite *SettlementServiceTestSuite) expectAgentAndAccount(agentID, homeCity, accountID string) {
	suite.mockAgentRepo.On("FindAgentByID", mock.Anything, agentID).Return(&domain.DeliveryAgent{
		AgentID:  agentID,
		HomeCity: homeCity,
		IsActive: true,
	}, nil).Once()
	suite.mockAccountRepo.On("FindAccountByOwner", mock.Anything, agentID, domain.OwnerAgent).Return(&domain.Account{
		AccountID: accountID,
		OwnerID:   agentID,
		OwnerType: domain.OwnerAgent,
	}, nil).Once()
}

func (suite *SettlementServiceTestSuite) TestSettleDelivery_OutOfCityBonus() {
	ctx := context.Background()
	assignmentID := uuid.NewString()
	agentID := uuid.NewString()
	accountID := uuid.NewString()
	orderID := uuid.NewString()

	suite.mockAssignmentRepo.On("FindAssignmentByID", ctx, assignmentID).Return(&domain.DeliveryAssignment{
		AssignmentID: assignmentID,
		OrderID:      orderID,
		AgentID:      agentID,
		Status:       domain.AssignmentInTransit,
		DeliveryFee:  decimal.NewFromInt(100),
		DeliveryCity: "Pune",
	}, nil).Once()
	suite.expectAgentAndAccount(agentID, "Mumbai", accountID)

	suite.mockSettlementRepo.On("SaveSettlement", ctx, mock.MatchedBy(func(s domain.Settlement) bool {
		return s.AssignmentID == assignmentID &&
			s.AccountID == accountID &&
			s.Commission.BaseFee.Equal(decimal.NewFromInt(100)) &&
			s.Commission.DistanceBonus.Equal(decimal.NewFromInt(20)) &&
			s.Commission.Total.Equal(decimal.NewFromInt(120)) &&
			s.Commission.Status == domain.CommissionApproved &&
			s.LedgerEntry.Kind == domain.EntryCredit &&
			s.LedgerEntry.Amount.Equal(decimal.NewFromInt(120)) &&
			s.LedgerEntry.ReferenceID != nil && *s.LedgerEntry.ReferenceID == "settlement:"+assignmentID
	})).Return(nil).Once()

	settlement, err := suite.service.SettleDelivery(ctx, assignmentID, agentID)

	suite.Require().NoError(err)
	suite.True(settlement.Commission.Total.Equal(decimal.NewFromInt(120)))
	suite.mockSettlementRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestSettleDelivery_LocalDeliveryNoBonus() {
	ctx := context.Background()
	assignmentID := uuid.NewString()
	agentID := uuid.NewString()

	suite.mockAssignmentRepo.On("FindAssignmentByID", ctx, assignmentID).Return(&domain.DeliveryAssignment{
		AssignmentID: assignmentID,
		OrderID:      uuid.NewString(),
		AgentID:      agentID,
		Status:       domain.AssignmentInTransit,
		DeliveryFee:  decimal.NewFromInt(100),
		DeliveryCity: "  pune  ",
	}, nil).Once()
	suite.expectAgentAndAccount(agentID, "Pune", uuid.NewString())

	suite.mockSettlementRepo.On("SaveSettlement", ctx, mock.MatchedBy(func(s domain.Settlement) bool {
		return s.Commission.DistanceBonus.IsZero() && s.Commission.Total.Equal(decimal.NewFromInt(100))
	})).Return(nil).Once()

	_, err := suite.service.SettleDelivery(ctx, assignmentID, agentID)

	suite.Require().NoError(err)
	suite.mockSettlementRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestSettleDelivery_ReplayIsNoOp() {
	ctx := context.Background()
	assignmentID := uuid.NewString()

	suite.mockAssignmentRepo.On("FindAssignmentByID", ctx, assignmentID).Return(&domain.DeliveryAssignment{
		AssignmentID: assignmentID,
		Status:       domain.AssignmentDelivered,
	}, nil).Once()

	_, err := suite.service.SettleDelivery(ctx, assignmentID, "agent-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadySettled)
	suite.mockSettlementRepo.AssertNotCalled(suite.T(), "SaveSettlement", mock.Anything, mock.Anything)
}

func (suite *SettlementServiceTestSuite) TestSettleDelivery_LostRaceSurfacesAsAlreadySettled() {
	ctx := context.Background()
	assignmentID := uuid.NewString()
	agentID := uuid.NewString()

	suite.mockAssignmentRepo.On("FindAssignmentByID", ctx, assignmentID).Return(&domain.DeliveryAssignment{
		AssignmentID: assignmentID,
		OrderID:      uuid.NewString(),
		AgentID:      agentID,
		Status:       domain.AssignmentInTransit,
		DeliveryFee:  decimal.NewFromInt(80),
	}, nil).Once()
	suite.expectAgentAndAccount(agentID, "Delhi", uuid.NewString())

	// A concurrent settlement won between the fast-path check and the
	// repository transaction.
	suite.mockSettlementRepo.On("SaveSettlement", ctx, mock.AnythingOfType("domain.Settlement")).Return(apperrors.ErrAlreadySettled).Once()

	_, err := suite.service.SettleDelivery(ctx, assignmentID, agentID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadySettled)
	suite.mockSettlementRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestSettleDelivery_CancelledAssignmentRejected() {
	ctx := context.Background()
	assignmentID := uuid.NewString()

	suite.mockAssignmentRepo.On("FindAssignmentByID", ctx, assignmentID).Return(&domain.DeliveryAssignment{
		AssignmentID: assignmentID,
		Status:       domain.AssignmentCancelled,
	}, nil).Once()

	_, err := suite.service.SettleDelivery(ctx, assignmentID, "agent-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.mockSettlementRepo.AssertNotCalled(suite.T(), "SaveSettlement", mock.Anything, mock.Anything)
}

func TestSettlementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SettlementServiceTestSuite))
}
