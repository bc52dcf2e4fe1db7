package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kiranacart/marketplace_backend/internal/apperrors"
	"github.com/kiranacart/marketplace_backend/internal/core/domain"
	"github.com/kiranacart/marketplace_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type StatsServiceTestSuite struct {
	suite.Suite
	mockStatsRepo *MockStatsRepository
	mockAgentRepo *MockAgentRepository
	service       *services.StatsService
}

func (suite *StatsServiceTestSuite) SetupTest() {
	suite.mockStatsRepo = new(MockStatsRepository)
	suite.mockAgentRepo = new(MockAgentRepository)
	suite.service = services.NewStatsService(suite.mockStatsRepo, suite.mockAgentRepo)
}

func (suite *StatsServiceTestSuite) TestGetAgentStats_Success() {
	ctx := context.Background()
	agentID := uuid.NewString()

	suite.mockAgentRepo.On("FindAgentByID", ctx, agentID).Return(&domain.DeliveryAgent{AgentID: agentID, IsActive: true}, nil).Once()
	suite.mockStatsRepo.On("FindAgentStats", ctx, agentID).Return(&domain.AgentStats{
		AgentID:             agentID,
		CompletedDeliveries: 12,
		FailedDeliveries:    2,
		TotalEarnings:       decimal.NewFromInt(1440),
	}, nil).Once()

	stats, err := suite.service.GetAgentStats(ctx, agentID)

	suite.Require().NoError(err)
	suite.Equal(12, stats.CompletedDeliveries)
	suite.True(stats.TotalEarnings.Equal(decimal.NewFromInt(1440)))
}

func (suite *StatsServiceTestSuite) TestGetAgentStats_NewAgentReadsAsZeros() {
	ctx := context.Background()
	agentID := uuid.NewString()

	suite.mockAgentRepo.On("FindAgentByID", ctx, agentID).Return(&domain.DeliveryAgent{AgentID: agentID, IsActive: true}, nil).Once()
	suite.mockStatsRepo.On("FindAgentStats", ctx, agentID).Return(nil, apperrors.ErrNotFound).Once()

	stats, err := suite.service.GetAgentStats(ctx, agentID)

	suite.Require().NoError(err)
	suite.Equal(agentID, stats.AgentID)
	suite.Zero(stats.CompletedDeliveries)
	suite.Zero(stats.FailedDeliveries)
}

func (suite *StatsServiceTestSuite) TestGetAgentStats_UnknownAgent() {
	ctx := context.Background()
	agentID := uuid.NewString()

	suite.mockAgentRepo.On("FindAgentByID", ctx, agentID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetAgentStats(ctx, agentID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockStatsRepo.AssertNotCalled(suite.T(), "FindAgentStats", ctx, agentID)
}

func (suite *StatsServiceTestSuite) TestGetAgentDailyStats_TruncatesToUTCDay() {
	ctx := context.Background()
	agentID := uuid.NewString()
	late := time.Date(2026, 8, 28, 23, 45, 0, 0, time.UTC)
	day := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	suite.mockAgentRepo.On("FindAgentByID", ctx, agentID).Return(&domain.DeliveryAgent{AgentID: agentID, IsActive: true}, nil).Once()
	suite.mockStatsRepo.On("FindDailyStats", ctx, agentID, day).Return(nil, apperrors.ErrNotFound).Once()

	stats, err := suite.service.GetAgentDailyStats(ctx, agentID, late)

	suite.Require().NoError(err)
	suite.Equal(day, stats.StatDate)
	suite.mockStatsRepo.AssertExpectations(suite.T())
}

func (suite *StatsServiceTestSuite) TestRebuildDailyStats_PassesNormalizedDay() {
	ctx := context.Background()
	day := time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)

	suite.mockStatsRepo.On("RebuildDailyStats", ctx, day).Return(nil).Once()

	err := suite.service.RebuildDailyStats(ctx, time.Date(2026, 8, 27, 6, 30, 0, 0, time.UTC))

	suite.Require().NoError(err)
	suite.mockStatsRepo.AssertExpectations(suite.T())
}

func TestStatsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StatsServiceTestSuite))
}
