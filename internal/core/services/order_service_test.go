package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/kiranacart/marketplace_backend/internal/apperrors"
	"github.com/kiranacart/marketplace_backend/internal/core/domain"
	"github.com/kiranacart/marketplace_backend/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type OrderServiceTestSuite struct {
	suite.Suite
	mockRepo *MockOrderRepository
	service  *services.OrderService
}

func (suite *OrderServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockOrderRepository)
	suite.service = services.NewOrderService(suite.mockRepo)
}

func (suite *OrderServiceTestSuite) TestUpdateItemStatus_AggregateFollowsItems() {
	ctx := context.Background()
	orderID := uuid.NewString()
	itemID := uuid.NewString()
	vendorID := uuid.NewString()

	// One vendor ships, the other already delivered: aggregate is shipping.
	updated := &domain.Order{
		OrderID: orderID,
		Status:  domain.OrderShipping,
		Items: []domain.OrderItem{
			{ItemID: itemID, VendorID: vendorID, Status: domain.ItemShipped},
			{ItemID: uuid.NewString(), VendorID: uuid.NewString(), Status: domain.ItemDelivered},
		},
	}
	suite.mockRepo.On("UpdateItemStatus", ctx, orderID, itemID, vendorID, domain.ItemShipped).Return(updated, nil).Once()

	order, err := suite.service.UpdateItemStatus(ctx, orderID, itemID, vendorID, domain.ItemShipped)

	suite.Require().NoError(err)
	suite.Equal(domain.OrderShipping, order.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestUpdateItemStatus_RejectsUnknownStatus() {
	ctx := context.Background()

	_, err := suite.service.UpdateItemStatus(ctx, uuid.NewString(), uuid.NewString(), uuid.NewString(), domain.ItemStatus("teleported"))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateItemStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestUpdateItemStatus_ForeignVendorReadsAsNotFound() {
	ctx := context.Background()
	orderID := uuid.NewString()
	itemID := uuid.NewString()
	vendorID := uuid.NewString()

	suite.mockRepo.On("UpdateItemStatus", ctx, orderID, itemID, vendorID, domain.ItemConfirmed).Return(nil, apperrors.NewNotFoundError("item not found for vendor")).Once()

	_, err := suite.service.UpdateItemStatus(ctx, orderID, itemID, vendorID, domain.ItemConfirmed)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestUpdateItemStatus_WrongOrderWritesNothing() {
	ctx := context.Background()
	wrongOrderID := uuid.NewString()
	itemID := uuid.NewString()
	vendorID := uuid.NewString()

	// The item exists for the vendor but hangs off another order. The order
	// id is part of the repository's write key, so the mismatch must come
	// back as not found with no mutation committed for either order.
	suite.mockRepo.On("UpdateItemStatus", ctx, wrongOrderID, itemID, vendorID, domain.ItemConfirmed).
		Return(nil, apperrors.NewNotFoundError("item not found in order")).Once()

	_, err := suite.service.UpdateItemStatus(ctx, wrongOrderID, itemID, vendorID, domain.ItemConfirmed)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestGetOrderTracking_OrderMustExist() {
	ctx := context.Background()
	orderID := uuid.NewString()

	suite.mockRepo.On("FindOrderByID", ctx, orderID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetOrderTracking(ctx, orderID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListTrackingByOrder", mock.Anything, mock.Anything)
}

func TestOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}
