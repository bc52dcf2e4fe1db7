package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kiranacart/marketplace_backend/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock type for the AccountRepository interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByOwner(ctx context.Context, ownerID string, ownerType domain.OwnerType) (*domain.Account, error) {
	args := m.Called(ctx, ownerID, ownerType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// MockLedgerRepository is a mock type for the LedgerRepository interface
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) ListEntriesByAccount(ctx context.Context, accountID string, limit int, offset int) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindEntryByReference(ctx context.Context, referenceID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, referenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) AppendEntry(ctx context.Context, entry domain.LedgerEntry) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) AppendEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry, locked domain.Account) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, tx, entry, locked)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

// MockOrderRepository is a mock type for the OrderRepository interface
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) ListTrackingByOrder(ctx context.Context, orderID string) ([]domain.TrackingEvent, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrackingEvent), args.Error(1)
}

func (m *MockOrderRepository) UpdateItemStatus(ctx context.Context, orderID, itemID, vendorID string, status domain.ItemStatus) (*domain.Order, error) {
	args := m.Called(ctx, orderID, itemID, vendorID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) MarkItemsOutForDelivery(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

// MockAgentRepository is a mock type for the AgentReader interface
type MockAgentRepository struct {
	mock.Mock
}

func (m *MockAgentRepository) FindAgentByID(ctx context.Context, agentID string) (*domain.DeliveryAgent, error) {
	args := m.Called(ctx, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeliveryAgent), args.Error(1)
}

// MockAssignmentRepository is a mock type for the AssignmentRepository interface
type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) FindAssignmentByID(ctx context.Context, assignmentID string) (*domain.DeliveryAssignment, error) {
	args := m.Called(ctx, assignmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeliveryAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) ListActiveByAgent(ctx context.Context, agentID string) ([]domain.DeliveryAssignment, error) {
	args := m.Called(ctx, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DeliveryAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) SaveAssignment(ctx context.Context, assignment domain.DeliveryAssignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockAssignmentRepository) TransitionStatus(ctx context.Context, assignmentID string, from, to domain.AssignmentStatus, stampAt time.Time) error {
	args := m.Called(ctx, assignmentID, from, to, stampAt)
	return args.Error(0)
}

func (m *MockAssignmentRepository) RecordFailedAttempt(ctx context.Context, assignmentID string, at time.Time) error {
	args := m.Called(ctx, assignmentID, at)
	return args.Error(0)
}

func (m *MockAssignmentRepository) StoreOtp(ctx context.Context, assignmentID, otpCode string, at time.Time) error {
	args := m.Called(ctx, assignmentID, otpCode, at)
	return args.Error(0)
}

// MockSettlementWriter is a mock type for the SettlementWriter interface
type MockSettlementWriter struct {
	mock.Mock
}

func (m *MockSettlementWriter) SaveSettlement(ctx context.Context, settlement domain.Settlement) error {
	args := m.Called(ctx, settlement)
	return args.Error(0)
}

// MockStatsRepository is a mock type for the StatsRepository interface
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) FindAgentStats(ctx context.Context, agentID string) (*domain.AgentStats, error) {
	args := m.Called(ctx, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AgentStats), args.Error(1)
}

func (m *MockStatsRepository) FindDailyStats(ctx context.Context, agentID string, date time.Time) (*domain.AgentDailyStats, error) {
	args := m.Called(ctx, agentID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AgentDailyStats), args.Error(1)
}

func (m *MockStatsRepository) RecordFailedDelivery(ctx context.Context, agentID string, at time.Time) error {
	args := m.Called(ctx, agentID, at)
	return args.Error(0)
}

func (m *MockStatsRepository) RebuildDailyStats(ctx context.Context, date time.Time) error {
	args := m.Called(ctx, date)
	return args.Error(0)
}

// MockSettlementSvc is a mock type for the SettlementSvcFacade interface
type MockSettlementSvc struct {
	mock.Mock
}

func (m *MockSettlementSvc) SettleDelivery(ctx context.Context, assignmentID string, actorID string) (*domain.Settlement, error) {
	args := m.Called(ctx, assignmentID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settlement), args.Error(1)
}
