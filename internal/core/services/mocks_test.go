package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/atk_inventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/atk_inventory_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/atk_inventory_app/internal/core/ports/services"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// --- Mock TransactionManager ---
// Runs fn with a nil tx and records whether the unit of work committed.
type MockTxManager struct {
	Commits   int
	Rollbacks int
}

var _ portsrepo.TransactionManager = (*MockTxManager)(nil)

func (m *MockTxManager) RunInTx(ctx context.Context, fn portsrepo.TxFunc) error {
	if err := fn(ctx, nil); err != nil {
		m.Rollbacks++
		return err
	}
	m.Commits++
	return nil
}

// --- Mock ItemRepository ---
type MockItemRepository struct {
	mock.Mock
}

var _ portsrepo.ItemRepositoryFacade = (*MockItemRepository)(nil)

func (m *MockItemRepository) FindItemByID(ctx context.Context, itemID string) (*domain.Item, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockItemRepository) ListItems(ctx context.Context, limit int, offset int) ([]domain.Item, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockItemRepository) ListLowStockItems(ctx context.Context) ([]domain.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockItemRepository) SaveItem(ctx context.Context, item domain.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockItemRepository) UpdateItemDetails(ctx context.Context, item domain.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockItemRepository) FindItemsByName(ctx context.Context, tx pgx.Tx, name string, match domain.ItemNameMatch) ([]domain.Item, error) {
	args := m.Called(ctx, tx, name, match)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockItemRepository) LockItemByID(ctx context.Context, tx pgx.Tx, itemID string) (*domain.Item, error) {
	args := m.Called(ctx, tx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	// Return a copy so the service cannot mutate the fixture between calls.
	item := *args.Get(0).(*domain.Item)
	return &item, args.Error(1)
}

func (m *MockItemRepository) SaveItemInTx(ctx context.Context, tx pgx.Tx, item domain.Item) error {
	return m.Called(ctx, tx, item).Error(0)
}

func (m *MockItemRepository) UpdateItemDetailsInTx(ctx context.Context, tx pgx.Tx, item domain.Item) error {
	return m.Called(ctx, tx, item).Error(0)
}

func (m *MockItemRepository) IncrementStockInTx(ctx context.Context, tx pgx.Tx, itemID string, amount int, userID string, now time.Time) (int, error) {
	args := m.Called(ctx, tx, itemID, amount, userID, now)
	return args.Int(0), args.Error(1)
}

func (m *MockItemRepository) DecrementStockInTx(ctx context.Context, tx pgx.Tx, itemID string, amount int, userID string, now time.Time) (int, error) {
	args := m.Called(ctx, tx, itemID, amount, userID, now)
	return args.Int(0), args.Error(1)
}

// --- Mock RequestRepository ---
type MockRequestRepository struct {
	mock.Mock
}

var _ portsrepo.RequestRepositoryFacade = (*MockRequestRepository)(nil)

func (m *MockRequestRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.Request, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}

func (m *MockRequestRepository) ListRequests(ctx context.Context, filter domain.RequestFilter) ([]domain.Request, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Request), args.Error(1)
}

func (m *MockRequestRepository) SaveRequest(ctx context.Context, request domain.Request) error {
	return m.Called(ctx, request).Error(0)
}

func (m *MockRequestRepository) LockRequestByID(ctx context.Context, tx pgx.Tx, requestID string) (*domain.Request, error) {
	args := m.Called(ctx, tx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	req := *args.Get(0).(*domain.Request)
	return &req, args.Error(1)
}

func (m *MockRequestRepository) UpdateRequestInTx(ctx context.Context, tx pgx.Tx, request domain.Request) error {
	return m.Called(ctx, tx, request).Error(0)
}

// --- Mock QuotaRepository ---
type MockQuotaRepository struct {
	mock.Mock
}

var _ portsrepo.QuotaRepositoryFacade = (*MockQuotaRepository)(nil)

func (m *MockQuotaRepository) FindQuota(ctx context.Context, itemID string, unitID string) (*domain.Quota, error) {
	args := m.Called(ctx, itemID, unitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quota), args.Error(1)
}

func (m *MockQuotaRepository) ListQuotas(ctx context.Context, unitID string) ([]domain.Quota, error) {
	args := m.Called(ctx, unitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Quota), args.Error(1)
}

func (m *MockQuotaRepository) UpsertQuota(ctx context.Context, quota domain.Quota) (*domain.Quota, error) {
	args := m.Called(ctx, quota)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quota), args.Error(1)
}

func (m *MockQuotaRepository) DeleteQuota(ctx context.Context, itemID string, unitID string) error {
	return m.Called(ctx, itemID, unitID).Error(0)
}

func (m *MockQuotaRepository) LockQuota(ctx context.Context, tx pgx.Tx, itemID string, unitID string) (*domain.Quota, error) {
	args := m.Called(ctx, tx, itemID, unitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quota), args.Error(1)
}

func (m *MockQuotaRepository) AddQuotaUsedInTx(ctx context.Context, tx pgx.Tx, itemID string, unitID string, amount int, userID string, now time.Time) error {
	return m.Called(ctx, tx, itemID, unitID, amount, userID, now).Error(0)
}

// --- Mock MovementRepository ---
type MockMovementRepository struct {
	mock.Mock
}

var _ portsrepo.MovementRepositoryFacade = (*MockMovementRepository)(nil)

func (m *MockMovementRepository) SaveOutgoingInTx(ctx context.Context, tx pgx.Tx, movement domain.OutgoingMovement) error {
	return m.Called(ctx, tx, movement).Error(0)
}

func (m *MockMovementRepository) SaveIncomingInTx(ctx context.Context, tx pgx.Tx, movement domain.IncomingMovement) error {
	return m.Called(ctx, tx, movement).Error(0)
}

func (m *MockMovementRepository) ListOutgoing(ctx context.Context, filter domain.MovementFilter) ([]domain.OutgoingMovement, *string, error) {
	args := m.Called(ctx, filter)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.OutgoingMovement), next, args.Error(2)
}

func (m *MockMovementRepository) ListIncoming(ctx context.Context, filter domain.MovementFilter) ([]domain.IncomingMovement, *string, error) {
	args := m.Called(ctx, filter)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.IncomingMovement), next, args.Error(2)
}

// --- Mock UnitRepository ---
type MockUnitRepository struct {
	mock.Mock
}

var _ portsrepo.UnitRepositoryFacade = (*MockUnitRepository)(nil)

func (m *MockUnitRepository) SaveUnit(ctx context.Context, unit domain.Unit) error {
	return m.Called(ctx, unit).Error(0)
}

func (m *MockUnitRepository) FindUnitByID(ctx context.Context, unitID string) (*domain.Unit, error) {
	args := m.Called(ctx, unitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Unit), args.Error(1)
}

func (m *MockUnitRepository) ListUnits(ctx context.Context) ([]domain.Unit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Unit), args.Error(1)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListActiveUsers(ctx context.Context, role domain.UserRole, unitID string) ([]domain.User, error) {
	args := m.Called(ctx, role, unitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

// --- Recording EventPublisher ---
type published struct {
	Event  domain.Event
	UserID string
}

type RecordingPublisher struct {
	mu     sync.Mutex
	Events []published
}

var _ portssvc.EventPublisher = (*RecordingPublisher)(nil)

func (p *RecordingPublisher) Publish(_ context.Context, event domain.Event, targetUserID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, published{Event: event, UserID: targetUserID})
}

func (p *RecordingPublisher) Types() []domain.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.EventType, len(p.Events))
	for i, e := range p.Events {
		out[i] = e.Event.Type
	}
	return out
}

func ptr[T any](v T) *T { return &v }
