package handlers_test

import (
	"context"
	"io"
	"time"

	"github.com/SscSPs/atk_inventory_app/internal/core/domain"
	portssvc "github.com/SscSPs/atk_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/atk_inventory_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) ValidateToken(ctx context.Context, token string) (*domain.Principal, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Principal), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username string, password string) (string, time.Time, *domain.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(2) == nil {
		return "", time.Time{}, nil, args.Error(3)
	}
	return args.String(0), args.Get(1).(time.Time), args.Get(2).(*domain.User), args.Error(3)
}

var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)

// --- Mock RequestService ---
type MockRequestService struct {
	mock.Mock
}

func (m *MockRequestService) GetRequest(ctx context.Context, requestID string, actor domain.Principal) (*domain.Request, error) {
	args := m.Called(ctx, requestID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}

func (m *MockRequestService) ListRequests(ctx context.Context, actor domain.Principal, params dto.ListRequestsParams) ([]domain.Request, error) {
	args := m.Called(ctx, actor, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Request), args.Error(1)
}

func (m *MockRequestService) ListPending(ctx context.Context, actor domain.Principal) ([]domain.Request, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Request), args.Error(1)
}

func (m *MockRequestService) ListAwaitingHandout(ctx context.Context) ([]domain.Request, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Request), args.Error(1)
}

func (m *MockRequestService) CreateRequest(ctx context.Context, req dto.CreateRequestPayload, actor domain.Principal) (*domain.Request, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}

var _ portssvc.RequestSvcFacade = (*MockRequestService)(nil)

// --- Mock ApprovalService ---
type MockApprovalService struct {
	mock.Mock
}

func (m *MockApprovalService) result(args mock.Arguments) (*domain.Request, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}

func (m *MockApprovalService) MoveToReview(ctx context.Context, requestID string, actor domain.Principal) (*domain.Request, error) {
	return m.result(m.Called(ctx, requestID, actor))
}

func (m *MockApprovalService) Approve(ctx context.Context, requestID string, actor domain.Principal) (*domain.Request, error) {
	return m.result(m.Called(ctx, requestID, actor))
}

func (m *MockApprovalService) Finalize(ctx context.Context, requestID string, req dto.FinalizeRequest, actor domain.Principal) (*domain.Request, error) {
	return m.result(m.Called(ctx, requestID, req, actor))
}

func (m *MockApprovalService) Reject(ctx context.Context, requestID string, req dto.RejectRequest, actor domain.Principal) (*domain.Request, error) {
	return m.result(m.Called(ctx, requestID, req, actor))
}

func (m *MockApprovalService) RecordIntakeAndHandout(ctx context.Context, requestID string, req dto.HandoutRequest, actor domain.Principal) (*domain.Request, error) {
	return m.result(m.Called(ctx, requestID, req, actor))
}

var _ portssvc.ApprovalSvcFacade = (*MockApprovalService)(nil)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) ListOutgoing(ctx context.Context, params dto.ListMovementsParams) (*dto.ListOutgoingMovementsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListOutgoingMovementsResponse), args.Error(1)
}

func (m *MockJournalService) ListIncoming(ctx context.Context, params dto.ListMovementsParams) (*dto.ListIncomingMovementsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListIncomingMovementsResponse), args.Error(1)
}

func (m *MockJournalService) ExportOutgoing(ctx context.Context, params dto.ListMovementsParams, w io.Writer) error {
	return m.Called(ctx, params, w).Error(0)
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Health check fake ---
type fakeDB struct {
	err error
}

func (f fakeDB) Ping(context.Context) error { return f.err }
