package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/atk_inventory_app/internal/apperrors"
	"github.com/SscSPs/atk_inventory_app/internal/core/domain"
	portssvc "github.com/SscSPs/atk_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/atk_inventory_app/internal/dto"
	"github.com/SscSPs/atk_inventory_app/internal/handlers"
	"github.com/SscSPs/atk_inventory_app/internal/middleware"
	"github.com/SscSPs/atk_inventory_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	adminToken = "admin-token"
	unitToken  = "unit-token"
)

var (
	adminPrincipal = domain.Principal{UserID: "admin-1", Role: domain.RoleAdmin}
	unitPrincipal  = domain.Principal{UserID: "unit-user-1", Role: domain.RoleUnit, UnitID: "unit-1"}
)

type HandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockAuth     *MockAuthService
	mockRequest  *MockRequestService
	mockApproval *MockApprovalService
	mockJournal  *MockJournalService
	db           *fakeDB
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	suite.mockAuth = new(MockAuthService)
	suite.mockRequest = new(MockRequestService)
	suite.mockApproval = new(MockApprovalService)
	suite.mockJournal = new(MockJournalService)
	suite.db = &fakeDB{}

	suite.mockAuth.On("ValidateToken", mock.Anything, adminToken).Return(&adminPrincipal, nil).Maybe()
	suite.mockAuth.On("ValidateToken", mock.Anything, unitToken).Return(&unitPrincipal, nil).Maybe()
	suite.mockAuth.On("ValidateToken", mock.Anything, mock.Anything).Return(nil, apperrors.ErrUnauthorized).Maybe()

	loginLimiter, err := middleware.NewMemoryLimiter("2-M")
	suite.Require().NoError(err)

	services := &portssvc.ServiceContainer{
		Auth:     suite.mockAuth,
		Request:  suite.mockRequest,
		Approval: suite.mockApproval,
		Journal:  suite.mockJournal,
	}
	handlers.RegisterRoutes(suite.router, &config.Config{IsProduction: true}, services, loginLimiter, suite.db)
}

func (suite *HandlerTestSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) errorBody(w *httptest.ResponseRecorder) string {
	var resp dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func sampleRequest(status domain.RequestStatus) *domain.Request {
	itemID := "item-1"
	return &domain.Request{
		RequestID:         "req-1",
		ItemID:            &itemID,
		ItemName:          "Kertas A4",
		RequestedQuantity: 3,
		UnitOfMeasure:     "rim",
		RequestDate:       time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Receiver:          "Siti",
		UnitID:            "unit-1",
		Department:        "Finance",
		Status:            status,
		Fulfillment:       domain.FulfillFromStock,
	}
}

// --- Authentication ---

func (suite *HandlerTestSuite) TestMissingToken() {
	w := suite.do(http.MethodGet, "/api/v1/requests/pending", "", nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockRequest.AssertNotCalled(suite.T(), "ListPending", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestUnknownToken() {
	w := suite.do(http.MethodGet, "/api/v1/requests/pending", "forged", nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal("Invalid token", suite.errorBody(w))
}

func (suite *HandlerTestSuite) TestLogin_Success() {
	expiresAt := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	user := &domain.User{UserID: "admin-1", Username: "root", Name: "Administrator", Role: domain.RoleAdmin}
	suite.mockAuth.On("Login", mock.Anything, "root", "s3cret-pass").Return("signed.jwt", expiresAt, user, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{Username: "root", Password: "s3cret-pass"})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("signed.jwt", resp.Token)
	suite.True(expiresAt.Equal(resp.ExpiresAt))
	suite.Equal("root", resp.User.Username)
	suite.mockAuth.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestLogin_RejectedAndRateLimited() {
	suite.mockAuth.On("Login", mock.Anything, "root", "wrong").
		Return("", time.Time{}, nil, fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)).Twice()

	creds := dto.LoginRequest{Username: "root", Password: "wrong"}
	suite.Equal(http.StatusUnauthorized, suite.do(http.MethodPost, "/api/v1/auth/login", "", creds).Code)
	suite.Equal(http.StatusUnauthorized, suite.do(http.MethodPost, "/api/v1/auth/login", "", creds).Code)

	w := suite.do(http.MethodPost, "/api/v1/auth/login", "", creds)
	suite.Equal(http.StatusTooManyRequests, w.Code)
	suite.mockAuth.AssertNumberOfCalls(suite.T(), "Login", 2)
}

func (suite *HandlerTestSuite) TestLogin_MalformedBody() {
	w := suite.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "root"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(suite.errorBody(w), "Invalid request format")
}

// --- Requests ---

func (suite *HandlerTestSuite) TestCreateRequest_ByUnit() {
	payload := dto.CreateRequestPayload{
		ItemName:      "Kertas A4",
		Quantity:      3,
		UnitOfMeasure: "rim",
		RequestDate:   "2024-01-15",
		Receiver:      "Siti",
	}
	suite.mockRequest.On("CreateRequest", mock.Anything, payload, unitPrincipal).
		Return(sampleRequest(domain.StatusPending), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/requests", unitToken, payload)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.RequestResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("req-1", resp.RequestID)
	suite.Equal(domain.StatusPending, resp.Status)
	suite.Equal("2024-01-15", resp.RequestDate)
	suite.mockRequest.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateRequest_AdminForbidden() {
	w := suite.do(http.MethodPost, "/api/v1/requests", adminToken, dto.CreateRequestPayload{
		ItemName: "Kertas A4", Quantity: 3, UnitOfMeasure: "rim", RequestDate: "2024-01-15", Receiver: "Siti",
	})

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockRequest.AssertNotCalled(suite.T(), "CreateRequest", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateRequest_InvalidBody() {
	w := suite.do(http.MethodPost, "/api/v1/requests", unitToken, map[string]any{
		"itemName": "Kertas A4", "quantity": 0, "unitOfMeasure": "rim", "requestDate": "15/01/2024", "receiver": "Siti",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockRequest.AssertNotCalled(suite.T(), "CreateRequest", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestGetRequest_StaticSegmentsDoNotShadowID() {
	suite.mockRequest.On("ListPending", mock.Anything, unitPrincipal).
		Return([]domain.Request{*sampleRequest(domain.StatusPending)}, nil).Once()
	suite.mockRequest.On("GetRequest", mock.Anything, "req-1", unitPrincipal).
		Return(sampleRequest(domain.StatusPending), nil).Once()

	pending := suite.do(http.MethodGet, "/api/v1/requests/pending", unitToken, nil)
	single := suite.do(http.MethodGet, "/api/v1/requests/req-1", unitToken, nil)

	suite.Equal(http.StatusOK, pending.Code)
	suite.Equal(http.StatusOK, single.Code)
	var list []dto.RequestResponse
	suite.Require().NoError(json.Unmarshal(pending.Body.Bytes(), &list))
	suite.Len(list, 1)
	suite.mockRequest.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestGetRequest_NotFound() {
	suite.mockRequest.On("GetRequest", mock.Anything, "missing", unitPrincipal).
		Return(nil, fmt.Errorf("request missing: %w", apperrors.ErrNotFound)).Once()

	w := suite.do(http.MethodGet, "/api/v1/requests/missing", unitToken, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

// --- Transitions ---

func (suite *HandlerTestSuite) TestApprove_Success() {
	approved := sampleRequest(domain.StatusApproved)
	qty := 3
	approved.ApprovedQuantity = &qty
	suite.mockApproval.On("Approve", mock.Anything, "req-1", adminPrincipal).Return(approved, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/requests/req-1/approve", adminToken, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.RequestResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.StatusApproved, resp.Status)
	suite.Require().NotNil(resp.ApprovedQuantity)
	suite.Equal(3, *resp.ApprovedQuantity)
}

func (suite *HandlerTestSuite) TestApprove_UnitForbidden() {
	w := suite.do(http.MethodPost, "/api/v1/requests/req-1/approve", unitToken, nil)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockApproval.AssertNotCalled(suite.T(), "Approve", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestApprove_ErrorMapping() {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"already processed", &apperrors.InvalidStateTransitionError{RequestID: "req-1", From: "APPROVED", To: "APPROVED"}, http.StatusConflict, "already processed"},
		{"insufficient stock", &apperrors.InsufficientStockError{ItemName: "Kertas A4", Available: 2, Requested: 3}, http.StatusUnprocessableEntity, "available 2, requested 3"},
		{"quota exceeded", &apperrors.QuotaExceededError{ItemID: "item-1", UnitID: "unit-1", Max: 10, Used: 8, Requested: 3}, http.StatusUnprocessableEntity, "max 10, used 8"},
		{"ambiguous item", &apperrors.AmbiguousItemReferenceError{Reference: "pen", Candidates: []string{"Pen Blue", "Pen Red"}}, http.StatusUnprocessableEntity, "Pen Blue, Pen Red"},
		{"item not found", apperrors.ErrItemNotFound, http.StatusNotFound, "item not found"},
		{"internal", errors.New("connection reset by peer"), http.StatusInternalServerError, "Failed to approve request"},
	}

	for _, tc := range cases {
		suite.Run(tc.name, func() {
			suite.mockApproval.ExpectedCalls = nil
			suite.mockApproval.On("Approve", mock.Anything, "req-1", adminPrincipal).Return(nil, tc.err).Once()

			w := suite.do(http.MethodPost, "/api/v1/requests/req-1/approve", adminToken, nil)

			suite.Equal(tc.wantStatus, w.Code)
			suite.Contains(suite.errorBody(w), tc.wantBody)
			suite.Empty(w.Header().Get("Retry-After"))
		})
	}
}

func (suite *HandlerTestSuite) TestApprove_BusyAsksForRetry() {
	suite.mockApproval.On("Approve", mock.Anything, "req-1", adminPrincipal).
		Return(nil, fmt.Errorf("lock request: %w", apperrors.ErrBusy)).Once()

	w := suite.do(http.MethodPost, "/api/v1/requests/req-1/approve", adminToken, nil)

	suite.Equal(http.StatusServiceUnavailable, w.Code)
	suite.Equal("2", w.Header().Get("Retry-After"))
}

func (suite *HandlerTestSuite) TestFinalize_RequiresQuantity() {
	w := suite.do(http.MethodPost, "/api/v1/requests/req-1/finalize", adminToken, map[string]any{})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockApproval.AssertNotCalled(suite.T(), "Finalize", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestFinalize_OutOfRangeQuantity() {
	suite.mockApproval.On("Finalize", mock.Anything, "req-1",
		mock.MatchedBy(func(r dto.FinalizeRequest) bool { return r.FinalQuantity != nil && *r.FinalQuantity == 11 }),
		adminPrincipal,
	).Return(nil, fmt.Errorf("%w: final quantity must be between 1 and 10", apperrors.ErrInvalidQuantity)).Once()

	w := suite.do(http.MethodPost, "/api/v1/requests/req-1/finalize", adminToken, map[string]int{"finalQuantity": 11})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(suite.errorBody(w), "between 1 and 10")
}

func (suite *HandlerTestSuite) TestReject_WithoutBody() {
	suite.mockApproval.On("Reject", mock.Anything, "req-1", dto.RejectRequest{}, adminPrincipal).
		Return(sampleRequest(domain.StatusRejected), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/requests/req-1/reject", adminToken, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockApproval.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestReject_WithReason() {
	suite.mockApproval.On("Reject", mock.Anything, "req-1", dto.RejectRequest{Reason: "budget"}, adminPrincipal).
		Return(sampleRequest(domain.StatusRejected), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/requests/req-1/reject", adminToken, dto.RejectRequest{Reason: "budget"})

	suite.Equal(http.StatusOK, w.Code)
	suite.mockApproval.AssertExpectations(suite.T())
}

// --- Movements ---

func (suite *HandlerTestSuite) TestExportOutgoing_StreamsWorkbook() {
	suite.mockJournal.On("ExportOutgoing", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			_, _ = args.Get(2).(io.Writer).Write([]byte("PK\x03\x04"))
		}).Return(nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/movements/outgoing/export", adminToken, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Header().Get("Content-Type"), "spreadsheetml")
	suite.Contains(w.Header().Get("Content-Disposition"), "attachment")
	suite.True(strings.HasPrefix(w.Body.String(), "PK"))
}

func (suite *HandlerTestSuite) TestExportOutgoing_ErrorAnswersJSON() {
	suite.mockJournal.On("ExportOutgoing", mock.Anything, mock.Anything, mock.Anything).
		Return(fmt.Errorf("%w: dateFrom after dateTo", apperrors.ErrValidation)).Once()

	w := suite.do(http.MethodGet, "/api/v1/movements/outgoing/export", adminToken, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Header().Get("Content-Type"), "application/json")
	suite.Empty(w.Header().Get("Content-Disposition"))
}

func (suite *HandlerTestSuite) TestMovements_AdminOnly() {
	w := suite.do(http.MethodGet, "/api/v1/movements/outgoing", unitToken, nil)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockJournal.AssertNotCalled(suite.T(), "ListOutgoing", mock.Anything, mock.Anything)
}

// --- Health ---

func (suite *HandlerTestSuite) TestHealth() {
	suite.Equal(http.StatusOK, suite.do(http.MethodGet, "/health", "", nil).Code)

	suite.db.err = errors.New("connection refused")
	suite.Equal(http.StatusServiceUnavailable, suite.do(http.MethodGet, "/health", "", nil).Code)
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
