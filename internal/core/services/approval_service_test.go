package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/atk_inventory_app/internal/apperrors"
	"github.com/SscSPs/atk_inventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/atk_inventory_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/atk_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/atk_inventory_app/internal/core/services"
	"github.com/SscSPs/atk_inventory_app/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ApprovalServiceTestSuite struct {
	suite.Suite
	tx           *MockTxManager
	requestRepo  *MockRequestRepository
	itemRepo     *MockItemRepository
	quotaRepo    *MockQuotaRepository
	movementRepo *MockMovementRepository
	userRepo     *MockUserRepository
	publisher    *RecordingPublisher
	service      portssvc.ApprovalSvcFacade

	admin domain.Principal
	item  domain.Item
}

func (suite *ApprovalServiceTestSuite) SetupTest() {
	suite.tx = &MockTxManager{}
	suite.requestRepo = new(MockRequestRepository)
	suite.itemRepo = new(MockItemRepository)
	suite.quotaRepo = new(MockQuotaRepository)
	suite.movementRepo = new(MockMovementRepository)
	suite.userRepo = new(MockUserRepository)
	suite.publisher = &RecordingPublisher{}

	suite.service = services.NewApprovalService(portsrepo.RepositoryProvider{
		TxManager:    suite.tx,
		ItemRepo:     suite.itemRepo,
		RequestRepo:  suite.requestRepo,
		QuotaRepo:    suite.quotaRepo,
		MovementRepo: suite.movementRepo,
		UserRepo:     suite.userRepo,
	}, suite.publisher)

	suite.admin = domain.Principal{UserID: "admin-1", Role: domain.RoleAdmin}
	suite.item = domain.Item{ItemID: "item-a4", Name: "Kertas A4", Code: "ATK-001", Quantity: 50, UnitOfMeasure: "rim", MinStock: 5}

	suite.userRepo.On("ListActiveUsers", mock.Anything, domain.RoleUnit, "unit-y").
		Return([]domain.User{{UserID: "unit-user-1"}}, nil).Maybe()
	suite.userRepo.On("ListActiveUsers", mock.Anything, domain.RoleAdmin, "").
		Return([]domain.User{{UserID: "admin-1"}}, nil).Maybe()
}

func (suite *ApprovalServiceTestSuite) request(status domain.RequestStatus, qty int) *domain.Request {
	return &domain.Request{
		RequestID:         "req-1",
		ItemID:            &suite.item.ItemID,
		ItemName:          suite.item.Name,
		RequestedQuantity: qty,
		UnitOfMeasure:     "rim",
		RequestDate:       time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Receiver:          "Siti",
		UnitID:            "unit-y",
		Department:        "Finance",
		Status:            status,
		Fulfillment:       domain.FulfillFromStock,
	}
}

func (suite *ApprovalServiceTestSuite) TestApprove_DeductsStockAndWritesMovement() {
	ctx := context.Background()
	req := suite.request(domain.StatusPending, 3)

	suite.requestRepo.On("LockRequestByID", ctx, mock.Anything, "req-1").Return(req, nil).Once()
	suite.itemRepo.On("LockItemByID", ctx, mock.Anything, "item-a4").Return(&suite.item, nil).Once()
	suite.quotaRepo.On("LockQuota", ctx, mock.Anything, "item-a4", "unit-y").Return(nil, apperrors.ErrNotFound).Once()
	suite.itemRepo.On("DecrementStockInTx", ctx, mock.Anything, "item-a4", 3, "admin-1", mock.Anything).Return(47, nil).Once()
	suite.movementRepo.On("SaveOutgoingInTx", ctx, mock.Anything, mock.MatchedBy(func(m domain.OutgoingMovement) bool {
		return m.Quantity == 3 && m.ItemName == "Kertas A4" && m.ItemCode == "ATK-001" &&
			m.MovementDate.Equal(req.RequestDate) && m.Receiver == "Siti" && m.Department == "Finance" &&
			m.RequestID != nil && *m.RequestID == "req-1"
	})).Return(nil).Once()
	suite.requestRepo.On("UpdateRequestInTx", ctx, mock.Anything, mock.MatchedBy(func(r domain.Request) bool {
		return r.Status == domain.StatusApproved && r.ApprovedQuantity != nil && *r.ApprovedQuantity == 3 &&
			r.ProcessedBy != nil && *r.ProcessedBy == "admin-1"
	})).Return(nil).Once()

	result, err := suite.service.Approve(ctx, "req-1", suite.admin)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusApproved, result.Status)
	suite.Equal(1, suite.tx.Commits)
	suite.Equal([]domain.EventType{domain.EventRequestApproved}, suite.publisher.Types())
	suite.Equal("unit-user-1", suite.publisher.Events[0].UserID)
	suite.itemRepo.AssertExpectations(suite.T())
	suite.movementRepo.AssertExpectations(suite.T())
	suite.requestRepo.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestApprove_InsufficientStock() {
	ctx := context.Background()
	req := suite.request(domain.StatusPending, 5)
	suite.item.Quantity = 2

	suite.requestRepo.On("LockRequestByID", ctx, mock.Anything, "req-1").Return(req, nil).Once()
	suite.itemRepo.On("LockItemByID", ctx, mock.Anything, "item-a4").Return(&suite.item, nil).Once()

	result, err := suite.service.Approve(ctx, "req-1", suite.admin)

	suite.Nil(result)
	var stockErr *apperrors.InsufficientStockError
	suite.Require().True(errors.As(err, &stockErr))
	suite.Equal(2, stockErr.Available)
	suite.Equal(5, stockErr.Requested)
	suite.Equal(1, suite.tx.Rollbacks)
	suite.itemRepo.AssertNotCalled(suite.T(), "DecrementStockInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.requestRepo.AssertNotCalled(suite.T(), "UpdateRequestInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.Empty(suite.publisher.Types())
}

func (suite *ApprovalServiceTestSuite) TestApprove_QuotaExceeded() {
	ctx := context.Background()
	req := suite.request(domain.StatusPending, 3)

	suite.requestRepo.On("LockRequestByID", ctx, mock.Anything, "req-1").Return(req, nil).Once()
	suite.itemRepo.On("LockItemByID", ctx, mock.Anything, "item-a4").Return(&suite.item, nil).Once()
	suite.quotaRepo.On("LockQuota", ctx, mock.Anything, "item-a4", "unit-y").
		Return(&domain.Quota{ItemID: "item-a4", UnitID: "unit-y", QuotaMax: 10, QuotaUsed: 8}, nil).Once()

	_, err := suite.service.Approve(ctx, "req-1", suite.admin)

	var quotaErr *apperrors.QuotaExceededError
	suite.Require().True(errors.As(err, &quotaErr))
	suite.Equal(10, quotaErr.Max)
	suite.Equal(8, quotaErr.Used)
	suite.Equal(3, quotaErr.Requested)
	suite.quotaRepo.AssertNotCalled(suite.T(), "AddQuotaUsedInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.itemRepo.AssertNotCalled(suite.T(), "DecrementStockInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.Empty(suite.publisher.Types())
}

func (suite *ApprovalServiceTestSuite) TestApprove_ReservesQuota() {
	ctx := context.Background()
	req := suite.request(domain.StatusPending, 2)

	suite.requestRepo.On("LockRequestByID", ctx, mock.Anything, "req-1").Return(req, nil).Once()
	suite.itemRepo.On("LockItemByID", ctx, mock.Anything, "item-a4").Return(&suite.item, nil).Once()
	suite.quotaRepo.On("LockQuota", ctx, mock.Anything, "item-a4", "unit-y").
		Return(&domain.Quota{ItemID: "item-a4", UnitID: "unit-y", QuotaMax: 10, QuotaUsed: 8}, nil).Once()
	suite.quotaRepo.On("AddQuotaUsedInTx", ctx, mock.Anything, "item-a4", "unit-y", 2, "admin-1", mock.Anything).Return(nil).Once()
	suite.itemRepo.On("DecrementStockInTx", ctx, mock.Anything, "item-a4", 2, "admin-1", mock.Anything).Return(48, nil).Once()
	suite.movementRepo.On("SaveOutgoingInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	suite.requestRepo.On("UpdateRequestInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	_, err := suite.service.Approve(ctx, "req-1", suite.admin)

	suite.Require().NoError(err)
	suite.quotaRepo.AssertExpectations(suite.T())
}

func (suite *ApprovalServiceTestSuite) TestApprove_AlreadyProcessed() {
	ctx := context.Background()
	for _, status := range []domain.RequestStatus{domain.StatusApproved, domain.StatusRejected, domain.StatusApprovalReview} {
		suite.Run(string(status), func() {
			suite.SetupTest()
			suite.requestRepo.On("LockRequestByID", ctx, mock.Anything, "req-1").Return(suite.request(status, 3), nil).Once()

			_, err := suite.service.Approve(ctx, "req-1", suite.admin)

			suite.ErrorIs(err, apperrors.ErrInvalidStateTransition)
			suite.Contains(err.Error(), "already processed")
			suite.itemRepo.AssertNotCalled(suite.T(), "LockItemByID", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func (suite *ApprovalServiceTestSuite) TestApprove_RequestNotFound() {
	ctx := context.Background()
	suite.requestRepo.On("LockRequestByID", ctx, mock.Anything, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Approve(ctx, "missing", suite.admin)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ApprovalServiceTestSuite) TestApprove_ResolvesFreeTextName() {
	ctx := context.Background()
	req := suite.request(domain.StatusPending, 1)
	req.ItemID = nil
	req.ItemName = "kertas a4"

	suite.requestRepo.On("LockRequestByID", ctx, mock.Anything, "req-1").Return(req, nil).Once()
	suite.itemRepo.On("FindItemsByName", ctx, mock.Anything, "kertas a4", domain.MatchExact).Return([]domain.Item{}, nil).Once()
	suite.itemRepo.On("FindItemsByName", ctx, mock.Anything, "kertas a4", domain.MatchCaseInsensitive).Return([]domain.Item{suite.item}, nil).Once()
	suite.itemRepo.On("LockItemByID", ctx, mock.Anything, "item-a4").Return(&suite.item, nil).Once()
	suite.quotaRepo.On("LockQuota", ctx, mock.Anything, "item-a4", "unit-y").Return(nil, apperrors.ErrNotFound).Once()
	suite.itemRepo.On("DecrementStockInTx", ctx, mock.Anything, "item-a4", 1, "admin-1", mock.Anything).Return(49, nil).Once()
	suite.movementRepo.On("SaveOutgoingInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	suite.requestRepo.On("UpdateRequestInTx", ctx, mock.Anything, mock.MatchedBy(func(r domain.Request) bool {
		return r.ItemID != nil && *r.ItemID == "item-a4"
	})).Return(nil).Once()

	_, err := suite.service.Approve(ctx, "req-1", suite.admin)

	suite.Require().NoError(err)
	suite.itemRepo.AssertNotCalled(suite.T(), "FindItemsByName", mock.Anything, mock.Anything, "kertas a4", domain.MatchContains)
}

func (suite *ApprovalServiceTestSuite) TestApprove_AmbiguousName() {
	ctx := context.Background()
	req := suite.request(domain.StatusPending, 1)
	req.ItemID = nil
	req.ItemName = "pen"

	suite.requestRepo.On("LockRequestByID", ctx, mock.Anything, "req-1").Return(req, nil).Once()
	suite.itemRepo.On("FindItemsByName", ctx, mock.Anything, "pen", domain.MatchExact).Return([]domain.Item{}, nil).Once()
	suite.itemRepo.On("FindItemsByName", ctx, mock.Anything, "pen", domain.MatchCaseInsensitive).Return([]domain.Item{}, nil).Once()
	suite.itemRepo.On("FindItemsByName", ctx, mock.Anything, "pen", domain.MatchContains).
		Return([]domain.Item{{ItemID: "1", Name: "Pen Blue"}, {ItemID: "2", Name: "Pen Red"}}, nil).Once()

	_, err := suite.service.Approve(ctx, "req-1", suite.admin)

	var ambErr *apperrors.AmbiguousItemReferenceError
	suite.Require().True(errors.As(err, &ambErr))
	suite.Equal([]string{"Pen Blue", "Pen Red"}, ambErr.Candidates)
}

func (suite *ApprovalServiceTestSuite) TestApprove_ItemNotFound() {
	ctx := context.Background()
	req := suite.request(domain.StatusPending, 1)
	req.ItemID = nil
	req.ItemName = "Unicorn"

	suite.requestRepo.On("LockRequestByID", ctx, mock.Anything, "req-1").Return(req, nil).Once()
	suite.itemRepo.On("FindItemsByName", ctx, mock.Anything, "Unicorn", mock.Anything).Return([]domain.Item{}, nil).Times(3)

	_, err := suite.service.Approve(ctx, "req-1", suite.admin)

	suite.ErrorIs(err, apperrors.ErrItemNotFound)
	suite.Contains(err.Error(), "Unicorn")
}

func (suite *ApprovalServiceTestSuite) TestApprove_LowStockNotifiesAdmins() {
	ctx := context.Background()
	req := suite.request(domain.StatusPending, 46)

	suite.requestRepo.On("LockRequestByID", ctx, mock.Anything, "req-1").Return(req, nil).Once()
	suite.itemRepo.On("LockItemByID", ctx, mock.Anything, "item-a4").Return(&suite.item, nil).Once()
	suite.quotaRepo.On("LockQuota", ctx, mock.Anything, "item-a4", "unit-y").Return(nil, apperrors.ErrNotFound).Once()
	suite.itemRepo.On("DecrementStockInTx", ctx, mock.Anything, "item-a4", 46, "admin-1", mock.Anything).Return(4, nil).Once()
	suite.movementRepo.On("SaveOutgoingInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	suite.requestRepo.On("UpdateRequestInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	_, err := suite.service.Approve(ctx, "req-1", suite.admin)

	suite.Require().NoError(err)
	suite.Equal([]domain.EventType{domain.EventRequestApproved, domain.EventStockLow}, suite.publisher.Types())
	suite.Equal("admin-1", suite.publisher.Events[1].UserID)
}

func (suite *ApprovalServiceTestSuite) TestFinalize_AdjustedQuantity() {
	ctx := context.Background()
	req := suite.request(domain.StatusApprovalReview, 10)
	suite.item.Quantity = 8

	suite.requestRepo.On("LockRequestByID", ctx, mock.Anything, "req-1").Return(req, nil).Once()
	suite.itemRepo.On("LockItemByID", ctx, mock.Anything, "item-a4").Return(&suite.item, nil).Once()
	suite.quotaRepo.On("LockQuota", ctx, mock.Anything, "item-a4", "unit-y").Return(nil, apperrors.ErrNotFound).Once()
	suite.itemRepo.On("DecrementStockInTx", ctx, mock.Anything, "item-a4", 8, "admin-1", mock.Anything).Return(0, nil).Once()
	suite.movementRepo.On("SaveOutgoingInTx", ctx, mock.Anything, mock.MatchedBy(func(m domain.OutgoingMovement) bool {
		return m.Quantity == 8 && m.MovementDate.Equal(req.RequestDate)
	})).Return(nil).Once()
	suite.requestRepo.On("UpdateRequestInTx", ctx, mock.Anything, mock.MatchedBy(func(r domain.Request) bool {
		return r.Status == domain.StatusApproved && *r.ApprovedQuantity == 8
	})).Return(nil).Once()

	result, err := suite.service.Finalize(ctx, "req-1", dto.FinalizeRequest{FinalQuantity: ptr(8)}, suite.admin)

	suite.Require().NoError(err)
	suite.Equal(8, *result.ApprovedQuantity)
}

func (suite *ApprovalServiceTestSuite) TestFinalize_MoreThanStock() {
	ctx := context.Background()
	req := suite.request(domain.StatusApprovalReview, 10)
	suite.item.Quantity = 8

	suite.requestRepo.On("LockRequestByID", ctx, mock.Anything, "req-1").Return(req, nil).Once()
	suite.itemRepo.On("LockItemByID", ctx, mock.Anything, "item-a4").Return(&suite.item, nil).Once()

	_, err := suite.service.Finalize(ctx, "req-1", dto.FinalizeRequest{FinalQuantity: ptr(9)}, suite.admin)

	suite.ErrorIs(err, apperrors.ErrInsufficientStock)
	suite.itemRepo.AssertNotCalled(suite.T(), "DecrementStockInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestFinalize_QuantityOutOfRange() {
	ctx := context.Background()

	_, err := suite.service.Finalize(ctx, "req-1", dto.FinalizeRequest{FinalQuantity: ptr(0)}, suite.admin)
	suite.ErrorIs(err, apperrors.ErrInvalidQuantity)
	suite.Zero(suite.tx.Commits + suite.tx.Rollbacks)

	_, err = suite.service.Finalize(ctx, "req-1", dto.FinalizeRequest{}, suite.admin)
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.requestRepo.On("LockRequestByID", ctx, mock.Anything, "req-1").Return(suite.request(domain.StatusApprovalReview, 10), nil).Once()
	_, err = suite.service.Finalize(ctx, "req-1", dto.FinalizeRequest{FinalQuantity: ptr(11)}, suite.admin)
	suite.ErrorIs(err, apperrors.ErrInvalidQuantity)
	suite.itemRepo.AssertNotCalled(suite.T(), "LockItemByID", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestFinalize_RequiresReview() {
	ctx := context.Background()
	suite.requestRepo.On("LockRequestByID", ctx, mock.Anything, "req-1").Return(suite.request(domain.StatusPending, 10), nil).Once()

	_, err := suite.service.Finalize(ctx, "req-1", dto.FinalizeRequest{FinalQuantity: ptr(5)}, suite.admin)

	suite.ErrorIs(err, apperrors.ErrInvalidStateTransition)
}

func (suite *ApprovalServiceTestSuite) TestMoveToReview() {
	ctx := context.Background()
	suite.requestRepo.On("LockRequestByID", ctx, mock.Anything, "req-1").Return(suite.request(domain.StatusPending, 10), nil).Once()
	suite.requestRepo.On("UpdateRequestInTx", ctx, mock.Anything, mock.MatchedBy(func(r domain.Request) bool {
		return r.Status == domain.StatusApprovalReview
	})).Return(nil).Once()

	result, err := suite.service.MoveToReview(ctx, "req-1", suite.admin)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusApprovalReview, result.Status)
	suite.itemRepo.AssertNotCalled(suite.T(), "LockItemByID", mock.Anything, mock.Anything, mock.Anything)
	suite.Equal([]domain.EventType{domain.EventRequestInReview}, suite.publisher.Types())
}

func (suite *ApprovalServiceTestSuite) TestReject_ThenApproveFails() {
	ctx := context.Background()
	pending := suite.request(domain.StatusPending, 3)
	suite.requestRepo.On("LockRequestByID", ctx, mock.Anything, "req-1").Return(pending, nil).Once()
	suite.requestRepo.On("UpdateRequestInTx", ctx, mock.Anything, mock.MatchedBy(func(r domain.Request) bool {
		return r.Status == domain.StatusRejected && r.RejectionReason != nil && *r.RejectionReason == "over budget"
	})).Return(nil).Once()

	rejected, err := suite.service.Reject(ctx, "req-1", dto.RejectRequest{Reason: " over budget "}, suite.admin)
	suite.Require().NoError(err)
	suite.Equal(domain.StatusRejected, rejected.Status)

	suite.requestRepo.On("LockRequestByID", ctx, mock.Anything, "req-1").Return(rejected, nil).Once()
	_, err = suite.service.Approve(ctx, "req-1", suite.admin)

	suite.ErrorIs(err, apperrors.ErrInvalidStateTransition)
	suite.itemRepo.AssertNotCalled(suite.T(), "LockItemByID", mock.Anything, mock.Anything, mock.Anything)
	suite.quotaRepo.AssertNotCalled(suite.T(), "LockQuota", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestApprove_ProcureWithoutCatalogItem() {
	ctx := context.Background()
	req := suite.request(domain.StatusPending, 4)
	req.ItemID = nil
	req.ItemName = "Laminating Film"
	req.Fulfillment = domain.FulfillProcure

	suite.requestRepo.On("LockRequestByID", ctx, mock.Anything, "req-1").Return(req, nil).Once()
	suite.itemRepo.On("FindItemsByName", ctx, mock.Anything, "Laminating Film", mock.Anything).Return([]domain.Item{}, nil).Times(3)
	suite.requestRepo.On("UpdateRequestInTx", ctx, mock.Anything, mock.MatchedBy(func(r domain.Request) bool {
		return r.Status == domain.StatusApproved && r.ItemID == nil && *r.ApprovedQuantity == 4
	})).Return(nil).Once()

	result, err := suite.service.Approve(ctx, "req-1", suite.admin)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusApproved, result.Status)
	suite.itemRepo.AssertNotCalled(suite.T(), "DecrementStockInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.movementRepo.AssertNotCalled(suite.T(), "SaveOutgoingInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestRecordIntakeAndHandout_CreatesItem() {
	ctx := context.Background()
	req := suite.request(domain.StatusApproved, 4)
	req.ItemID = nil
	req.ItemName = "Laminating Film"
	req.Fulfillment = domain.FulfillProcure
	req.ApprovedQuantity = ptr(4)

	var created domain.Item
	suite.requestRepo.On("LockRequestByID", ctx, mock.Anything, "req-1").Return(req, nil).Once()
	suite.itemRepo.On("FindItemsByName", ctx, mock.Anything, "Laminating Film", mock.Anything).Return([]domain.Item{}, nil).Times(3)
	suite.itemRepo.On("SaveItemInTx", ctx, mock.Anything, mock.MatchedBy(func(i domain.Item) bool {
		return i.Name == "Laminating Film" && i.Code == "ATK-099" && i.Location == "Shelf C" && i.Quantity == 0
	})).Run(func(args mock.Arguments) {
		created = args.Get(2).(domain.Item)
		suite.itemRepo.On("LockItemByID", ctx, mock.Anything, created.ItemID).Return(&created, nil).Once()
	}).Return(nil).Once()
	// A brand-new item has no quota row yet.
	suite.quotaRepo.On("LockQuota", ctx, mock.Anything, mock.Anything, "unit-y").Return(nil, apperrors.ErrNotFound).Once()
	suite.itemRepo.On("IncrementStockInTx", ctx, mock.Anything, mock.Anything, 10, "admin-1", mock.Anything).Return(10, nil).Once()
	suite.movementRepo.On("SaveIncomingInTx", ctx, mock.Anything, mock.MatchedBy(func(m domain.IncomingMovement) bool {
		return m.Quantity == 10 && m.MovementDate.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) && m.PersonInCharge == "Budi"
	})).Return(nil).Once()
	suite.itemRepo.On("DecrementStockInTx", ctx, mock.Anything, mock.Anything, 4, "admin-1", mock.Anything).Return(6, nil).Once()
	suite.movementRepo.On("SaveOutgoingInTx", ctx, mock.Anything, mock.MatchedBy(func(m domain.OutgoingMovement) bool {
		return m.Quantity == 4 && m.MovementDate.Equal(req.RequestDate)
	})).Return(nil).Once()
	suite.requestRepo.On("UpdateRequestInTx", ctx, mock.Anything, mock.MatchedBy(func(r domain.Request) bool {
		return r.Status == domain.StatusFinished && r.ItemID != nil
	})).Return(nil).Once()

	result, err := suite.service.RecordIntakeAndHandout(ctx, "req-1", dto.HandoutRequest{
		ItemCode: "ATK-099", Location: "Shelf C", Quantity: 10, UnitOfMeasure: "pack", Date: "2024-02-01", PersonInCharge: "Budi",
	}, suite.admin)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusFinished, result.Status)
	suite.Equal(created.ItemID, *result.ItemID)
	suite.itemRepo.AssertExpectations(suite.T())
	suite.movementRepo.AssertExpectations(suite.T())
	suite.itemRepo.AssertNotCalled(suite.T(), "UpdateItemDetailsInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.Equal([]domain.EventType{domain.EventRequestFinished}, suite.publisher.Types())
}

// procureApprovedBeforeCatalog is a PROCURE request approved while its item was not in the catalog,
// so no quota was reserved at approval.
func (suite *ApprovalServiceTestSuite) procureApprovedBeforeCatalog() *domain.Request {
	req := suite.request(domain.StatusApproved, 4)
	req.ItemID = nil
	req.ItemName = "Laminating Film"
	req.Fulfillment = domain.FulfillProcure
	req.ApprovedQuantity = ptr(4)
	return req
}

func (suite *ApprovalServiceTestSuite) TestRecordIntakeAndHandout_QuotaExceededForItemAddedAfterApproval() {
	ctx := context.Background()
	laminating := domain.Item{ItemID: "item-lam", Name: "Laminating Film", Quantity: 0, UnitOfMeasure: "pack"}

	suite.requestRepo.On("LockRequestByID", ctx, mock.Anything, "req-1").Return(suite.procureApprovedBeforeCatalog(), nil).Once()
	suite.itemRepo.On("FindItemsByName", ctx, mock.Anything, "Laminating Film", mock.Anything).Return([]domain.Item{laminating}, nil).Once()
	suite.itemRepo.On("LockItemByID", ctx, mock.Anything, "item-lam").Return(&laminating, nil).Once()
	suite.quotaRepo.On("LockQuota", ctx, mock.Anything, "item-lam", "unit-y").
		Return(&domain.Quota{ItemID: "item-lam", UnitID: "unit-y", QuotaMax: 10, QuotaUsed: 8}, nil).Once()

	_, err := suite.service.RecordIntakeAndHandout(ctx, "req-1", dto.HandoutRequest{
		ItemCode: "ATK-099", Quantity: 10, UnitOfMeasure: "pack", Date: "2024-02-01",
	}, suite.admin)

	var quotaErr *apperrors.QuotaExceededError
	suite.Require().True(errors.As(err, &quotaErr))
	suite.Equal(4, quotaErr.Requested)
	suite.quotaRepo.AssertNotCalled(suite.T(), "AddQuotaUsedInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.itemRepo.AssertNotCalled(suite.T(), "IncrementStockInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.itemRepo.AssertNotCalled(suite.T(), "UpdateItemDetailsInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.Equal(1, suite.tx.Rollbacks)
	suite.Empty(suite.publisher.Types())
}

func (suite *ApprovalServiceTestSuite) TestRecordIntakeAndHandout_ReservesQuotaAndUpdatesExistingItem() {
	ctx := context.Background()
	laminating := domain.Item{ItemID: "item-lam", Name: "Laminating Film", Code: "OLD-1", Quantity: 0, UnitOfMeasure: "pack", Location: "Shelf A"}

	suite.requestRepo.On("LockRequestByID", ctx, mock.Anything, "req-1").Return(suite.procureApprovedBeforeCatalog(), nil).Once()
	suite.itemRepo.On("FindItemsByName", ctx, mock.Anything, "Laminating Film", mock.Anything).Return([]domain.Item{laminating}, nil).Once()
	suite.itemRepo.On("LockItemByID", ctx, mock.Anything, "item-lam").Return(&laminating, nil).Once()
	suite.quotaRepo.On("LockQuota", ctx, mock.Anything, "item-lam", "unit-y").
		Return(&domain.Quota{ItemID: "item-lam", UnitID: "unit-y", QuotaMax: 10, QuotaUsed: 2}, nil).Once()
	suite.quotaRepo.On("AddQuotaUsedInTx", ctx, mock.Anything, "item-lam", "unit-y", 4, "admin-1", mock.Anything).Return(nil).Once()
	suite.itemRepo.On("UpdateItemDetailsInTx", ctx, mock.Anything, mock.MatchedBy(func(i domain.Item) bool {
		return i.ItemID == "item-lam" && i.Code == "ATK-099" && i.Location == "Shelf C" && i.UnitOfMeasure == "pack" && i.LastUpdatedBy == "admin-1"
	})).Return(nil).Once()
	suite.itemRepo.On("IncrementStockInTx", ctx, mock.Anything, "item-lam", 10, "admin-1", mock.Anything).Return(10, nil).Once()
	suite.movementRepo.On("SaveIncomingInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	suite.itemRepo.On("DecrementStockInTx", ctx, mock.Anything, "item-lam", 4, "admin-1", mock.Anything).Return(6, nil).Once()
	suite.movementRepo.On("SaveOutgoingInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	suite.requestRepo.On("UpdateRequestInTx", ctx, mock.Anything, mock.MatchedBy(func(r domain.Request) bool {
		return r.Status == domain.StatusFinished && r.ItemID != nil && *r.ItemID == "item-lam"
	})).Return(nil).Once()

	result, err := suite.service.RecordIntakeAndHandout(ctx, "req-1", dto.HandoutRequest{
		ItemCode: "ATK-099", Location: "Shelf C", Quantity: 10, UnitOfMeasure: "pack", Date: "2024-02-01",
	}, suite.admin)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusFinished, result.Status)
	suite.quotaRepo.AssertExpectations(suite.T())
	suite.itemRepo.AssertExpectations(suite.T())
	suite.Equal(1, suite.tx.Commits)
}

func (suite *ApprovalServiceTestSuite) TestRecordIntakeAndHandout_ReservedAtApprovalIsNotReservedTwice() {
	ctx := context.Background()
	req := suite.request(domain.StatusApproved, 4)
	req.Fulfillment = domain.FulfillProcure
	req.ApprovedQuantity = ptr(4)

	suite.requestRepo.On("LockRequestByID", ctx, mock.Anything, "req-1").Return(req, nil).Once()
	suite.itemRepo.On("LockItemByID", ctx, mock.Anything, "item-a4").Return(&suite.item, nil).Once()
	suite.itemRepo.On("IncrementStockInTx", ctx, mock.Anything, "item-a4", 10, "admin-1", mock.Anything).Return(60, nil).Once()
	suite.movementRepo.On("SaveIncomingInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	suite.itemRepo.On("DecrementStockInTx", ctx, mock.Anything, "item-a4", 4, "admin-1", mock.Anything).Return(56, nil).Once()
	suite.movementRepo.On("SaveOutgoingInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	suite.requestRepo.On("UpdateRequestInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	// Same code, unit and location as the catalog: nothing to update.
	_, err := suite.service.RecordIntakeAndHandout(ctx, "req-1", dto.HandoutRequest{
		ItemCode: "ATK-001", Quantity: 10, UnitOfMeasure: "rim", Date: "2024-02-01",
	}, suite.admin)

	suite.Require().NoError(err)
	suite.quotaRepo.AssertNotCalled(suite.T(), "LockQuota", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.itemRepo.AssertNotCalled(suite.T(), "UpdateItemDetailsInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ApprovalServiceTestSuite) TestRecordIntakeAndHandout_FromStockRequestRefused() {
	ctx := context.Background()
	suite.requestRepo.On("LockRequestByID", ctx, mock.Anything, "req-1").Return(suite.request(domain.StatusApproved, 4), nil).Once()

	_, err := suite.service.RecordIntakeAndHandout(ctx, "req-1", dto.HandoutRequest{
		ItemCode: "ATK-001", Quantity: 4, UnitOfMeasure: "rim", Date: "2024-02-01",
	}, suite.admin)

	suite.ErrorIs(err, apperrors.ErrInvalidStateTransition)
}

func (suite *ApprovalServiceTestSuite) TestRecordIntakeAndHandout_Validation() {
	_, err := suite.service.RecordIntakeAndHandout(context.Background(), "req-1", dto.HandoutRequest{
		ItemCode: "ATK-001", Quantity: 0, UnitOfMeasure: "rim", Date: "01/02/2024",
	}, suite.admin)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Zero(suite.tx.Commits + suite.tx.Rollbacks)
}

func (suite *ApprovalServiceTestSuite) TestApprove_BusyIsPropagated() {
	ctx := context.Background()
	suite.requestRepo.On("LockRequestByID", ctx, mock.Anything, "req-1").Return(nil, apperrors.ErrBusy).Once()

	_, err := suite.service.Approve(ctx, "req-1", suite.admin)

	suite.ErrorIs(err, apperrors.ErrBusy)
	suite.Empty(suite.publisher.Types())
}

func TestApprovalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ApprovalServiceTestSuite))
}
