package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/atk_inventory_app/internal/apperrors"
	"github.com/SscSPs/atk_inventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/atk_inventory_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/atk_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/atk_inventory_app/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// approvalService moves requests through their lifecycle. Every operation is one transaction
// that locks rows in the order request, item, quota. Events are published only after commit.
type approvalService struct {
	BaseService
	txManager    portsrepo.TransactionManager
	requestRepo  portsrepo.RequestTransactionSupport
	itemRepo     portsrepo.ItemTransactionSupport
	movementRepo portsrepo.MovementWriter
	quotas       quotaLedger
	resolver     itemResolver
	notifier     *eventNotifier
}

// NewApprovalService creates a new ApprovalService.
func NewApprovalService(repos portsrepo.RepositoryProvider, publisher portssvc.EventPublisher) portssvc.ApprovalSvcFacade {
	return &approvalService{
		BaseService:  newBaseService(),
		txManager:    repos.TxManager,
		requestRepo:  repos.RequestRepo,
		itemRepo:     repos.ItemRepo,
		movementRepo: repos.MovementRepo,
		quotas:       quotaLedger{quotas: repos.QuotaRepo},
		resolver:     itemResolver{items: repos.ItemRepo},
		notifier:     &eventNotifier{publisher: publisher, users: repos.UserRepo},
	}
}

var _ portssvc.ApprovalSvcFacade = (*approvalService)(nil)

// outcome collects what a committed transaction needs to announce.
type outcome struct {
	request  domain.Request
	lowStock *domain.Item
}

// lockForTransition locks the request and checks that it may move from one of sources to target.
func (s *approvalService) lockForTransition(ctx context.Context, tx pgx.Tx, requestID string, target domain.RequestStatus, sources ...domain.RequestStatus) (*domain.Request, error) {
	req, err := s.requestRepo.LockRequestByID(ctx, tx, requestID)
	if err != nil {
		return nil, err
	}
	for _, src := range sources {
		if req.Status == src && req.CanMoveTo(target) {
			return req, nil
		}
	}
	return nil, &apperrors.InvalidStateTransitionError{RequestID: req.RequestID, From: string(req.Status), To: string(target)}
}

// markProcessed stamps the status change onto the locked request and writes it.
func (s *approvalService) markProcessed(ctx context.Context, tx pgx.Tx, req *domain.Request, status domain.RequestStatus, actor domain.Principal, now time.Time) error {
	req.Status = status
	req.ProcessedBy = &actor.UserID
	req.ProcessedAt = &now
	req.LastUpdatedAt = now
	req.LastUpdatedBy = actor.UserID
	return s.requestRepo.UpdateRequestInTx(ctx, tx, *req)
}

func (s *approvalService) MoveToReview(ctx context.Context, requestID string, actor domain.Principal) (*domain.Request, error) {
	var result domain.Request
	err := s.txManager.RunInTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		req, err := s.lockForTransition(ctx, tx, requestID, domain.StatusApprovalReview, domain.StatusPending)
		if err != nil {
			return err
		}
		if err := s.markProcessed(ctx, tx, req, domain.StatusApprovalReview, actor, s.Now()); err != nil {
			return err
		}
		result = *req
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "move to review", requestID)
		return nil, err
	}

	s.LogInfo(ctx, "Request moved to review", slog.String("request_id", requestID))
	s.announce(ctx, outcome{request: result}, domain.EventRequestInReview,
		fmt.Sprintf("Your request for %s is under review", result.ItemName))
	return &result, nil
}

// Approve grants the requested quantity of a PENDING request.
func (s *approvalService) Approve(ctx context.Context, requestID string, actor domain.Principal) (*domain.Request, error) {
	out, err := s.approve(ctx, requestID, domain.StatusPending, nil, actor)
	if err != nil {
		s.logFailure(ctx, err, "approve", requestID)
		return nil, err
	}
	return s.approved(ctx, out), nil
}

// Finalize grants an adjusted quantity of a request under review.
func (s *approvalService) Finalize(ctx context.Context, requestID string, req dto.FinalizeRequest, actor domain.Principal) (*domain.Request, error) {
	if err := validateInput(req); err != nil {
		return nil, err
	}
	if *req.FinalQuantity <= 0 {
		return nil, fmt.Errorf("%w: final quantity must be positive, got %d", apperrors.ErrInvalidQuantity, *req.FinalQuantity)
	}

	out, err := s.approve(ctx, requestID, domain.StatusApprovalReview, req.FinalQuantity, actor)
	if err != nil {
		s.logFailure(ctx, err, "finalize", requestID)
		return nil, err
	}
	return s.approved(ctx, out), nil
}

// approve runs the approval transaction. finalQty nil means the requested quantity.
// FROM_STOCK requests deduct stock and write the outgoing line now. PROCURE requests only fix the
// approved quantity and reserve quota when the item already exists; stock moves at handout.
func (s *approvalService) approve(ctx context.Context, requestID string, source domain.RequestStatus, finalQty *int, actor domain.Principal) (*outcome, error) {
	var out outcome
	err := s.txManager.RunInTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		req, err := s.lockForTransition(ctx, tx, requestID, domain.StatusApproved, source)
		if err != nil {
			return err
		}

		qty := req.RequestedQuantity
		if finalQty != nil {
			if *finalQty > req.RequestedQuantity {
				return fmt.Errorf("%w: final quantity %d exceeds requested %d for request %s",
					apperrors.ErrInvalidQuantity, *finalQty, req.RequestedQuantity, req.RequestID)
			}
			qty = *finalQty
		}

		item, err := s.resolver.resolveAndLock(ctx, tx, req)
		if req.Fulfillment == domain.FulfillProcure && errors.Is(err, apperrors.ErrItemNotFound) {
			// Not in the catalog yet; the item is created at handout.
			item, err = nil, nil
		}
		if err != nil {
			return err
		}

		now := s.Now()
		if item != nil {
			if req.Fulfillment == domain.FulfillFromStock && qty > item.Quantity {
				return &apperrors.InsufficientStockError{
					ItemID:    item.ItemID,
					ItemName:  item.Name,
					Available: item.Quantity,
					Requested: qty,
				}
			}
			if err := s.quotas.CheckAndReserve(ctx, tx, item.ItemID, req.UnitID, qty, actor.UserID, now); err != nil {
				return err
			}
			if req.Fulfillment == domain.FulfillFromStock {
				newQty, err := s.itemRepo.DecrementStockInTx(ctx, tx, item.ItemID, qty, actor.UserID, now)
				if err != nil {
					return err
				}
				if err := s.movementRepo.SaveOutgoingInTx(ctx, tx, outgoingMovement(*item, *req, qty, actor.UserID, now)); err != nil {
					return err
				}
				item.Quantity = newQty
				if item.IsLowStock() {
					out.lowStock = item
				}
			}
			req.ItemID = &item.ItemID
		}

		req.ApprovedQuantity = &qty
		if err := s.markProcessed(ctx, tx, req, domain.StatusApproved, actor, now); err != nil {
			return err
		}
		out.request = *req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *approvalService) approved(ctx context.Context, out *outcome) *domain.Request {
	r := out.request
	s.LogInfo(ctx, "Request approved",
		slog.String("request_id", r.RequestID),
		slog.Int("approved_quantity", r.HandoutQuantity()),
		slog.String("fulfillment", string(r.Fulfillment)))
	s.announce(ctx, *out, domain.EventRequestApproved,
		fmt.Sprintf("Your request for %s was approved: %d %s", r.ItemName, r.HandoutQuantity(), r.UnitOfMeasure))
	return &r
}

// Reject closes a PENDING or APPROVAL_REVIEW request without touching stock or quota.
func (s *approvalService) Reject(ctx context.Context, requestID string, in dto.RejectRequest, actor domain.Principal) (*domain.Request, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	var result domain.Request
	err := s.txManager.RunInTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		req, err := s.lockForTransition(ctx, tx, requestID, domain.StatusRejected, domain.StatusPending, domain.StatusApprovalReview)
		if err != nil {
			return err
		}
		if reason := strings.TrimSpace(in.Reason); reason != "" {
			req.RejectionReason = &reason
		}
		if err := s.markProcessed(ctx, tx, req, domain.StatusRejected, actor, s.Now()); err != nil {
			return err
		}
		result = *req
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "reject", requestID)
		return nil, err
	}

	s.LogInfo(ctx, "Request rejected", slog.String("request_id", requestID))
	msg := fmt.Sprintf("Your request for %s was rejected", result.ItemName)
	if result.RejectionReason != nil {
		msg += ": " + *result.RejectionReason
	}
	s.announce(ctx, outcome{request: result}, domain.EventRequestRejected, msg)
	return &result, nil
}

// RecordIntakeAndHandout finishes an approved procurement request: the purchased quantity is taken
// into stock and the approved quantity handed out. The item is created when it is not yet in the catalog,
// otherwise its code, unit of measure and location are updated from the purchase. Requests approved
// before their item existed reserve quota here.
func (s *approvalService) RecordIntakeAndHandout(ctx context.Context, requestID string, in dto.HandoutRequest, actor domain.Principal) (*domain.Request, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	intakeDate, err := dto.ParseDate(in.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	var out outcome
	err = s.txManager.RunInTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		req, err := s.lockForTransition(ctx, tx, requestID, domain.StatusFinished, domain.StatusApproved)
		if err != nil {
			return err
		}

		now := s.Now()
		// Approval reserves quota and links the item only when the item was already in the catalog.
		reserved := req.ItemID != nil
		created := false
		item, err := s.resolver.resolveAndLock(ctx, tx, req)
		if errors.Is(err, apperrors.ErrItemNotFound) {
			item, err = s.createProcuredItem(ctx, tx, req, in, actor.UserID, now)
			created = true
		}
		if err != nil {
			return err
		}

		handout := req.HandoutQuantity()
		if !reserved {
			if err := s.quotas.CheckAndReserve(ctx, tx, item.ItemID, req.UnitID, handout, actor.UserID, now); err != nil {
				return err
			}
		}
		if !created {
			if err := s.applyPurchaseDetails(ctx, tx, item, in, actor.UserID, now); err != nil {
				return err
			}
		}

		if _, err := s.itemRepo.IncrementStockInTx(ctx, tx, item.ItemID, in.Quantity, actor.UserID, now); err != nil {
			return err
		}
		personInCharge := in.PersonInCharge
		if personInCharge == "" {
			personInCharge = req.Receiver
		}
		if err := s.movementRepo.SaveIncomingInTx(ctx, tx, incomingMovement(*item, &req.RequestID, in.Quantity, personInCharge, intakeDate, actor.UserID, now)); err != nil {
			return err
		}

		newQty, err := s.itemRepo.DecrementStockInTx(ctx, tx, item.ItemID, handout, actor.UserID, now)
		if err != nil {
			return err
		}
		if err := s.movementRepo.SaveOutgoingInTx(ctx, tx, outgoingMovement(*item, *req, handout, actor.UserID, now)); err != nil {
			return err
		}
		item.Quantity = newQty
		if item.IsLowStock() {
			out.lowStock = item
		}

		req.ItemID = &item.ItemID
		if err := s.markProcessed(ctx, tx, req, domain.StatusFinished, actor, now); err != nil {
			return err
		}
		out.request = *req
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "record intake and handout", requestID)
		return nil, err
	}

	r := out.request
	s.LogInfo(ctx, "Procurement request handed out",
		slog.String("request_id", r.RequestID),
		slog.Int("intake_quantity", in.Quantity),
		slog.Int("handout_quantity", r.HandoutQuantity()))
	s.announce(ctx, out, domain.EventRequestFinished,
		fmt.Sprintf("%d %s of %s are ready for %s", r.HandoutQuantity(), r.UnitOfMeasure, r.ItemName, r.Receiver))
	return &r, nil
}

// createProcuredItem adds the requested item to the catalog with zero stock and locks it.
func (s *approvalService) createProcuredItem(ctx context.Context, tx pgx.Tx, req *domain.Request, in dto.HandoutRequest, userID string, now time.Time) (*domain.Item, error) {
	item := domain.Item{
		ItemID:        uuid.NewString(),
		Name:          strings.TrimSpace(req.ItemName),
		Code:          strings.TrimSpace(in.ItemCode),
		UnitOfMeasure: in.UnitOfMeasure,
		Location:      in.Location,
		AuditFields:   domain.NewAuditFields(userID, now),
	}
	if err := s.itemRepo.SaveItemInTx(ctx, tx, item); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Item created at handout", slog.String("item_id", item.ItemID), slog.String("name", item.Name))
	return s.itemRepo.LockItemByID(ctx, tx, item.ItemID)
}

// applyPurchaseDetails copies the code, unit of measure and location of a purchase onto an existing item.
// Blank fields keep the catalog value. item must be locked.
func (s *approvalService) applyPurchaseDetails(ctx context.Context, tx pgx.Tx, item *domain.Item, in dto.HandoutRequest, userID string, now time.Time) error {
	changed := false
	set := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" && v != *dst {
			*dst = v
			changed = true
		}
	}
	set(&item.Code, in.ItemCode)
	set(&item.UnitOfMeasure, in.UnitOfMeasure)
	set(&item.Location, in.Location)
	if !changed {
		return nil
	}
	item.LastUpdatedAt = now
	item.LastUpdatedBy = userID
	return s.itemRepo.UpdateItemDetailsInTx(ctx, tx, *item)
}

// announce publishes the committed outcome to the requesting unit, and a low stock warning to admins.
func (s *approvalService) announce(ctx context.Context, out outcome, eventType domain.EventType, message string) {
	r := out.request
	itemID := ""
	if r.ItemID != nil {
		itemID = *r.ItemID
	}
	s.notifier.toUnit(ctx, r.UnitID, domain.Event{
		Type:       eventType,
		RequestID:  r.RequestID,
		ItemID:     itemID,
		ItemName:   r.ItemName,
		Quantity:   r.HandoutQuantity(),
		Status:     r.Status,
		Message:    message,
		Properties: map[string]any{"unit_id": r.UnitID, "fulfillment": string(r.Fulfillment)},
		OccurredAt: s.Now(),
	})

	if out.lowStock != nil {
		item := out.lowStock
		s.notifier.toAdmins(ctx, domain.Event{
			Type:       domain.EventStockLow,
			ItemID:     item.ItemID,
			ItemName:   item.Name,
			Quantity:   item.Quantity,
			Message:    fmt.Sprintf("%s is low on stock: %d %s left", item.Name, item.Quantity, item.UnitOfMeasure),
			Properties: map[string]any{"min_stock": item.MinStock},
			OccurredAt: s.Now(),
		})
	}
}

// logFailure logs business rule violations at warn level and everything else as errors.
func (s *approvalService) logFailure(ctx context.Context, err error, op string, requestID string) {
	attrs := []any{slog.String("operation", op), slog.String("request_id", requestID)}
	switch {
	case errors.Is(err, apperrors.ErrInvalidStateTransition),
		errors.Is(err, apperrors.ErrInsufficientStock),
		errors.Is(err, apperrors.ErrQuotaExceeded),
		errors.Is(err, apperrors.ErrInvalidQuantity),
		errors.Is(err, apperrors.ErrItemNotFound),
		errors.Is(err, apperrors.ErrAmbiguousItemReference),
		errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, apperrors.ErrBusy):
		s.LogWarn(ctx, err, "Request transition refused", attrs...)
	default:
		s.LogError(ctx, err, "Request transition failed", attrs...)
	}
}
