package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/atk_inventory_app/internal/apperrors"
	"github.com/SscSPs/atk_inventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/atk_inventory_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/atk_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/atk_inventory_app/internal/dto"
	"github.com/google/uuid"
)

// requestService files requests and serves request listings.
type requestService struct {
	BaseService
	requestRepo portsrepo.RequestRepositoryFacade
	itemRepo    portsrepo.ItemReader
	unitRepo    portsrepo.UnitRepositoryFacade
	notifier    *eventNotifier
}

// NewRequestService creates a new RequestService.
func NewRequestService(
	requestRepo portsrepo.RequestRepositoryFacade,
	itemRepo portsrepo.ItemReader,
	unitRepo portsrepo.UnitRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	publisher portssvc.EventPublisher,
) portssvc.RequestSvcFacade {
	return &requestService{
		BaseService: newBaseService(),
		requestRepo: requestRepo,
		itemRepo:    itemRepo,
		unitRepo:    unitRepo,
		notifier:    &eventNotifier{publisher: publisher, users: userRepo},
	}
}

var _ portssvc.RequestSvcFacade = (*requestService)(nil)

// CreateRequest files a PENDING request for the caller's unit.
// The department is a snapshot of the unit name at filing time.
func (s *requestService) CreateRequest(ctx context.Context, req dto.CreateRequestPayload, actor domain.Principal) (*domain.Request, error) {
	if err := validateInput(req); err != nil {
		return nil, err
	}
	if actor.UnitID == "" {
		return nil, fmt.Errorf("%w: only unit members can file requests", apperrors.ErrForbidden)
	}
	requestDate, err := dto.ParseDate(req.RequestDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	unit, err := s.unitRepo.FindUnitByID(ctx, actor.UnitID)
	if err != nil {
		return nil, err
	}

	if req.ItemID != nil {
		if _, err := s.itemRepo.FindItemByID(ctx, *req.ItemID); err != nil {
			return nil, err
		}
	}

	fulfillment := req.Fulfillment
	if fulfillment == "" {
		fulfillment = domain.FulfillFromStock
	}

	now := s.Now()
	request := domain.Request{
		RequestID:         uuid.NewString(),
		ItemID:            req.ItemID,
		ItemName:          strings.TrimSpace(req.ItemName),
		RequestedQuantity: req.Quantity,
		UnitOfMeasure:     req.UnitOfMeasure,
		RequestDate:       requestDate,
		Receiver:          req.Receiver,
		UnitID:            unit.UnitID,
		Department:        unit.Name,
		Status:            domain.StatusPending,
		Fulfillment:       fulfillment,
		AuditFields:       domain.NewAuditFields(actor.UserID, now),
	}

	if err := s.requestRepo.SaveRequest(ctx, request); err != nil {
		s.LogError(ctx, err, "Failed to save request", slog.String("unit_id", unit.UnitID))
		return nil, err
	}

	s.LogInfo(ctx, "Request filed",
		slog.String("request_id", request.RequestID),
		slog.String("item_name", request.ItemName),
		slog.Int("quantity", request.RequestedQuantity),
		slog.String("fulfillment", string(request.Fulfillment)))

	s.notifier.toAdmins(ctx, domain.Event{
		Type:       domain.EventRequestCreated,
		RequestID:  request.RequestID,
		ItemName:   request.ItemName,
		Quantity:   request.RequestedQuantity,
		Status:     request.Status,
		Message:    fmt.Sprintf("%s requested %d %s of %s", request.Department, request.RequestedQuantity, request.UnitOfMeasure, request.ItemName),
		Properties: map[string]any{"unit_id": request.UnitID, "fulfillment": string(request.Fulfillment)},
		OccurredAt: now,
	})
	return &request, nil
}

// GetRequest hides requests of other units from unit members.
func (s *requestService) GetRequest(ctx context.Context, requestID string, actor domain.Principal) (*domain.Request, error) {
	req, err := s.requestRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && req.UnitID != actor.UnitID {
		return nil, fmt.Errorf("request %s: %w", requestID, apperrors.ErrNotFound)
	}
	return req, nil
}

func (s *requestService) ListRequests(ctx context.Context, actor domain.Principal, params dto.ListRequestsParams) ([]domain.Request, error) {
	if err := validateInput(params); err != nil {
		return nil, err
	}
	filter := domain.RequestFilter{Limit: params.Limit, Offset: params.Offset}
	if !actor.IsAdmin() {
		filter.UnitID = actor.UnitID
	}
	if params.Status != "" {
		filter.Statuses = []domain.RequestStatus{domain.RequestStatus(params.Status)}
	}
	return s.requestRepo.ListRequests(ctx, filter)
}

// ListPending returns requests still waiting for an admin decision.
func (s *requestService) ListPending(ctx context.Context, actor domain.Principal) ([]domain.Request, error) {
	filter := domain.RequestFilter{Statuses: domain.OpenStatuses}
	if !actor.IsAdmin() {
		if actor.UnitID == "" {
			return []domain.Request{}, nil
		}
		filter.UnitID = actor.UnitID
	}
	return s.requestRepo.ListRequests(ctx, filter)
}

func (s *requestService) ListAwaitingHandout(ctx context.Context) ([]domain.Request, error) {
	return s.requestRepo.ListRequests(ctx, domain.RequestFilter{
		Statuses:    []domain.RequestStatus{domain.StatusApproved},
		Fulfillment: domain.FulfillProcure,
	})
}
