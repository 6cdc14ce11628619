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
	"github.com/jackc/pgx/v5"
)

// itemService implements the item catalog and stock intake.
type itemService struct {
	BaseService
	txManager    portsrepo.TransactionManager
	itemRepo     portsrepo.ItemRepositoryFacade
	movementRepo portsrepo.MovementWriter
	resolver     itemResolver
}

// NewItemService creates a new ItemService.
func NewItemService(txManager portsrepo.TransactionManager, itemRepo portsrepo.ItemRepositoryFacade, movementRepo portsrepo.MovementWriter) portssvc.ItemSvcFacade {
	return &itemService{
		BaseService:  newBaseService(),
		txManager:    txManager,
		itemRepo:     itemRepo,
		movementRepo: movementRepo,
		resolver:     itemResolver{items: itemRepo},
	}
}

var _ portssvc.ItemSvcFacade = (*itemService)(nil)

func (s *itemService) GetItemByID(ctx context.Context, itemID string) (*domain.Item, error) {
	return s.itemRepo.FindItemByID(ctx, itemID)
}

func (s *itemService) ListItems(ctx context.Context, limit int, offset int) ([]domain.Item, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.itemRepo.ListItems(ctx, limit, offset)
}

func (s *itemService) ListLowStockItems(ctx context.Context) ([]domain.Item, error) {
	return s.itemRepo.ListLowStockItems(ctx)
}

// ResolveItemReference applies the exact, case-insensitive, then substring match tiers.
func (s *itemService) ResolveItemReference(ctx context.Context, name string) (*domain.Item, error) {
	return s.resolver.resolveByName(ctx, nil, name)
}

// CreateItem adds an item. A positive initial quantity is booked as an intake dated today.
func (s *itemService) CreateItem(ctx context.Context, req dto.CreateItemRequest, userID string) (*domain.Item, error) {
	if err := validateInput(req); err != nil {
		return nil, err
	}

	now := s.Now()
	item := domain.Item{
		ItemID:        uuid.NewString(),
		Name:          strings.TrimSpace(req.Name),
		Code:          strings.TrimSpace(req.Code),
		UnitOfMeasure: req.UnitOfMeasure,
		Location:      req.Location,
		MinStock:      req.MinStock,
		AuditFields:   domain.NewAuditFields(userID, now),
	}

	err := s.txManager.RunInTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.itemRepo.SaveItemInTx(ctx, tx, item); err != nil {
			return err
		}
		if req.InitialQuantity == 0 {
			return nil
		}
		newQty, err := s.itemRepo.IncrementStockInTx(ctx, tx, item.ItemID, req.InitialQuantity, userID, now)
		if err != nil {
			return err
		}
		item.Quantity = newQty
		return s.movementRepo.SaveIncomingInTx(ctx, tx, incomingMovement(item, nil, req.InitialQuantity, req.PersonInCharge, dateOf(now), userID, now))
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create item", slog.String("name", item.Name))
		return nil, err
	}

	s.LogInfo(ctx, "Item created", slog.String("item_id", item.ItemID), slog.String("name", item.Name), slog.Int("quantity", item.Quantity))
	return &item, nil
}

// UpdateItem changes descriptive fields. Stock only moves through intake and approvals.
func (s *itemService) UpdateItem(ctx context.Context, itemID string, req dto.UpdateItemRequest, userID string) (*domain.Item, error) {
	if err := validateInput(req); err != nil {
		return nil, err
	}
	item, err := s.itemRepo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if req.Code != nil {
		item.Code = strings.TrimSpace(*req.Code)
	}
	if req.UnitOfMeasure != nil {
		item.UnitOfMeasure = *req.UnitOfMeasure
	}
	if req.Location != nil {
		item.Location = *req.Location
	}
	if req.MinStock != nil {
		item.MinStock = *req.MinStock
	}
	item.LastUpdatedAt = s.Now()
	item.LastUpdatedBy = userID

	if err := s.itemRepo.UpdateItemDetails(ctx, *item); err != nil {
		s.LogError(ctx, err, "Failed to update item", slog.String("item_id", itemID))
		return nil, err
	}
	return item, nil
}

// RecordIntake locks the item, increments its stock and appends an incoming movement.
func (s *itemService) RecordIntake(ctx context.Context, itemID string, req dto.StockIntakeRequest, userID string) (*domain.IncomingMovement, error) {
	if err := validateInput(req); err != nil {
		return nil, err
	}
	date, err := dto.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	var movement domain.IncomingMovement
	err = s.txManager.RunInTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		item, err := s.itemRepo.LockItemByID(ctx, tx, itemID)
		if err != nil {
			return err
		}
		now := s.Now()
		if _, err := s.itemRepo.IncrementStockInTx(ctx, tx, item.ItemID, req.Quantity, userID, now); err != nil {
			return err
		}
		movement = incomingMovement(*item, nil, req.Quantity, req.PersonInCharge, date, userID, now)
		return s.movementRepo.SaveIncomingInTx(ctx, tx, movement)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to record stock intake", slog.String("item_id", itemID))
		return nil, err
	}

	s.LogInfo(ctx, "Stock intake recorded", slog.String("item_id", itemID), slog.Int("quantity", req.Quantity))
	return &movement, nil
}
