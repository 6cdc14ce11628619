package services

import (
	"context"

	"github.com/SscSPs/atk_inventory_app/internal/core/domain"
	"github.com/SscSPs/atk_inventory_app/internal/dto"
)

// ItemReaderSvc defines read operations for the item catalog
type ItemReaderSvc interface {
	GetItemByID(ctx context.Context, itemID string) (*domain.Item, error)
	ListItems(ctx context.Context, limit int, offset int) ([]domain.Item, error)
	ListLowStockItems(ctx context.Context) ([]domain.Item, error)

	// ResolveItemReference finds the single item a free-text name refers to.
	ResolveItemReference(ctx context.Context, name string) (*domain.Item, error)
}

// ItemWriterSvc defines write operations for the item catalog and stock intake
type ItemWriterSvc interface {
	CreateItem(ctx context.Context, req dto.CreateItemRequest, userID string) (*domain.Item, error)
	UpdateItem(ctx context.Context, itemID string, req dto.UpdateItemRequest, userID string) (*domain.Item, error)

	// RecordIntake increments stock and appends an incoming movement in one transaction.
	RecordIntake(ctx context.Context, itemID string, req dto.StockIntakeRequest, userID string) (*domain.IncomingMovement, error)
}

// ItemSvcFacade combines all item-related service interfaces
type ItemSvcFacade interface {
	ItemReaderSvc
	ItemWriterSvc
}
