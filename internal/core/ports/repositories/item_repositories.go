package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/atk_inventory_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ItemReader defines read operations for item data
type ItemReader interface {
	// FindItemByID retrieves a specific item by its unique identifier.
	FindItemByID(ctx context.Context, itemID string) (*domain.Item, error)

	// ListItems retrieves a page of items ordered by name.
	ListItems(ctx context.Context, limit int, offset int) ([]domain.Item, error)

	// ListLowStockItems retrieves items whose quantity is at or below their reorder level.
	ListLowStockItems(ctx context.Context) ([]domain.Item, error)
}

// ItemWriter defines write operations for item master data
type ItemWriter interface {
	// SaveItem persists a new item.
	SaveItem(ctx context.Context, item domain.Item) error

	// UpdateItemDetails updates descriptive fields. Quantity is left untouched.
	UpdateItemDetails(ctx context.Context, item domain.Item) error
}

// ItemTransactionSupport defines the ledger operations used inside workflow transactions.
// Where noted, a nil tx reads outside any transaction.
type ItemTransactionSupport interface {
	// FindItemsByName returns the items whose name matches under the given rule. tx may be nil.
	FindItemsByName(ctx context.Context, tx pgx.Tx, name string, match domain.ItemNameMatch) ([]domain.Item, error)

	// LockItemByID selects the item and locks its row until the transaction ends.
	LockItemByID(ctx context.Context, tx pgx.Tx, itemID string) (*domain.Item, error)

	// SaveItemInTx persists a new item inside the transaction.
	SaveItemInTx(ctx context.Context, tx pgx.Tx, item domain.Item) error

	// UpdateItemDetailsInTx updates descriptive fields of a locked item. Quantity is left untouched.
	UpdateItemDetailsInTx(ctx context.Context, tx pgx.Tx, item domain.Item) error

	// IncrementStockInTx adds amount to the stock and returns the new quantity.
	IncrementStockInTx(ctx context.Context, tx pgx.Tx, itemID string, amount int, userID string, now time.Time) (int, error)

	// DecrementStockInTx removes amount from the stock and returns the new quantity.
	// It fails with an InsufficientStockError and changes nothing when stock < amount.
	DecrementStockInTx(ctx context.Context, tx pgx.Tx, itemID string, amount int, userID string, now time.Time) (int, error)
}

// ItemRepositoryFacade combines all item-related repository interfaces
type ItemRepositoryFacade interface {
	ItemReader
	ItemWriter
	ItemTransactionSupport
}
