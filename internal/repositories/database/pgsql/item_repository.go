package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/atk_inventory_app/internal/apperrors"
	"github.com/SscSPs/atk_inventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/atk_inventory_app/internal/core/ports/repositories"
	"github.com/SscSPs/atk_inventory_app/internal/models"
	"github.com/SscSPs/atk_inventory_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const itemColumns = `item_id, name, code, quantity, unit_of_measure, location, min_stock,
	created_at, created_by, last_updated_at, last_updated_by`

// maxNameCandidates bounds how many substring matches are returned to report an ambiguity.
const maxNameCandidates = 20

type PgxItemRepository struct {
	BaseRepository
}

// newPgxItemRepository creates a new repository for item data.
func newPgxItemRepository(pool *pgxpool.Pool) *PgxItemRepository {
	return &PgxItemRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxItemRepository implements portsrepo.ItemRepositoryFacade
var _ portsrepo.ItemRepositoryFacade = (*PgxItemRepository)(nil)

func (r *PgxItemRepository) collectItems(rows pgx.Rows, err error) ([]domain.Item, error) {
	if err != nil {
		return nil, err
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Item])
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainItemSlice(ms), nil
}

func (r *PgxItemRepository) findOne(ctx context.Context, q querier, query string, itemID string) (*domain.Item, error) {
	rows, err := q.Query(ctx, query, itemID)
	if err != nil {
		return nil, mapError(err, "item", itemID, apperrors.ErrItemNotFound)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Item])
	if err != nil {
		return nil, mapError(err, "item", itemID, apperrors.ErrItemNotFound)
	}
	item := mapping.ToDomainItem(m)
	return &item, nil
}

// SaveItem inserts a new item.
func (r *PgxItemRepository) SaveItem(ctx context.Context, item domain.Item) error {
	return r.SaveItemInTx(ctx, nil, item)
}

// SaveItemInTx inserts a new item using tx, or the pool when tx is nil.
func (r *PgxItemRepository) SaveItemInTx(ctx context.Context, tx pgx.Tx, item domain.Item) error {
	m := mapping.ToModelItem(item)
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.q(tx).Exec(ctx, query,
		m.ItemID, m.Name, m.Code, m.Quantity, m.UnitOfMeasure, m.Location, m.MinStock,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "item", m.Name, apperrors.ErrItemNotFound)
	}
	return nil
}

// UpdateItemDetails updates descriptive fields of an item.
func (r *PgxItemRepository) UpdateItemDetails(ctx context.Context, item domain.Item) error {
	return r.updateDetails(ctx, r.Pool, item)
}

// UpdateItemDetailsInTx updates descriptive fields of an item the transaction has locked.
func (r *PgxItemRepository) UpdateItemDetailsInTx(ctx context.Context, tx pgx.Tx, item domain.Item) error {
	return r.updateDetails(ctx, tx, item)
}

func (r *PgxItemRepository) updateDetails(ctx context.Context, q querier, item domain.Item) error {
	query := `
		UPDATE items
		SET code = $2, unit_of_measure = $3, location = $4, min_stock = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE item_id = $1;
	`
	tag, err := q.Exec(ctx, query,
		item.ItemID, item.Code, item.UnitOfMeasure, item.Location, item.MinStock,
		item.LastUpdatedAt, item.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "item", item.ItemID, apperrors.ErrItemNotFound)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("item %s: %w", item.ItemID, apperrors.ErrItemNotFound)
	}
	return nil
}

// FindItemByID retrieves an item by its ID.
func (r *PgxItemRepository) FindItemByID(ctx context.Context, itemID string) (*domain.Item, error) {
	return r.findOne(ctx, r.Pool, `SELECT `+itemColumns+` FROM items WHERE item_id = $1`, itemID)
}

// LockItemByID retrieves an item and holds its row lock until tx ends.
func (r *PgxItemRepository) LockItemByID(ctx context.Context, tx pgx.Tx, itemID string) (*domain.Item, error) {
	return r.findOne(ctx, tx, `SELECT `+itemColumns+` FROM items WHERE item_id = $1 FOR UPDATE`, itemID)
}

// ListItems retrieves a page of items ordered by name.
func (r *PgxItemRepository) ListItems(ctx context.Context, limit int, offset int) ([]domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY LOWER(name) LIMIT $1 OFFSET $2`
	items, err := r.collectItems(r.Pool.Query(ctx, query, limit, offset))
	if err != nil {
		return nil, mapError(err, "items", "list", apperrors.ErrNotFound)
	}
	return items, nil
}

// ListLowStockItems retrieves items at or below their reorder level.
func (r *PgxItemRepository) ListLowStockItems(ctx context.Context) ([]domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE quantity <= min_stock ORDER BY quantity, LOWER(name)`
	items, err := r.collectItems(r.Pool.Query(ctx, query))
	if err != nil {
		return nil, mapError(err, "items", "low-stock", apperrors.ErrNotFound)
	}
	return items, nil
}

// escapeLike escapes LIKE wildcards so user input matches literally.
var escapeLike = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace

// FindItemsByName returns the items matching name under the given rule.
func (r *PgxItemRepository) FindItemsByName(ctx context.Context, tx pgx.Tx, name string, match domain.ItemNameMatch) ([]domain.Item, error) {
	var query string
	arg := name
	switch match {
	case domain.MatchExact:
		query = `SELECT ` + itemColumns + ` FROM items WHERE name = $1`
	case domain.MatchCaseInsensitive:
		query = `SELECT ` + itemColumns + ` FROM items WHERE LOWER(name) = LOWER($1)`
	case domain.MatchContains:
		query = `SELECT ` + itemColumns + ` FROM items WHERE name ILIKE '%' || $1 || '%' ORDER BY LOWER(name) LIMIT ` + fmt.Sprint(maxNameCandidates)
		arg = escapeLike(name)
	default:
		return nil, fmt.Errorf("%w: unknown item name match %d", apperrors.ErrValidation, match)
	}

	items, err := r.collectItems(r.q(tx).Query(ctx, query, arg))
	if err != nil {
		return nil, mapError(err, "item", name, apperrors.ErrItemNotFound)
	}
	return items, nil
}

// IncrementStockInTx adds amount to the item's stock.
func (r *PgxItemRepository) IncrementStockInTx(ctx context.Context, tx pgx.Tx, itemID string, amount int, userID string, now time.Time) (int, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: increment must be positive, got %d", apperrors.ErrInvalidQuantity, amount)
	}
	query := `
		UPDATE items SET quantity = quantity + $2, last_updated_at = $3, last_updated_by = $4
		WHERE item_id = $1
		RETURNING quantity;
	`
	var newQty int
	if err := tx.QueryRow(ctx, query, itemID, amount, now, userID).Scan(&newQty); err != nil {
		return 0, mapError(err, "item", itemID, apperrors.ErrItemNotFound)
	}
	return newQty, nil
}

// DecrementStockInTx removes amount from the item's stock. The WHERE clause keeps the floor at zero
// even if a caller skipped the row lock.
func (r *PgxItemRepository) DecrementStockInTx(ctx context.Context, tx pgx.Tx, itemID string, amount int, userID string, now time.Time) (int, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: decrement must be positive, got %d", apperrors.ErrInvalidQuantity, amount)
	}
	query := `
		UPDATE items SET quantity = quantity - $2, last_updated_at = $3, last_updated_by = $4
		WHERE item_id = $1 AND quantity >= $2
		RETURNING quantity;
	`
	var newQty int
	err := tx.QueryRow(ctx, query, itemID, amount, now, userID).Scan(&newQty)
	if err == nil {
		return newQty, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, mapError(err, "item", itemID, apperrors.ErrItemNotFound)
	}

	// Nothing updated: either the item is gone or stock is short.
	current, findErr := r.findOne(ctx, tx, `SELECT `+itemColumns+` FROM items WHERE item_id = $1`, itemID)
	if findErr != nil {
		return 0, findErr
	}
	return 0, &apperrors.InsufficientStockError{
		ItemID:    itemID,
		ItemName:  current.Name,
		Available: current.Quantity,
		Requested: amount,
	}
}
