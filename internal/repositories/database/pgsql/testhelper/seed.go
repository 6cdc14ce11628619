package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/atk_inventory_app/internal/core/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// Now returns a timestamp at the precision PostgreSQL stores.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// SeedUnit inserts a unit with a unique name.
func SeedUnit(t *testing.T, pool *pgxpool.Pool) domain.Unit {
	t.Helper()
	unit := domain.Unit{
		UnitID:      uuid.NewString(),
		Name:        "Unit " + uniqueSuffix(),
		AuditFields: domain.NewAuditFields(domain.SystemUserID, Now()),
	}
	_, err := pool.Exec(context.Background(),
		`INSERT INTO units (unit_id, name, created_at, created_by, last_updated_at, last_updated_by)
		 VALUES ($1, $2, $3, $4, $3, $4)`,
		unit.UnitID, unit.Name, unit.CreatedAt, unit.CreatedBy,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUnit: %v", err)
	}
	return unit
}

// SeedItem inserts an item with a unique name derived from prefix.
func SeedItem(t *testing.T, pool *pgxpool.Pool, prefix string, quantity int) domain.Item {
	t.Helper()
	suffix := uniqueSuffix()
	item := domain.Item{
		ItemID:        uuid.NewString(),
		Name:          prefix + " " + suffix,
		Code:          "ATK-" + suffix,
		Quantity:      quantity,
		UnitOfMeasure: "pcs",
		Location:      "Shelf A",
		AuditFields:   domain.NewAuditFields(domain.SystemUserID, Now()),
	}
	_, err := pool.Exec(context.Background(),
		`INSERT INTO items (item_id, name, code, quantity, unit_of_measure, location, min_stock,
			created_at, created_by, last_updated_at, last_updated_by)
		 VALUES ($1, $2, $3, $4, $5, $6, 0, $7, $8, $7, $8)`,
		item.ItemID, item.Name, item.Code, item.Quantity, item.UnitOfMeasure, item.Location, item.CreatedAt, item.CreatedBy,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedItem: %v", err)
	}
	return item
}

// SeedQuota inserts a quota row for the pair.
func SeedQuota(t *testing.T, pool *pgxpool.Pool, itemID, unitID string, quotaMax, used int) {
	t.Helper()
	now := Now()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO quotas (item_id, unit_id, quota_max, quota_used, created_at, created_by, last_updated_at, last_updated_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $5, $6)`,
		itemID, unitID, quotaMax, used, now, domain.SystemUserID,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedQuota: %v", err)
	}
}

// SeedRequest inserts a PENDING request of unit for item.
func SeedRequest(t *testing.T, pool *pgxpool.Pool, unit domain.Unit, item *domain.Item, itemName string, qty int, fulfillment domain.Fulfillment) domain.Request {
	t.Helper()
	now := Now()
	req := domain.Request{
		RequestID:         uuid.NewString(),
		ItemName:          itemName,
		RequestedQuantity: qty,
		UnitOfMeasure:     "pcs",
		RequestDate:       time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		Receiver:          "Receiver " + uniqueSuffix(),
		UnitID:            unit.UnitID,
		Department:        unit.Name,
		Status:            domain.StatusPending,
		Fulfillment:       fulfillment,
		AuditFields:       domain.NewAuditFields(domain.SystemUserID, now),
	}
	if item != nil {
		req.ItemID = &item.ItemID
		req.ItemName = item.Name
	}
	_, err := pool.Exec(context.Background(),
		`INSERT INTO item_requests (request_id, item_id, item_name, requested_quantity, unit_of_measure, request_date,
			receiver, unit_id, department, status, fulfillment, created_at, created_by, last_updated_at, last_updated_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $12, $13)`,
		req.RequestID, req.ItemID, req.ItemName, req.RequestedQuantity, req.UnitOfMeasure, req.RequestDate,
		req.Receiver, req.UnitID, req.Department, string(req.Status), string(req.Fulfillment), req.CreatedAt, req.CreatedBy,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedRequest: %v", err)
	}
	return req
}

// ItemQuantity reads the current stock of an item.
func ItemQuantity(t *testing.T, pool *pgxpool.Pool, itemID string) int {
	t.Helper()
	var qty int
	if err := pool.QueryRow(context.Background(), `SELECT quantity FROM items WHERE item_id = $1`, itemID).Scan(&qty); err != nil {
		t.Fatalf("testhelper: ItemQuantity: %v", err)
	}
	return qty
}

// CountMovements counts journal lines in table written for a request.
func CountMovements(t *testing.T, pool *pgxpool.Pool, table string, requestID string) int {
	t.Helper()
	var n int
	if err := pool.QueryRow(context.Background(), `SELECT COUNT(*) FROM `+table+` WHERE request_id = $1`, requestID).Scan(&n); err != nil {
		t.Fatalf("testhelper: CountMovements: %v", err)
	}
	return n
}
