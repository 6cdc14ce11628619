package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/atk_inventory_app/internal/apperrors"
	"github.com/SscSPs/atk_inventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/atk_inventory_app/internal/core/ports/repositories"
	"github.com/SscSPs/atk_inventory_app/internal/models"
	"github.com/SscSPs/atk_inventory_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const requestColumns = `request_id, item_id, item_name, requested_quantity, approved_quantity, unit_of_measure,
	request_date, receiver, unit_id, department, status, fulfillment, rejection_reason,
	processed_by, processed_at, created_at, created_by, last_updated_at, last_updated_by`

type PgxRequestRepository struct {
	BaseRepository
}

func newPgxRequestRepository(pool *pgxpool.Pool) *PgxRequestRepository {
	return &PgxRequestRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.RequestRepositoryFacade = (*PgxRequestRepository)(nil)

func (r *PgxRequestRepository) findOne(ctx context.Context, q querier, query string, requestID string) (*domain.Request, error) {
	rows, err := q.Query(ctx, query, requestID)
	if err != nil {
		return nil, mapError(err, "request", requestID, apperrors.ErrNotFound)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.ItemRequest])
	if err != nil {
		return nil, mapError(err, "request", requestID, apperrors.ErrNotFound)
	}
	req := mapping.ToDomainRequest(m)
	return &req, nil
}

// SaveRequest inserts a new request.
func (r *PgxRequestRepository) SaveRequest(ctx context.Context, request domain.Request) error {
	m := mapping.ToModelItemRequest(request)
	query := `
		INSERT INTO item_requests (` + requestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.RequestID, m.ItemID, m.ItemName, m.RequestedQuantity, m.ApprovedQuantity, m.UnitOfMeasure,
		m.RequestDate, m.Receiver, m.UnitID, m.Department, m.Status, m.Fulfillment, m.RejectionReason,
		m.ProcessedBy, m.ProcessedAt, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "request", m.RequestID, apperrors.ErrNotFound)
	}
	return nil
}

// FindRequestByID retrieves a request without locking it.
func (r *PgxRequestRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.Request, error) {
	return r.findOne(ctx, r.Pool, `SELECT `+requestColumns+` FROM item_requests WHERE request_id = $1`, requestID)
}

// LockRequestByID retrieves a request and holds its row lock until tx ends.
func (r *PgxRequestRepository) LockRequestByID(ctx context.Context, tx pgx.Tx, requestID string) (*domain.Request, error) {
	return r.findOne(ctx, tx, `SELECT `+requestColumns+` FROM item_requests WHERE request_id = $1 FOR UPDATE`, requestID)
}

// UpdateRequestInTx writes the lifecycle fields of a locked request.
func (r *PgxRequestRepository) UpdateRequestInTx(ctx context.Context, tx pgx.Tx, request domain.Request) error {
	m := mapping.ToModelItemRequest(request)
	query := `
		UPDATE item_requests
		SET item_id = $2, status = $3, approved_quantity = $4, rejection_reason = $5,
			processed_by = $6, processed_at = $7, last_updated_at = $8, last_updated_by = $9
		WHERE request_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		m.RequestID, m.ItemID, m.Status, m.ApprovedQuantity, m.RejectionReason,
		m.ProcessedBy, m.ProcessedAt, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "request", m.RequestID, apperrors.ErrNotFound)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("request %s: %w", m.RequestID, apperrors.ErrNotFound)
	}
	return nil
}

// ListRequests retrieves requests matching the filter, newest first.
func (r *PgxRequestRepository) ListRequests(ctx context.Context, filter domain.RequestFilter) ([]domain.Request, error) {
	var (
		conds []string
		args  []any
	)
	if filter.UnitID != "" {
		args = append(args, filter.UnitID)
		conds = append(conds, fmt.Sprintf("unit_id = $%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		args = append(args, statuses)
		conds = append(conds, fmt.Sprintf("status = ANY($%d)", len(args)))
	}
	if filter.Fulfillment != "" {
		args = append(args, string(filter.Fulfillment))
		conds = append(conds, fmt.Sprintf("fulfillment = $%d", len(args)))
	}

	query := `SELECT ` + requestColumns + ` FROM item_requests`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at DESC, request_id DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "requests", "list", apperrors.ErrNotFound)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ItemRequest])
	if err != nil {
		return nil, mapError(err, "requests", "list", apperrors.ErrNotFound)
	}
	return mapping.ToDomainRequestSlice(ms), nil
}
