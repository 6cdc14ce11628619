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
	"github.com/SscSPs/atk_inventory_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	outgoingColumns = `movement_id, request_id, item_id, item_name, item_code, unit_of_measure, quantity,
	receiver, department, movement_date, created_at, created_by`
	incomingColumns = `movement_id, request_id, item_id, item_name, item_code, unit_of_measure, quantity,
	person_in_charge, movement_date, created_at, created_by`

	defaultMovementLimit = 50
	maxMovementLimit     = 500
)

type PgxMovementRepository struct {
	BaseRepository
}

func newPgxMovementRepository(pool *pgxpool.Pool) *PgxMovementRepository {
	return &PgxMovementRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.MovementRepositoryFacade = (*PgxMovementRepository)(nil)

// SaveOutgoingInTx appends an outgoing journal line.
func (r *PgxMovementRepository) SaveOutgoingInTx(ctx context.Context, tx pgx.Tx, movement domain.OutgoingMovement) error {
	m := mapping.ToModelOutgoingMovement(movement)
	query := `
		INSERT INTO outgoing_movements (` + outgoingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.q(tx).Exec(ctx, query,
		m.MovementID, m.RequestID, m.ItemID, m.ItemName, m.ItemCode, m.UnitOfMeasure, m.Quantity,
		m.Receiver, m.Department, m.MovementDate, m.CreatedAt, m.CreatedBy,
	)
	if err != nil {
		return mapError(err, "outgoing movement", m.MovementID, apperrors.ErrNotFound)
	}
	return nil
}

// SaveIncomingInTx appends an incoming journal line.
func (r *PgxMovementRepository) SaveIncomingInTx(ctx context.Context, tx pgx.Tx, movement domain.IncomingMovement) error {
	m := mapping.ToModelIncomingMovement(movement)
	query := `
		INSERT INTO incoming_movements (` + incomingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.q(tx).Exec(ctx, query,
		m.MovementID, m.RequestID, m.ItemID, m.ItemName, m.ItemCode, m.UnitOfMeasure, m.Quantity,
		m.PersonInCharge, m.MovementDate, m.CreatedAt, m.CreatedBy,
	)
	if err != nil {
		return mapError(err, "incoming movement", m.MovementID, apperrors.ErrNotFound)
	}
	return nil
}

// buildMovementQuery appends the filter and keyset conditions to a SELECT over table.
// It fetches one row more than the page size to detect whether a next page exists.
func buildMovementQuery(columns, table string, filter domain.MovementFilter, withDepartment bool) (string, []any, int, error) {
	var (
		conds []string
		args  []any
	)
	if filter.ItemID != "" {
		args = append(args, filter.ItemID)
		conds = append(conds, fmt.Sprintf("item_id = $%d", len(args)))
	}
	if withDepartment && filter.Department != "" {
		args = append(args, filter.Department)
		conds = append(conds, fmt.Sprintf("LOWER(department) = LOWER($%d)", len(args)))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		conds = append(conds, fmt.Sprintf("movement_date >= $%d", len(args)))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		conds = append(conds, fmt.Sprintf("movement_date <= $%d", len(args)))
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		cursor, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return "", nil, 0, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		args = append(args, cursor.Date, cursor.CreatedAt, cursor.ID)
		n := len(args)
		conds = append(conds, fmt.Sprintf("(movement_date, created_at, movement_id) < ($%d, $%d, $%d)", n-2, n-1, n))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultMovementLimit
	}
	if limit > maxMovementLimit {
		limit = maxMovementLimit
	}

	query := `SELECT ` + columns + ` FROM ` + table
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	args = append(args, limit+1)
	query += fmt.Sprintf(" ORDER BY movement_date DESC, created_at DESC, movement_id DESC LIMIT $%d", len(args))
	return query, args, limit, nil
}

// ListOutgoing returns a page of outgoing lines, newest first.
func (r *PgxMovementRepository) ListOutgoing(ctx context.Context, filter domain.MovementFilter) ([]domain.OutgoingMovement, *string, error) {
	query, args, limit, err := buildMovementQuery(outgoingColumns, "outgoing_movements", filter, true)
	if err != nil {
		return nil, nil, err
	}
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, mapError(err, "outgoing movements", "list", apperrors.ErrNotFound)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.OutgoingMovement])
	if err != nil {
		return nil, nil, mapError(err, "outgoing movements", "list", apperrors.ErrNotFound)
	}

	var next *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[limit-1]
		token := pagination.EncodeToken(pagination.Cursor{Date: last.MovementDate, CreatedAt: last.CreatedAt, ID: last.MovementID})
		next = &token
	}
	return mapping.ToDomainOutgoingMovementSlice(ms), next, nil
}

// ListIncoming returns a page of incoming lines, newest first. Department filtering does not apply.
func (r *PgxMovementRepository) ListIncoming(ctx context.Context, filter domain.MovementFilter) ([]domain.IncomingMovement, *string, error) {
	query, args, limit, err := buildMovementQuery(incomingColumns, "incoming_movements", filter, false)
	if err != nil {
		return nil, nil, err
	}
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, mapError(err, "incoming movements", "list", apperrors.ErrNotFound)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.IncomingMovement])
	if err != nil {
		return nil, nil, mapError(err, "incoming movements", "list", apperrors.ErrNotFound)
	}

	var next *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[limit-1]
		token := pagination.EncodeToken(pagination.Cursor{Date: last.MovementDate, CreatedAt: last.CreatedAt, ID: last.MovementID})
		next = &token
	}
	return mapping.ToDomainIncomingMovementSlice(ms), next, nil
}
