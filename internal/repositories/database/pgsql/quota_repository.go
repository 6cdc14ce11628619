package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/atk_inventory_app/internal/apperrors"
	"github.com/SscSPs/atk_inventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/atk_inventory_app/internal/core/ports/repositories"
	"github.com/SscSPs/atk_inventory_app/internal/models"
	"github.com/SscSPs/atk_inventory_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const quotaColumns = `item_id, unit_id, quota_max, quota_used, created_at, created_by, last_updated_at, last_updated_by`

type PgxQuotaRepository struct {
	BaseRepository
}

func newPgxQuotaRepository(pool *pgxpool.Pool) *PgxQuotaRepository {
	return &PgxQuotaRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.QuotaRepositoryFacade = (*PgxQuotaRepository)(nil)

func quotaKey(itemID, unitID string) string {
	return itemID + "/" + unitID
}

func (r *PgxQuotaRepository) findOne(ctx context.Context, q querier, query string, itemID, unitID string) (*domain.Quota, error) {
	rows, err := q.Query(ctx, query, itemID, unitID)
	if err != nil {
		return nil, mapError(err, "quota", quotaKey(itemID, unitID), apperrors.ErrNotFound)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Quota])
	if err != nil {
		return nil, mapError(err, "quota", quotaKey(itemID, unitID), apperrors.ErrNotFound)
	}
	q2 := mapping.ToDomainQuota(m)
	return &q2, nil
}

// FindQuota retrieves the quota of a pair.
func (r *PgxQuotaRepository) FindQuota(ctx context.Context, itemID string, unitID string) (*domain.Quota, error) {
	return r.findOne(ctx, r.Pool, `SELECT `+quotaColumns+` FROM quotas WHERE item_id = $1 AND unit_id = $2`, itemID, unitID)
}

// LockQuota retrieves the quota of a pair and holds its row lock until tx ends.
func (r *PgxQuotaRepository) LockQuota(ctx context.Context, tx pgx.Tx, itemID string, unitID string) (*domain.Quota, error) {
	return r.findOne(ctx, tx, `SELECT `+quotaColumns+` FROM quotas WHERE item_id = $1 AND unit_id = $2 FOR UPDATE`, itemID, unitID)
}

// ListQuotas retrieves quotas, restricted to unitID when it is not empty.
func (r *PgxQuotaRepository) ListQuotas(ctx context.Context, unitID string) ([]domain.Quota, error) {
	query := `SELECT ` + quotaColumns + ` FROM quotas WHERE ($1 = '' OR unit_id::text = $1) ORDER BY unit_id, item_id`
	rows, err := r.Pool.Query(ctx, query, unitID)
	if err != nil {
		return nil, mapError(err, "quotas", "list", apperrors.ErrNotFound)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Quota])
	if err != nil {
		return nil, mapError(err, "quotas", "list", apperrors.ErrNotFound)
	}
	return mapping.ToDomainQuotaSlice(ms), nil
}

// UpsertQuota inserts a pair with quota_used = 0 or, for an existing pair, updates quota_max only.
func (r *PgxQuotaRepository) UpsertQuota(ctx context.Context, quota domain.Quota) (*domain.Quota, error) {
	query := `
		INSERT INTO quotas (` + quotaColumns + `)
		VALUES ($1, $2, $3, 0, $4, $5, $4, $5)
		ON CONFLICT (item_id, unit_id) DO UPDATE
		SET quota_max = EXCLUDED.quota_max,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by
		RETURNING ` + quotaColumns
	rows, err := r.Pool.Query(ctx, query, quota.ItemID, quota.UnitID, quota.QuotaMax, quota.LastUpdatedAt, quota.LastUpdatedBy)
	if err != nil {
		return nil, mapError(err, "quota", quotaKey(quota.ItemID, quota.UnitID), apperrors.ErrNotFound)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Quota])
	if err != nil {
		return nil, mapError(err, "quota", quotaKey(quota.ItemID, quota.UnitID), apperrors.ErrNotFound)
	}
	saved := mapping.ToDomainQuota(m)
	return &saved, nil
}

// DeleteQuota removes a pair.
func (r *PgxQuotaRepository) DeleteQuota(ctx context.Context, itemID string, unitID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM quotas WHERE item_id = $1 AND unit_id = $2`, itemID, unitID)
	if err != nil {
		return mapError(err, "quota", quotaKey(itemID, unitID), apperrors.ErrNotFound)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("quota %s: %w", quotaKey(itemID, unitID), apperrors.ErrNotFound)
	}
	return nil
}

// AddQuotaUsedInTx increases quota_used of a locked pair.
func (r *PgxQuotaRepository) AddQuotaUsedInTx(ctx context.Context, tx pgx.Tx, itemID string, unitID string, amount int, userID string, now time.Time) error {
	query := `
		UPDATE quotas SET quota_used = quota_used + $3, last_updated_at = $4, last_updated_by = $5
		WHERE item_id = $1 AND unit_id = $2;
	`
	tag, err := tx.Exec(ctx, query, itemID, unitID, amount, now, userID)
	if err != nil {
		return mapError(err, "quota", quotaKey(itemID, unitID), apperrors.ErrNotFound)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("quota %s: %w", quotaKey(itemID, unitID), apperrors.ErrNotFound)
	}
	return nil
}
