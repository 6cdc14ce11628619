package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/atk_inventory_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// QuotaReader defines read operations for quotas
type QuotaReader interface {
	// FindQuota retrieves the quota of a pair, or ErrNotFound when the pair is unlimited.
	FindQuota(ctx context.Context, itemID string, unitID string) (*domain.Quota, error)

	// ListQuotas retrieves quotas, optionally restricted to one unit.
	ListQuotas(ctx context.Context, unitID string) ([]domain.Quota, error)
}

// QuotaWriter defines write operations for quotas
type QuotaWriter interface {
	// UpsertQuota inserts the pair with used = 0, or updates only the max of an existing pair.
	UpsertQuota(ctx context.Context, quota domain.Quota) (*domain.Quota, error)

	// DeleteQuota removes the pair, making it unlimited.
	DeleteQuota(ctx context.Context, itemID string, unitID string) error
}

// QuotaTransactionSupport defines quota reservation inside workflow transactions.
type QuotaTransactionSupport interface {
	// LockQuota selects the quota row for update, or returns ErrNotFound when there is none.
	LockQuota(ctx context.Context, tx pgx.Tx, itemID string, unitID string) (*domain.Quota, error)

	// AddQuotaUsedInTx increases quota_used by amount.
	AddQuotaUsedInTx(ctx context.Context, tx pgx.Tx, itemID string, unitID string, amount int, userID string, now time.Time) error
}

// QuotaRepositoryFacade combines all quota-related repository interfaces
type QuotaRepositoryFacade interface {
	QuotaReader
	QuotaWriter
	QuotaTransactionSupport
}
