package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/atk_inventory_app/internal/apperrors"
	"github.com/SscSPs/atk_inventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/atk_inventory_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/atk_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/atk_inventory_app/internal/dto"
	"github.com/jackc/pgx/v5"
)

// quotaLedger reserves quota inside a workflow transaction.
type quotaLedger struct {
	quotas portsrepo.QuotaTransactionSupport
}

// CheckAndReserve locks the pair's quota row and adds amount to its usage.
// A pair without a row is unlimited and the call succeeds without writing.
// The caller must already hold the item row lock.
func (l quotaLedger) CheckAndReserve(ctx context.Context, tx pgx.Tx, itemID, unitID string, amount int, userID string, now time.Time) error {
	quota, err := l.quotas.LockQuota(ctx, tx, itemID, unitID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !quota.CanReserve(amount) {
		return &apperrors.QuotaExceededError{
			ItemID:    itemID,
			UnitID:    unitID,
			Max:       quota.QuotaMax,
			Used:      quota.QuotaUsed,
			Requested: amount,
		}
	}
	return l.quotas.AddQuotaUsedInTx(ctx, tx, itemID, unitID, amount, userID, now)
}

type quotaService struct {
	BaseService
	quotaRepo portsrepo.QuotaRepositoryFacade
	itemRepo  portsrepo.ItemReader
	unitRepo  portsrepo.UnitRepositoryFacade
}

// NewQuotaService creates a new QuotaService.
func NewQuotaService(quotaRepo portsrepo.QuotaRepositoryFacade, itemRepo portsrepo.ItemReader, unitRepo portsrepo.UnitRepositoryFacade) portssvc.QuotaSvcFacade {
	return &quotaService{
		BaseService: newBaseService(),
		quotaRepo:   quotaRepo,
		itemRepo:    itemRepo,
		unitRepo:    unitRepo,
	}
}

var _ portssvc.QuotaSvcFacade = (*quotaService)(nil)

// UpsertQuota creates the pair with zero usage or changes only its max.
// A max below the current usage is accepted; it only blocks further approvals.
func (s *quotaService) UpsertQuota(ctx context.Context, req dto.UpsertQuotaRequest, userID string) (*domain.Quota, error) {
	if err := validateInput(req); err != nil {
		return nil, err
	}
	if *req.QuotaMax < 0 {
		return nil, fmt.Errorf("%w: quota max must not be negative, got %d", apperrors.ErrInvalidQuantity, *req.QuotaMax)
	}

	if _, err := s.itemRepo.FindItemByID(ctx, req.ItemID); err != nil {
		return nil, err
	}
	if _, err := s.unitRepo.FindUnitByID(ctx, req.UnitID); err != nil {
		return nil, err
	}

	quota, err := s.quotaRepo.UpsertQuota(ctx, domain.Quota{
		ItemID:      req.ItemID,
		UnitID:      req.UnitID,
		QuotaMax:    *req.QuotaMax,
		AuditFields: domain.NewAuditFields(userID, s.Now()),
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to upsert quota", slog.String("item_id", req.ItemID), slog.String("unit_id", req.UnitID))
		return nil, err
	}

	s.LogInfo(ctx, "Quota set",
		slog.String("item_id", quota.ItemID),
		slog.String("unit_id", quota.UnitID),
		slog.Int("quota_max", quota.QuotaMax),
		slog.Int("quota_used", quota.QuotaUsed))
	return quota, nil
}

func (s *quotaService) ListQuotas(ctx context.Context, unitID string) ([]domain.Quota, error) {
	return s.quotaRepo.ListQuotas(ctx, unitID)
}

func (s *quotaService) DeleteQuota(ctx context.Context, itemID string, unitID string) error {
	if err := s.quotaRepo.DeleteQuota(ctx, itemID, unitID); err != nil {
		return err
	}
	s.LogInfo(ctx, "Quota removed", slog.String("item_id", itemID), slog.String("unit_id", unitID))
	return nil
}
