package services

import (
	"context"

	"github.com/SscSPs/atk_inventory_app/internal/core/domain"
	"github.com/SscSPs/atk_inventory_app/internal/dto"
)

// QuotaSvcFacade manages per unit, per item approval caps
type QuotaSvcFacade interface {
	UpsertQuota(ctx context.Context, req dto.UpsertQuotaRequest, userID string) (*domain.Quota, error)
	ListQuotas(ctx context.Context, unitID string) ([]domain.Quota, error)
	DeleteQuota(ctx context.Context, itemID string, unitID string) error
}
