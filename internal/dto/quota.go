package dto

import (
	"time"

	"github.com/SscSPs/atk_inventory_app/internal/core/domain"
)

// UpsertQuotaRequest sets the cap of one item for one unit.
type UpsertQuotaRequest struct {
	ItemID   string `json:"itemID" binding:"required,uuid"`
	UnitID   string `json:"unitID" binding:"required,uuid"`
	QuotaMax *int   `json:"quotaMax" binding:"required"`
}

// QuotaResponse defines the data returned for a quota.
type QuotaResponse struct {
	ItemID        string    `json:"itemID"`
	UnitID        string    `json:"unitID"`
	QuotaMax      int       `json:"quotaMax"`
	QuotaUsed     int       `json:"quotaUsed"`
	Remaining     int       `json:"remaining"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToQuotaResponse converts a domain.Quota to QuotaResponse DTO
func ToQuotaResponse(q *domain.Quota) QuotaResponse {
	return QuotaResponse{
		ItemID:        q.ItemID,
		UnitID:        q.UnitID,
		QuotaMax:      q.QuotaMax,
		QuotaUsed:     q.QuotaUsed,
		Remaining:     q.Remaining(),
		LastUpdatedAt: q.LastUpdatedAt,
	}
}

// ToListQuotaResponse converts a slice of domain.Quota to QuotaResponse DTOs
func ToListQuotaResponse(quotas []domain.Quota) []QuotaResponse {
	res := make([]QuotaResponse, len(quotas))
	for i := range quotas {
		res[i] = ToQuotaResponse(&quotas[i])
	}
	return res
}
