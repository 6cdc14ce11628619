package mapping

import (
	"github.com/SscSPs/atk_inventory_app/internal/core/domain"
	"github.com/SscSPs/atk_inventory_app/internal/models"
)

// ToModelItem converts a domain Item to a model Item
func ToModelItem(d domain.Item) models.Item {
	return models.Item{
		ItemID:        d.ItemID,
		Name:          d.Name,
		Code:          d.Code,
		Quantity:      d.Quantity,
		UnitOfMeasure: d.UnitOfMeasure,
		Location:      d.Location,
		MinStock:      d.MinStock,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainItem converts a model Item to a domain Item
func ToDomainItem(m models.Item) domain.Item {
	return domain.Item{
		ItemID:        m.ItemID,
		Name:          m.Name,
		Code:          m.Code,
		Quantity:      m.Quantity,
		UnitOfMeasure: m.UnitOfMeasure,
		Location:      m.Location,
		MinStock:      m.MinStock,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainItemSlice converts a slice of model Items to a slice of domain Items
func ToDomainItemSlice(ms []models.Item) []domain.Item {
	ds := make([]domain.Item, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainItem(m)
	}
	return ds
}

// ToDomainQuota converts a model Quota to a domain Quota
func ToDomainQuota(m models.Quota) domain.Quota {
	return domain.Quota{
		ItemID:      m.ItemID,
		UnitID:      m.UnitID,
		QuotaMax:    m.QuotaMax,
		QuotaUsed:   m.QuotaUsed,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainQuotaSlice converts a slice of model Quotas to a slice of domain Quotas
func ToDomainQuotaSlice(ms []models.Quota) []domain.Quota {
	ds := make([]domain.Quota, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainQuota(m)
	}
	return ds
}
