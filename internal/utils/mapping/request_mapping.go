package mapping

import (
	"github.com/SscSPs/atk_inventory_app/internal/core/domain"
	"github.com/SscSPs/atk_inventory_app/internal/models"
)

// ToModelItemRequest converts a domain Request to a model ItemRequest
func ToModelItemRequest(d domain.Request) models.ItemRequest {
	return models.ItemRequest{
		RequestID:         d.RequestID,
		ItemID:            d.ItemID,
		ItemName:          d.ItemName,
		RequestedQuantity: d.RequestedQuantity,
		ApprovedQuantity:  d.ApprovedQuantity,
		UnitOfMeasure:     d.UnitOfMeasure,
		RequestDate:       d.RequestDate,
		Receiver:          d.Receiver,
		UnitID:            d.UnitID,
		Department:        d.Department,
		Status:            string(d.Status),
		Fulfillment:       string(d.Fulfillment),
		RejectionReason:   d.RejectionReason,
		ProcessedBy:       d.ProcessedBy,
		ProcessedAt:       d.ProcessedAt,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRequest converts a model ItemRequest to a domain Request
func ToDomainRequest(m models.ItemRequest) domain.Request {
	return domain.Request{
		RequestID:         m.RequestID,
		ItemID:            m.ItemID,
		ItemName:          m.ItemName,
		RequestedQuantity: m.RequestedQuantity,
		ApprovedQuantity:  m.ApprovedQuantity,
		UnitOfMeasure:     m.UnitOfMeasure,
		RequestDate:       m.RequestDate,
		Receiver:          m.Receiver,
		UnitID:            m.UnitID,
		Department:        m.Department,
		Status:            domain.RequestStatus(m.Status),
		Fulfillment:       domain.Fulfillment(m.Fulfillment),
		RejectionReason:   m.RejectionReason,
		ProcessedBy:       m.ProcessedBy,
		ProcessedAt:       m.ProcessedAt,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainRequestSlice converts a slice of model ItemRequests to a slice of domain Requests
func ToDomainRequestSlice(ms []models.ItemRequest) []domain.Request {
	ds := make([]domain.Request, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainRequest(m)
	}
	return ds
}
