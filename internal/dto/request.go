package dto

import (
	"time"

	"github.com/SscSPs/atk_inventory_app/internal/core/domain"
)

// CreateRequestPayload defines the data a unit submits to request an item.
// ItemID is optional; without it the item is resolved from ItemName.
type CreateRequestPayload struct {
	ItemID        *string            `json:"itemID" binding:"omitempty,uuid"`
	ItemName      string             `json:"itemName" binding:"required,max=200"`
	Quantity      int                `json:"quantity" binding:"required,gt=0"`
	UnitOfMeasure string             `json:"unitOfMeasure" binding:"required,max=30"`
	RequestDate   string             `json:"requestDate" binding:"required,datetime=2006-01-02"`
	Receiver      string             `json:"receiver" binding:"required,max=100"`
	Fulfillment   domain.Fulfillment `json:"fulfillment" binding:"omitempty,oneof=FROM_STOCK PROCURE"`
}

// FinalizeRequest carries the admin-adjusted quantity for a request under review.
type FinalizeRequest struct {
	FinalQuantity *int `json:"finalQuantity" binding:"required"`
}

// RejectRequest carries an optional reason for a rejection.
type RejectRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// HandoutRequest records the purchase intake and the handout of a procurement request.
type HandoutRequest struct {
	ItemCode       string `json:"itemCode" binding:"required,max=50"`
	Location       string `json:"location" binding:"max=100"`
	Quantity       int    `json:"quantity" binding:"required,gt=0"`
	UnitOfMeasure  string `json:"unitOfMeasure" binding:"required,max=30"`
	Date           string `json:"date" binding:"required,datetime=2006-01-02"`
	PersonInCharge string `json:"personInCharge" binding:"max=100"`
}

// ListRequestsParams defines query parameters for the request history.
type ListRequestsParams struct {
	Status string `form:"status" binding:"omitempty,oneof=PENDING APPROVAL_REVIEW APPROVED REJECTED FINISHED"`
	Limit  int    `form:"limit,default=50" binding:"gte=1,lte=500"`
	Offset int    `form:"offset,default=0" binding:"gte=0"`
}

// RequestResponse defines the data returned for a request.
type RequestResponse struct {
	RequestID         string               `json:"requestID"`
	ItemID            *string              `json:"itemID,omitempty"`
	ItemName          string               `json:"itemName"`
	RequestedQuantity int                  `json:"requestedQuantity"`
	ApprovedQuantity  *int                 `json:"approvedQuantity,omitempty"`
	UnitOfMeasure     string               `json:"unitOfMeasure"`
	RequestDate       string               `json:"requestDate"`
	Receiver          string               `json:"receiver"`
	UnitID            string               `json:"unitID"`
	Department        string               `json:"department"`
	Status            domain.RequestStatus `json:"status"`
	Fulfillment       domain.Fulfillment   `json:"fulfillment"`
	RejectionReason   *string              `json:"rejectionReason,omitempty"`
	ProcessedBy       *string              `json:"processedBy,omitempty"`
	ProcessedAt       *time.Time           `json:"processedAt,omitempty"`
	CreatedAt         time.Time            `json:"createdAt"`
	CreatedBy         string               `json:"createdBy"`
}

// ToRequestResponse converts a domain.Request to RequestResponse DTO
func ToRequestResponse(r *domain.Request) RequestResponse {
	return RequestResponse{
		RequestID:         r.RequestID,
		ItemID:            r.ItemID,
		ItemName:          r.ItemName,
		RequestedQuantity: r.RequestedQuantity,
		ApprovedQuantity:  r.ApprovedQuantity,
		UnitOfMeasure:     r.UnitOfMeasure,
		RequestDate:       r.RequestDate.Format(DateLayout),
		Receiver:          r.Receiver,
		UnitID:            r.UnitID,
		Department:        r.Department,
		Status:            r.Status,
		Fulfillment:       r.Fulfillment,
		RejectionReason:   r.RejectionReason,
		ProcessedBy:       r.ProcessedBy,
		ProcessedAt:       r.ProcessedAt,
		CreatedAt:         r.CreatedAt,
		CreatedBy:         r.CreatedBy,
	}
}

// ToListRequestResponse converts a slice of domain.Request to RequestResponse DTOs
func ToListRequestResponse(requests []domain.Request) []RequestResponse {
	res := make([]RequestResponse, len(requests))
	for i := range requests {
		res[i] = ToRequestResponse(&requests[i])
	}
	return res
}
