package dto

import (
	"time"

	"github.com/SscSPs/atk_inventory_app/internal/core/domain"
)

// ListMovementsParams defines query parameters for journal listings.
type ListMovementsParams struct {
	ItemID     string  `form:"itemID" binding:"omitempty,uuid"`
	Department string  `form:"department"`
	DateFrom   string  `form:"dateFrom" binding:"omitempty,datetime=2006-01-02"`
	DateTo     string  `form:"dateTo" binding:"omitempty,datetime=2006-01-02"`
	Limit      int     `form:"limit,default=50" binding:"gte=1,lte=1000"`
	NextToken  *string `form:"nextToken"`
}

// OutgoingMovementResponse defines the data returned for an outgoing journal line.
type OutgoingMovementResponse struct {
	MovementID    string    `json:"movementID"`
	RequestID     *string   `json:"requestID,omitempty"`
	ItemID        string    `json:"itemID"`
	ItemName      string    `json:"itemName"`
	ItemCode      string    `json:"itemCode"`
	UnitOfMeasure string    `json:"unitOfMeasure"`
	Quantity      int       `json:"quantity"`
	Receiver      string    `json:"receiver"`
	Department    string    `json:"department"`
	MovementDate  string    `json:"movementDate"`
	CreatedAt     time.Time `json:"createdAt"`
}

// IncomingMovementResponse defines the data returned for an incoming journal line.
type IncomingMovementResponse struct {
	MovementID     string    `json:"movementID"`
	RequestID      *string   `json:"requestID,omitempty"`
	ItemID         string    `json:"itemID"`
	ItemName       string    `json:"itemName"`
	ItemCode       string    `json:"itemCode"`
	UnitOfMeasure  string    `json:"unitOfMeasure"`
	Quantity       int       `json:"quantity"`
	PersonInCharge string    `json:"personInCharge"`
	MovementDate   string    `json:"movementDate"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ListOutgoingMovementsResponse is one page of the outgoing journal.
type ListOutgoingMovementsResponse struct {
	Movements []OutgoingMovementResponse `json:"movements"`
	NextToken *string                    `json:"nextToken,omitempty"`
}

// ListIncomingMovementsResponse is one page of the incoming journal.
type ListIncomingMovementsResponse struct {
	Movements []IncomingMovementResponse `json:"movements"`
	NextToken *string                    `json:"nextToken,omitempty"`
}

// ToOutgoingMovementResponse converts a domain.OutgoingMovement to its DTO
func ToOutgoingMovementResponse(m *domain.OutgoingMovement) OutgoingMovementResponse {
	return OutgoingMovementResponse{
		MovementID:    m.MovementID,
		RequestID:     m.RequestID,
		ItemID:        m.ItemID,
		ItemName:      m.ItemName,
		ItemCode:      m.ItemCode,
		UnitOfMeasure: m.UnitOfMeasure,
		Quantity:      m.Quantity,
		Receiver:      m.Receiver,
		Department:    m.Department,
		MovementDate:  m.MovementDate.Format(DateLayout),
		CreatedAt:     m.CreatedAt,
	}
}

// ToIncomingMovementResponse converts a domain.IncomingMovement to its DTO
func ToIncomingMovementResponse(m *domain.IncomingMovement) IncomingMovementResponse {
	return IncomingMovementResponse{
		MovementID:     m.MovementID,
		RequestID:      m.RequestID,
		ItemID:         m.ItemID,
		ItemName:       m.ItemName,
		ItemCode:       m.ItemCode,
		UnitOfMeasure:  m.UnitOfMeasure,
		Quantity:       m.Quantity,
		PersonInCharge: m.PersonInCharge,
		MovementDate:   m.MovementDate.Format(DateLayout),
		CreatedAt:      m.CreatedAt,
	}
}

// ToListOutgoingMovementsResponse builds a page response
func ToListOutgoingMovementsResponse(ms []domain.OutgoingMovement, nextToken *string) *ListOutgoingMovementsResponse {
	res := make([]OutgoingMovementResponse, len(ms))
	for i := range ms {
		res[i] = ToOutgoingMovementResponse(&ms[i])
	}
	return &ListOutgoingMovementsResponse{Movements: res, NextToken: nextToken}
}

// ToListIncomingMovementsResponse builds a page response
func ToListIncomingMovementsResponse(ms []domain.IncomingMovement, nextToken *string) *ListIncomingMovementsResponse {
	res := make([]IncomingMovementResponse, len(ms))
	for i := range ms {
		res[i] = ToIncomingMovementResponse(&ms[i])
	}
	return &ListIncomingMovementsResponse{Movements: res, NextToken: nextToken}
}
