package services

import (
	"time"

	"github.com/SscSPs/atk_inventory_app/internal/core/domain"
	"github.com/google/uuid"
)

// incomingMovement snapshots the item into a new incoming journal line.
func incomingMovement(item domain.Item, requestID *string, qty int, personInCharge string, date time.Time, userID string, now time.Time) domain.IncomingMovement {
	return domain.IncomingMovement{
		MovementID:     uuid.NewString(),
		RequestID:      requestID,
		ItemID:         item.ItemID,
		ItemName:       item.Name,
		ItemCode:       item.Code,
		UnitOfMeasure:  item.UnitOfMeasure,
		Quantity:       qty,
		PersonInCharge: personInCharge,
		MovementDate:   date,
		CreatedAt:      now,
		CreatedBy:      userID,
	}
}

// outgoingMovement snapshots the item into an outgoing journal line dated with the request's own date.
func outgoingMovement(item domain.Item, req domain.Request, qty int, userID string, now time.Time) domain.OutgoingMovement {
	requestID := req.RequestID
	return domain.OutgoingMovement{
		MovementID:    uuid.NewString(),
		RequestID:     &requestID,
		ItemID:        item.ItemID,
		ItemName:      item.Name,
		ItemCode:      item.Code,
		UnitOfMeasure: item.UnitOfMeasure,
		Quantity:      qty,
		Receiver:      req.Receiver,
		Department:    req.Department,
		MovementDate:  req.RequestDate,
		CreatedAt:     now,
		CreatedBy:     userID,
	}
}

// dateOf truncates t to its calendar date in UTC.
func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
