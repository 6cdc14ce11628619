package models

import "time"

// ItemRequest is a row of the item_requests table.
type ItemRequest struct {
	RequestID         string     `db:"request_id"`
	ItemID            *string    `db:"item_id"`
	ItemName          string     `db:"item_name"`
	RequestedQuantity int        `db:"requested_quantity"`
	ApprovedQuantity  *int       `db:"approved_quantity"`
	UnitOfMeasure     string     `db:"unit_of_measure"`
	RequestDate       time.Time  `db:"request_date"`
	Receiver          string     `db:"receiver"`
	UnitID            string     `db:"unit_id"`
	Department        string     `db:"department"`
	Status            string     `db:"status"`
	Fulfillment       string     `db:"fulfillment"`
	RejectionReason   *string    `db:"rejection_reason"`
	ProcessedBy       *string    `db:"processed_by"`
	ProcessedAt       *time.Time `db:"processed_at"`
	AuditFields
}
