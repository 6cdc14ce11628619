package domain

import "time"

// OutgoingMovement is an append-only journal line for stock leaving the store.
// Item fields are snapshots taken at the time of the movement.
type OutgoingMovement struct {
	MovementID    string    `json:"movementID"`
	RequestID     *string   `json:"requestID,omitempty"`
	ItemID        string    `json:"itemID"`
	ItemName      string    `json:"itemName"`
	ItemCode      string    `json:"itemCode"`
	UnitOfMeasure string    `json:"unitOfMeasure"`
	Quantity      int       `json:"quantity"`
	Receiver      string    `json:"receiver"`
	Department    string    `json:"department"`
	MovementDate  time.Time `json:"movementDate"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
}

// IncomingMovement is an append-only journal line for stock entering the store.
type IncomingMovement struct {
	MovementID     string    `json:"movementID"`
	RequestID      *string   `json:"requestID,omitempty"`
	ItemID         string    `json:"itemID"`
	ItemName       string    `json:"itemName"`
	ItemCode       string    `json:"itemCode"`
	UnitOfMeasure  string    `json:"unitOfMeasure"`
	Quantity       int       `json:"quantity"`
	PersonInCharge string    `json:"personInCharge"`
	MovementDate   time.Time `json:"movementDate"`
	CreatedAt      time.Time `json:"createdAt"`
	CreatedBy      string    `json:"createdBy"`
}

// MovementFilter narrows a journal listing. Zero values mean "no filter".
type MovementFilter struct {
	ItemID     string
	Department string
	DateFrom   *time.Time
	DateTo     *time.Time
	Limit      int
	NextToken  *string
}
