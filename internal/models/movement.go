package models

import "time"

// OutgoingMovement is a row of the outgoing_movements table.
type OutgoingMovement struct {
	MovementID    string    `db:"movement_id"`
	RequestID     *string   `db:"request_id"`
	ItemID        string    `db:"item_id"`
	ItemName      string    `db:"item_name"`
	ItemCode      string    `db:"item_code"`
	UnitOfMeasure string    `db:"unit_of_measure"`
	Quantity      int       `db:"quantity"`
	Receiver      string    `db:"receiver"`
	Department    string    `db:"department"`
	MovementDate  time.Time `db:"movement_date"`
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
}

// IncomingMovement is a row of the incoming_movements table.
type IncomingMovement struct {
	MovementID     string    `db:"movement_id"`
	RequestID      *string   `db:"request_id"`
	ItemID         string    `db:"item_id"`
	ItemName       string    `db:"item_name"`
	ItemCode       string    `db:"item_code"`
	UnitOfMeasure  string    `db:"unit_of_measure"`
	Quantity       int       `db:"quantity"`
	PersonInCharge string    `db:"person_in_charge"`
	MovementDate   time.Time `db:"movement_date"`
	CreatedAt      time.Time `db:"created_at"`
	CreatedBy      string    `db:"created_by"`
}
