package domain

import "time"

// EventType names a workflow notification.
type EventType string

const (
	EventRequestCreated  EventType = "request.created"
	EventRequestInReview EventType = "request.in_review"
	EventRequestApproved EventType = "request.approved"
	EventRequestRejected EventType = "request.rejected"
	EventRequestFinished EventType = "request.finished"
	EventStockLow        EventType = "item.low_stock"
)

// Event is published after a workflow transaction commits.
type Event struct {
	EventID    string         `json:"eventID"`
	Type       EventType      `json:"type"`
	RequestID  string         `json:"requestID,omitempty"`
	ItemID     string         `json:"itemID,omitempty"`
	ItemName   string         `json:"itemName,omitempty"`
	Quantity   int            `json:"quantity,omitempty"`
	Status     RequestStatus  `json:"status,omitempty"`
	Message    string         `json:"message"`
	Properties map[string]any `json:"properties,omitempty"`
	OccurredAt time.Time      `json:"occurredAt"`
}
