package domain

import "time"

// RequestStatus is the lifecycle state of an item request.
type RequestStatus string

const (
	StatusPending        RequestStatus = "PENDING"
	StatusApprovalReview RequestStatus = "APPROVAL_REVIEW"
	StatusApproved       RequestStatus = "APPROVED"
	StatusRejected       RequestStatus = "REJECTED"
	StatusFinished       RequestStatus = "FINISHED"
)

// IsValid reports whether s is a known status.
func (s RequestStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApprovalReview, StatusApproved, StatusRejected, StatusFinished:
		return true
	}
	return false
}

// Fulfillment decides when stock moves for a request.
type Fulfillment string

const (
	// FulfillFromStock deducts stock at approval.
	FulfillFromStock Fulfillment = "FROM_STOCK"
	// FulfillProcure approves first; stock is taken in and handed out in one step afterwards.
	FulfillProcure Fulfillment = "PROCURE"
)

// IsValid reports whether f is a known fulfillment mode.
func (f Fulfillment) IsValid() bool {
	return f == FulfillFromStock || f == FulfillProcure
}

// requestTransitions lists every legal move. FINISHED is only reachable for procurement requests.
var requestTransitions = map[RequestStatus][]RequestStatus{
	StatusPending:        {StatusApprovalReview, StatusApproved, StatusRejected},
	StatusApprovalReview: {StatusApproved, StatusRejected},
	StatusApproved:       {StatusFinished},
}

// CanTransition reports whether a request with the given fulfillment may move from one status to another.
func CanTransition(from, to RequestStatus, fulfillment Fulfillment) bool {
	if from == StatusApproved && fulfillment != FulfillProcure {
		return false
	}
	for _, next := range requestTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func IsTerminal(status RequestStatus, fulfillment Fulfillment) bool {
	switch status {
	case StatusRejected, StatusFinished:
		return true
	case StatusApproved:
		return fulfillment != FulfillProcure
	}
	return false
}

// OpenStatuses are the statuses an admin still has to act on.
var OpenStatuses = []RequestStatus{StatusPending, StatusApprovalReview}

// Request is a unit's request for a quantity of an item.
type Request struct {
	RequestID         string        `json:"requestID"`
	ItemID            *string       `json:"itemID,omitempty"` // Nil when the item was named in free text only
	ItemName          string        `json:"itemName"`
	RequestedQuantity int           `json:"requestedQuantity"`
	ApprovedQuantity  *int          `json:"approvedQuantity,omitempty"`
	UnitOfMeasure     string        `json:"unitOfMeasure"`
	RequestDate       time.Time     `json:"requestDate"`
	Receiver          string        `json:"receiver"`
	UnitID            string        `json:"unitID"`
	Department        string        `json:"department"` // Unit name at the time of filing
	Status            RequestStatus `json:"status"`
	Fulfillment       Fulfillment   `json:"fulfillment"`
	RejectionReason   *string       `json:"rejectionReason,omitempty"`
	ProcessedBy       *string       `json:"processedBy,omitempty"`
	ProcessedAt       *time.Time    `json:"processedAt,omitempty"`
	AuditFields
}

// IsTerminal reports whether the request can no longer change status.
func (r Request) IsTerminal() bool {
	return IsTerminal(r.Status, r.Fulfillment)
}

// CanMoveTo reports whether the request may move to status to.
func (r Request) CanMoveTo(to RequestStatus) bool {
	return CanTransition(r.Status, to, r.Fulfillment)
}

// HandoutQuantity is the quantity delivered at handout: the approved quantity, or the requested one.
func (r Request) HandoutQuantity() int {
	if r.ApprovedQuantity != nil {
		return *r.ApprovedQuantity
	}
	return r.RequestedQuantity
}

// RequestFilter narrows a request history listing.
type RequestFilter struct {
	UnitID      string
	Statuses    []RequestStatus
	Fulfillment Fulfillment
	Limit       int
	Offset      int
}
