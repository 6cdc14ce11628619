package domain

// Quota caps the cumulative approved quantity of one item for one unit.
// No row for a pair means the pair is unlimited.
type Quota struct {
	ItemID    string `json:"itemID"`
	UnitID    string `json:"unitID"`
	QuotaMax  int    `json:"quotaMax"`
	QuotaUsed int    `json:"quotaUsed"`
	AuditFields
}

// CanReserve reports whether amount more units fit under the cap.
func (q Quota) CanReserve(amount int) bool {
	return q.QuotaUsed+amount <= q.QuotaMax
}

// Remaining returns how much may still be approved, never negative.
func (q Quota) Remaining() int {
	if q.QuotaUsed >= q.QuotaMax {
		return 0
	}
	return q.QuotaMax - q.QuotaUsed
}
