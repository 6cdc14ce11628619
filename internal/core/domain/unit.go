package domain

// Unit is an organisational unit (department) that files requests and holds quotas.
type Unit struct {
	UnitID string `json:"unitID"`
	Name   string `json:"name"`
	AuditFields
}
