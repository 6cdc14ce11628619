package models

// Item is a row of the items table.
type Item struct {
	ItemID        string `db:"item_id"`
	Name          string `db:"name"`
	Code          string `db:"code"`
	Quantity      int    `db:"quantity"`
	UnitOfMeasure string `db:"unit_of_measure"`
	Location      string `db:"location"`
	MinStock      int    `db:"min_stock"`
	AuditFields
}

// Quota is a row of the quotas table.
type Quota struct {
	ItemID    string `db:"item_id"`
	UnitID    string `db:"unit_id"`
	QuotaMax  int    `db:"quota_max"`
	QuotaUsed int    `db:"quota_used"`
	AuditFields
}
