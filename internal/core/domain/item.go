package domain

// Item is a stocked catalog entry. Quantity never drops below zero.
type Item struct {
	ItemID        string `json:"itemID"`
	Name          string `json:"name"` // Unique, case-insensitive
	Code          string `json:"code"`
	Quantity      int    `json:"quantity"`
	UnitOfMeasure string `json:"unitOfMeasure"`
	Location      string `json:"location"`
	MinStock      int    `json:"minStock"`
	AuditFields
}

// IsLowStock reports whether the stock on hand is at or below the reorder level.
func (i Item) IsLowStock() bool {
	return i.Quantity <= i.MinStock
}

// ItemNameMatch selects how a free-text item name is compared against the catalog.
type ItemNameMatch int

const (
	MatchExact ItemNameMatch = iota
	MatchCaseInsensitive
	MatchContains
)

func (m ItemNameMatch) String() string {
	switch m {
	case MatchExact:
		return "exact"
	case MatchCaseInsensitive:
		return "case-insensitive"
	case MatchContains:
		return "contains"
	default:
		return "unknown"
	}
}

// ItemResolutionTiers is the order in which name matching is attempted.
// The first tier that returns any rows decides the outcome.
var ItemResolutionTiers = []ItemNameMatch{MatchExact, MatchCaseInsensitive, MatchContains}
