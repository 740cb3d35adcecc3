package domain

// Lead is a raw record as flattened at an adapter boundary. Adapters translate
// their native payload shapes into this single type so the normalizer never
// branches on source-specific structure.
type Lead struct {
	NativeID           string // adapter-native identifier; empty when the source has none
	Title              string
	SolicitationNumber string
	Agency             string
	PostedDate         string // as provided by the source
	ResponseDeadline   string
	NAICSCode          string
	AwardAmount        float64
	Location           string
	Description        string
	ContactName        string
	ContactEmail       string
	ContactPhone       string
	URL                string
	Notes              string
	Source             string // sam_gov/craigslist/indeed/directory/manual
	Sector             Sector
	Type               OpportunityType
	Status             string // empty means active
}
