package domain

// Relevance is the three-tier relevance classification of an opportunity.
type Relevance string

const (
	RelevanceHigh   Relevance = "high"
	RelevanceMedium Relevance = "medium"
	RelevanceLow    Relevance = "low"
)

// ServiceType is the transport service category an opportunity falls into.
type ServiceType string

const (
	ServiceNEMT        ServiceType = "NEMT"
	ServiceParatransit ServiceType = "Paratransit"
	ServiceFreight     ServiceType = "Freight"
	ServiceRideshare   ServiceType = "Rideshare/Gig"
	ServiceLastMile    ServiceType = "Last-Mile Delivery"
	ServiceCourier     ServiceType = "Courier/Delivery"
	ServiceShuttle     ServiceType = "Shuttle/Charter"
	ServiceLogistics   ServiceType = "Logistics"
	ServiceOther       ServiceType = "Other Transport"
)

type Sector string

const (
	SectorPublic  Sector = "public"
	SectorPrivate Sector = "private"
)

type OpportunityType string

const (
	TypeContract    OpportunityType = "contract"
	TypeJobPosting  OpportunityType = "job_posting"
	TypePartnership OpportunityType = "partnership"
	TypeGig         OpportunityType = "gig"
)

// Opportunity is the canonical record every source is normalized into.
type Opportunity struct {
	ID                 string
	Title              string
	SolicitationNumber string
	Agency             string
	PostedDate         string // YYYY-MM-DD when derivable
	ResponseDeadline   string
	NAICSCode          string
	AwardAmount        float64 // 0 means unknown, not free
	PlaceOfPerformance string
	Description        string
	ContactName        string
	ContactEmail       string
	ContactPhone       string
	URL                string
	KeywordsMatched    []string
	Relevance          Relevance
	ServiceType        ServiceType
	Source             string
	Sector             Sector
	Type               OpportunityType
	Status             string
	IsNew              bool // computed per run, never persisted
	Notes              string
}
