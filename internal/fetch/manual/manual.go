package manual

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"opptracker-engine/internal/domain"
	"opptracker-engine/internal/fetch/types"
	"opptracker-engine/internal/util"
)

// Reader loads locally curated opportunity entries from a JSON file. A
// missing or unreadable file means an empty manual list, never a failed run.
type Reader struct {
	path string
}

func New(path string) *Reader {
	return &Reader{path: path}
}

func (r *Reader) Name() string { return "manual" }

type entry struct {
	ID                 string       `json:"id"`
	Title              string       `json:"title"`
	Agency             string       `json:"agency"`
	PostedDate         string       `json:"posted_date"`
	ResponseDeadline   string       `json:"response_deadline"`
	NAICSCode          string       `json:"naics_code"`
	AwardAmount        types.Amount `json:"award_amount"`
	PlaceOfPerformance string       `json:"place_of_performance"`
	Description        string       `json:"description"`
	ContactName        string       `json:"contact_name"`
	ContactEmail       string       `json:"contact_email"`
	ContactPhone       string       `json:"contact_phone"`
	URL                string       `json:"url"`
	Sector             string       `json:"sector"`
	OpportunityType    string       `json:"opportunity_type"`
	Status             string       `json:"status"`
	Notes              string       `json:"notes"`
}

func (r *Reader) Fetch(ctx context.Context) ([]domain.Lead, error) {
	b, err := os.ReadFile(r.path)
	if err != nil {
		log.Printf("[manual] could not load %s: %v", r.path, err)
		return nil, nil
	}

	var entries []entry
	if err := json.Unmarshal(b, &entries); err != nil {
		log.Printf("[manual] could not parse %s: %v", r.path, err)
		return nil, nil
	}

	leads := make([]domain.Lead, 0, len(entries))
	for _, e := range entries {
		id := e.ID
		if id == "" {
			id = util.HashID("url:" + e.URL)
		}

		sector := domain.SectorPublic
		if e.Sector == string(domain.SectorPrivate) {
			sector = domain.SectorPrivate
		}

		typ := domain.TypeContract
		switch e.OpportunityType {
		case string(domain.TypeJobPosting):
			typ = domain.TypeJobPosting
		case string(domain.TypePartnership):
			typ = domain.TypePartnership
		case string(domain.TypeGig):
			typ = domain.TypeGig
		}

		leads = append(leads, domain.Lead{
			NativeID:           id,
			Title:              e.Title,
			Agency:             e.Agency,
			PostedDate:         e.PostedDate,
			ResponseDeadline:   e.ResponseDeadline,
			NAICSCode:          e.NAICSCode,
			AwardAmount:        float64(e.AwardAmount),
			Location:           e.PlaceOfPerformance,
			Description:        e.Description,
			ContactName:        e.ContactName,
			ContactEmail:       e.ContactEmail,
			ContactPhone:       e.ContactPhone,
			URL:                e.URL,
			Notes:              e.Notes,
			Source:             "manual",
			Sector:             sector,
			Type:               typ,
			Status:             e.Status, // freeform for manual entries
		})
	}

	log.Printf("[manual] loaded %d entries", len(leads))
	return leads, nil
}
