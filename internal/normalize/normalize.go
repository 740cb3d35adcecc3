package normalize

import (
	"log"
	"strings"

	"opptracker-engine/internal/classify"
	"opptracker-engine/internal/config"
	"opptracker-engine/internal/domain"
	"opptracker-engine/internal/match"
	"opptracker-engine/internal/rank"
	"opptracker-engine/internal/util"
)

// Options carries the keyword lists and thresholds the pipeline scores with.
type Options struct {
	DirectKeywords  []string
	ServiceKeywords []string
	ExcludeKeywords []string
	HighValue       float64
	Region          string // place-of-performance fallback
}

func FromConfig(cfg config.Config) Options {
	return Options{
		DirectKeywords:  cfg.Keywords.DirectTransport,
		ServiceKeywords: cfg.Keywords.ServiceType,
		ExcludeKeywords: cfg.Keywords.Exclude,
		HighValue:       cfg.Scoring.AutoHighValue,
		Region:          cfg.App.RegionName,
	}
}

// Leads converts raw leads into canonical opportunities: exclusion filter,
// keyword matching, classification, scoring, field defaults. Pure transform;
// excluded records are silently dropped. Exclusion is evaluated identically
// regardless of source.
func Leads(leads []domain.Lead, opts Options) []domain.Opportunity {
	out := make([]domain.Opportunity, 0, len(leads))

	for _, lead := range leads {
		searchText := searchText(lead)

		if match.Excluded(searchText, opts.ExcludeKeywords) {
			log.Printf("[%s] excluded title=%q", lead.Source, lead.Title)
			continue
		}

		matchedDirect := match.Keywords(searchText, opts.DirectKeywords)
		matchedService := match.Keywords(searchText, opts.ServiceKeywords)
		allMatched := uniq(append(append([]string{}, matchedDirect...), matchedService...))

		relevance := rank.Relevance(matchedDirect, matchedService, lead.AwardAmount, opts.HighValue)
		serviceType := classify.ServiceType(searchText, allMatched)

		out = append(out, domain.Opportunity{
			ID:                 leadID(lead),
			Title:              strings.TrimSpace(lead.Title),
			SolicitationNumber: lead.SolicitationNumber,
			Agency:             defaultStr(strings.TrimSpace(lead.Agency), "N/A"),
			PostedDate:         util.NormalizeDate(lead.PostedDate),
			ResponseDeadline:   util.NormalizeDate(lead.ResponseDeadline),
			NAICSCode:          lead.NAICSCode,
			AwardAmount:        maxFloat(lead.AwardAmount, 0),
			PlaceOfPerformance: defaultStr(strings.TrimSpace(lead.Location), opts.Region),
			Description:        strings.TrimSpace(lead.Description),
			ContactName:        lead.ContactName,
			ContactEmail:       lead.ContactEmail,
			ContactPhone:       lead.ContactPhone,
			URL:                strings.TrimSpace(lead.URL),
			KeywordsMatched:    allMatched,
			Relevance:          relevance,
			ServiceType:        serviceType,
			Source:             lead.Source,
			Sector:             defaultSector(lead.Sector),
			Type:               defaultType(lead.Type),
			Status:             defaultStr(lead.Status, "active"),
			Notes:              lead.Notes,
		})
	}

	return out
}

func searchText(lead domain.Lead) string {
	return strings.Join([]string{
		lead.Title,
		lead.Description,
		lead.Agency,
		lead.Location,
		lead.Notes,
	}, " ")
}

func leadID(lead domain.Lead) string {
	if lead.NativeID != "" {
		return lead.NativeID
	}
	if lead.URL != "" {
		return util.HashID("url:" + lead.URL)
	}
	return util.HashID(lead.Source + ":" + lead.Title)
}

func uniq(in []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func defaultStr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func defaultSector(s domain.Sector) domain.Sector {
	if s == "" {
		return domain.SectorPublic
	}
	return s
}

func defaultType(t domain.OpportunityType) domain.OpportunityType {
	if t == "" {
		return domain.TypeContract
	}
	return t
}

func maxFloat(v, floor float64) float64 {
	if v < floor {
		return floor
	}
	return v
}
