package classify

import (
	"strings"

	"opptracker-engine/internal/domain"
)

type category struct {
	service domain.ServiceType
	terms   []string
}

// Categories are ordered most specific to most generic; the first category
// with any term hit wins, so a posting mentioning both "nemt" and "fleet"
// classifies as NEMT. Reordering changes results.
var categories = []category{
	{domain.ServiceNEMT, []string{
		"nemt", "non-emergency medical", "medical transport", "patient transport",
		"medicaid transport", "medical transportation", "mtm", "modivcare", "veyo",
	}},
	{domain.ServiceParatransit, []string{
		"paratransit", "dial-a-ride", "wheelchair", "stretcher", "ambulatory",
		"ada transport",
	}},
	{domain.ServiceFreight, []string{
		"freight", "trucking", "cdl", "owner operator", "box truck",
		"amazon relay", "power only", "hotshot",
	}},
	{domain.ServiceRideshare, []string{
		"rideshare", "uber", "lyft", "doordash", "instacart", "food delivery", "gig",
	}},
	{domain.ServiceLastMile, []string{
		"last-mile", "last mile", "delivery service partner", "amazon dsp",
		"cargo van", "delivery route",
	}},
	{domain.ServiceCourier, []string{
		"courier", "delivery", "specimen", "laboratory", "pharmacy",
	}},
	{domain.ServiceShuttle, []string{
		"shuttle", "airport", "charter", "passenger", "van service",
	}},
	{domain.ServiceLogistics, []string{
		"logistics", "fleet", "ground transportation",
	}},
}

// ServiceType classifies an opportunity from its free text plus the keywords
// that already matched it. Falls back to Other Transport.
func ServiceType(text string, matchedKeywords []string) domain.ServiceType {
	combined := strings.ToLower(text) + " " + strings.ToLower(strings.Join(matchedKeywords, " "))

	for _, c := range categories {
		for _, term := range c.terms {
			if strings.Contains(combined, term) {
				return c.service
			}
		}
	}
	return domain.ServiceOther
}
