package report

import (
	"fmt"
	"net/url"
	"sort"

	"opptracker-engine/internal/config"
	"opptracker-engine/internal/domain"
)

var relevanceOrder = map[domain.Relevance]int{
	domain.RelevanceHigh:   0,
	domain.RelevanceMedium: 1,
	domain.RelevanceLow:    2,
}

// SortForDisplay orders opportunities for the report's initial view:
// relevance tier ascending (high first), award amount descending within tier.
func SortForDisplay(opps []domain.Opportunity) {
	sort.SliceStable(opps, func(i, j int) bool {
		oi, oj := relevanceOrder[opps[i].Relevance], relevanceOrder[opps[j].Relevance]
		if oi != oj {
			return oi < oj
		}
		return opps[i].AwardAmount > opps[j].AwardAmount
	})
}

// Link is a labelled outbound search link.
type Link struct {
	Label string
	URL   string
}

// CommbuysLinks builds prebuilt search links into the state procurement
// portal for the configured terms.
func CommbuysLinks(cfg config.Config) []Link {
	links := make([]Link, 0, len(cfg.Commbuys.Terms))
	for _, t := range cfg.Commbuys.Terms {
		q := url.Values{}
		q.Set("keywords", t.Query)
		links = append(links, Link{
			Label: t.Label,
			URL:   cfg.Commbuys.SearchURL + "?" + q.Encode(),
		})
	}
	return links
}

func formatCurrency(v float64) string {
	if v <= 0 {
		return "N/A"
	}
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("$%.1fM", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("$%.0fK", v/1_000)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}

func displayDate(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
