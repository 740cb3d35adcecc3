package rank

import "opptracker-engine/internal/domain"

// Relevance scores an opportunity into high/medium/low.
//
// High on a direct keyword match OR an award at or above the configured
// high-value threshold. The two conditions are a deliberate OR, not a
// tie-break. Medium on a service-type keyword match only, low otherwise.
func Relevance(matchedDirect, matchedService []string, awardAmount, highValue float64) domain.Relevance {
	if awardAmount < 0 {
		awardAmount = 0
	}

	if len(matchedDirect) > 0 {
		return domain.RelevanceHigh
	}
	if awardAmount >= highValue {
		return domain.RelevanceHigh
	}
	if len(matchedService) > 0 {
		return domain.RelevanceMedium
	}
	return domain.RelevanceLow
}
