package rank_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"opptracker-engine/internal/domain"
	"opptracker-engine/internal/rank"
)

func TestRelevance(t *testing.T) {
	const threshold = 500000

	// award alone forces high
	require.Equal(t, domain.RelevanceHigh, rank.Relevance(nil, nil, 600000, threshold))
	// nothing matched, no award
	require.Equal(t, domain.RelevanceLow, rank.Relevance(nil, nil, 0, threshold))
	// service keyword only
	require.Equal(t, domain.RelevanceMedium, rank.Relevance(nil, []string{"fleet"}, 0, threshold))
	// direct keyword forces high regardless of award
	require.Equal(t, domain.RelevanceHigh, rank.Relevance([]string{"nemt"}, nil, 0, threshold))
}

func TestRelevanceDirectAndAwardAreIndependent(t *testing.T) {
	// both conditions true is still just high; neither outranks the other
	require.Equal(t, domain.RelevanceHigh, rank.Relevance([]string{"nemt"}, nil, 900000, 500000))
}

func TestRelevanceNegativeAmountTreatedAsUnknown(t *testing.T) {
	require.Equal(t, domain.RelevanceLow, rank.Relevance(nil, nil, -50, 500000))
}

func TestRelevanceThresholdBoundary(t *testing.T) {
	require.Equal(t, domain.RelevanceHigh, rank.Relevance(nil, nil, 500000, 500000))
	require.Equal(t, domain.RelevanceLow, rank.Relevance(nil, nil, 499999, 500000))
}
