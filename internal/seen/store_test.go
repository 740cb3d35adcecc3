package seen_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"opptracker-engine/internal/domain"
	"opptracker-engine/internal/seen"
)

func opp(source, id string) domain.Opportunity {
	return domain.Opportunity{ID: id, Source: source}
}

func TestLoadMissingFileYieldsEmptyStore(t *testing.T) {
	s, err := seen.Load(filepath.Join(t.TempDir(), "seen.json"))
	require.NoError(t, err)
	require.True(t, s.LastRun().IsZero())

	opps := []domain.Opportunity{opp("sam_gov", "a")}
	s.MarkNew(opps)
	require.True(t, opps[0].IsNew)
}

func TestMarkNewIsIdempotent(t *testing.T) {
	s, err := seen.Load(filepath.Join(t.TempDir(), "seen.json"))
	require.NoError(t, err)

	opps := []domain.Opportunity{opp("sam_gov", "a"), opp("sam_gov", "b")}
	s.MarkNew(opps)
	first := []bool{opps[0].IsNew, opps[1].IsNew}
	s.MarkNew(opps)
	require.Equal(t, first, []bool{opps[0].IsNew, opps[1].IsNew})
}

func TestCommitPersistsUnionAndReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen.json")

	s, err := seen.Load(path)
	require.NoError(t, err)

	opps := []domain.Opportunity{opp("sam_gov", "a"), opp("manual", "m1")}
	s.MarkNew(opps)
	require.True(t, opps[0].IsNew)
	require.True(t, opps[1].IsNew)

	s.Record(opps)
	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, s.Commit(now))

	// Reload: previously-seen ids are no longer new; unseen ones still are.
	s2, err := seen.Load(path)
	require.NoError(t, err)
	require.Equal(t, now, s2.LastRun().Truncate(time.Second))

	again := []domain.Opportunity{opp("sam_gov", "a"), opp("manual", "m1"), opp("sam_gov", "c")}
	s2.MarkNew(again)
	require.False(t, again[0].IsNew)
	require.False(t, again[1].IsNew)
	require.True(t, again[2].IsNew)
}

func TestNoveltyScopedPerSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen.json")

	s, err := seen.Load(path)
	require.NoError(t, err)
	s.Record([]domain.Opportunity{opp("sam_gov", "shared-id")})
	require.NoError(t, s.Commit(time.Now()))

	s2, err := seen.Load(path)
	require.NoError(t, err)
	opps := []domain.Opportunity{opp("manual", "shared-id")}
	s2.MarkNew(opps)
	require.True(t, opps[0].IsNew, "same id in a different source category is still new")
}

func TestRecordWithoutCommitLeavesFileUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen.json")

	s, err := seen.Load(path)
	require.NoError(t, err)
	s.Record([]domain.Opportunity{opp("sam_gov", "a")})

	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr), "nothing persists before Commit")
}

func TestSeenSetOnlyGrows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen.json")

	s, err := seen.Load(path)
	require.NoError(t, err)
	s.Record([]domain.Opportunity{opp("sam_gov", "a")})
	require.NoError(t, s.Commit(time.Now()))

	// Second run observes a different id; the first one must survive.
	s2, err := seen.Load(path)
	require.NoError(t, err)
	s2.Record([]domain.Opportunity{opp("sam_gov", "b")})
	require.NoError(t, s2.Commit(time.Now()))

	s3, err := seen.Load(path)
	require.NoError(t, err)
	opps := []domain.Opportunity{opp("sam_gov", "a"), opp("sam_gov", "b")}
	s3.MarkNew(opps)
	require.False(t, opps[0].IsNew)
	require.False(t, opps[1].IsNew)
}
