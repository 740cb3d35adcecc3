package manual_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"opptracker-engine/internal/domain"
	"opptracker-engine/internal/fetch/manual"
)

func writeEntries(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manual_opportunities.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestFetchReadsEntries(t *testing.T) {
	path := writeEntries(t, `[
		{
			"id": "manual-1",
			"title": "MBTA Paratransit Subcontract",
			"agency": "MBTA",
			"award_amount": "250,000",
			"url": "https://example.org/rfp/1",
			"opportunity_type": "partnership",
			"status": "pending",
			"notes": "from a networking contact"
		},
		{
			"title": "Wheelchair Van Driver Needed",
			"url": "https://example.org/jobs/42",
			"sector": "private",
			"opportunity_type": "job_posting"
		}
	]`)

	leads, err := manual.New(path).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, leads, 2)

	first := leads[0]
	require.Equal(t, "manual-1", first.NativeID)
	require.Equal(t, 250000.0, first.AwardAmount)
	require.Equal(t, domain.SectorPublic, first.Sector, "sector defaults to public")
	require.Equal(t, domain.TypePartnership, first.Type)
	require.Equal(t, "pending", first.Status)
	require.Equal(t, "manual", first.Source)

	second := leads[1]
	require.NotEmpty(t, second.NativeID, "id derived from url when absent")
	require.Equal(t, domain.SectorPrivate, second.Sector)
	require.Equal(t, domain.TypeJobPosting, second.Type)
}

func TestFetchMissingFile(t *testing.T) {
	leads, err := manual.New(filepath.Join(t.TempDir(), "absent.json")).Fetch(context.Background())
	require.NoError(t, err)
	require.Empty(t, leads)
}

func TestFetchMalformedFile(t *testing.T) {
	path := writeEntries(t, `{not json`)
	leads, err := manual.New(path).Fetch(context.Background())
	require.NoError(t, err)
	require.Empty(t, leads)
}
