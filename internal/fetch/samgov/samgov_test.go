package samgov_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"opptracker-engine/internal/config"
	"opptracker-engine/internal/domain"
	"opptracker-engine/internal/fetch/samgov"
)

func samConfig(baseURL string) config.Config {
	var cfg config.Config
	cfg.App.States = []string{"MA"}
	cfg.SAM.APIBaseURL = baseURL
	cfg.SAM.SearchDaysBack = 30
	cfg.SAM.NAICSCodes = []string{"485991"}
	return cfg
}

func TestFetchWithoutKeyIsDisabled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no requests expected without an API key")
	}))
	defer srv.Close()

	leads, err := samgov.New(samConfig(srv.URL), "").Fetch(context.Background())
	require.NoError(t, err)
	require.Empty(t, leads)
}

func TestFetchPaginatesAndDedupes(t *testing.T) {
	page := func(offset int) map[string]any {
		var data []map[string]any
		n := 25
		if offset == 25 {
			n = 5
		}
		for i := 0; i < n; i++ {
			data = append(data, map[string]any{
				"noticeId": fmt.Sprintf("notice-%d", offset+i),
				"title":    fmt.Sprintf("Opportunity %d", offset+i),
			})
		}
		// the API occasionally repeats a notice across page boundaries
		if offset == 25 {
			data = append(data, map[string]any{"noticeId": "notice-0", "title": "Opportunity 0"})
		}
		return map[string]any{"totalRecords": 30, "opportunitiesData": data}
	}

	var gotParams []map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotParams = append(gotParams, map[string]string{
			"api_key": q.Get("api_key"),
			"ncode":   q.Get("ncode"),
			"ptype":   q.Get("ptype"),
			"state":   q.Get("state"),
			"limit":   q.Get("limit"),
			"offset":  q.Get("offset"),
		})
		offset := 0
		fmt.Sscanf(q.Get("offset"), "%d", &offset)
		json.NewEncoder(w).Encode(page(offset))
	}))
	defer srv.Close()

	leads, err := samgov.New(samConfig(srv.URL), "test-key").Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, leads, 30, "duplicate notice across pages is kept once")

	require.Len(t, gotParams, 2)
	require.Equal(t, "test-key", gotParams[0]["api_key"])
	require.Equal(t, "485991", gotParams[0]["ncode"])
	require.Equal(t, "o,p,k", gotParams[0]["ptype"])
	require.Equal(t, "MA", gotParams[0]["state"])
	require.Equal(t, "25", gotParams[0]["limit"])
	require.Equal(t, "0", gotParams[0]["offset"])
	require.Equal(t, "25", gotParams[1]["offset"])

	require.Equal(t, "notice-0", leads[0].NativeID)
	require.Equal(t, "https://sam.gov/opp/notice-0/view", leads[0].URL)
	require.Equal(t, "sam_gov", leads[0].Source)
	require.Equal(t, domain.SectorPublic, leads[0].Sector)
	require.Equal(t, domain.TypeContract, leads[0].Type)
}

func TestFetchPageErrorMovesToNextCode(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Query().Get("ncode") == "485991" {
			http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"totalRecords": 1,
			"opportunitiesData": []map[string]any{
				{"noticeId": "ok-1", "title": "Shuttle Services"},
			},
		})
	}))
	defer srv.Close()

	cfg := samConfig(srv.URL)
	cfg.SAM.NAICSCodes = []string{"485991", "485999"}

	leads, err := samgov.New(cfg, "test-key").Fetch(context.Background())
	require.NoError(t, err, "a failing code never aborts the fetch")
	require.Len(t, leads, 1)
	require.Equal(t, "ok-1", leads[0].NativeID)
	require.Equal(t, 2, calls)
}
