package samgov

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"opptracker-engine/internal/config"
	"opptracker-engine/internal/domain"
)

const (
	pageLimit = 25
	maxPages  = 40 // safety limit per NAICS code
)

// Client fetches contract opportunities from the SAM.gov v2 search API,
// paginating each configured NAICS code and deduplicating by notice ID
// across pages and codes.
type Client struct {
	cfg    config.Config
	apiKey string
	hc     *http.Client
}

func New(cfg config.Config, apiKey string) *Client {
	return &Client{
		cfg:    cfg,
		apiKey: apiKey,
		hc:     &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *Client) Name() string { return "sam_gov" }

func (c *Client) Fetch(ctx context.Context) ([]domain.Lead, error) {
	if c.apiKey == "" {
		// Feature disabled, not an error.
		log.Printf("[sam_gov] no API key configured; skipping SAM.gov fetch")
		return nil, nil
	}

	seen := map[string]bool{}
	var leads []domain.Lead

	for _, naics := range c.cfg.SAM.NAICSCodes {
		offset := 0
		for page := 0; page < maxPages; page++ {
			resp, err := c.search(ctx, naics, offset)
			if err != nil {
				log.Printf("[sam_gov] naics=%s offset=%d: %v", naics, offset, err)
				break
			}
			if len(resp.OpportunitiesData) == 0 {
				break
			}

			for _, n := range resp.OpportunitiesData {
				if n.NoticeID == "" || seen[n.NoticeID] {
					continue
				}
				seen[n.NoticeID] = true
				leads = append(leads, n.lead())
			}

			offset += pageLimit
			if offset >= resp.TotalRecords {
				break
			}
		}
		log.Printf("[sam_gov] naics=%s done, %d unique notices so far", naics, len(leads))
	}

	return leads, nil
}

type searchResponse struct {
	TotalRecords      int      `json:"totalRecords"`
	OpportunitiesData []notice `json:"opportunitiesData"`
}

func (c *Client) search(ctx context.Context, naics string, offset int) (*searchResponse, error) {
	now := time.Now().UTC()
	postedFrom := now.AddDate(0, 0, -c.cfg.SAM.SearchDaysBack).Format("01/02/2006")
	postedTo := now.Format("01/02/2006")

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("postedFrom", postedFrom)
	params.Set("postedTo", postedTo)
	params.Set("ncode", naics)
	params.Set("limit", strconv.Itoa(pageLimit))
	params.Set("offset", strconv.Itoa(offset))
	params.Set("ptype", "o,p,k")
	for _, state := range c.cfg.App.States {
		params.Add("state", state)
	}

	requestURL := fmt.Sprintf("%s?%s", c.cfg.SAM.APIBaseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "opptracker/1.0")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("sam.gov status %d: %s", resp.StatusCode, string(body))
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}
