package directory

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"opptracker-engine/internal/config"
	"opptracker-engine/internal/domain"
	"opptracker-engine/internal/util"
)

// Prober emits one lead per configured partner organization after a
// lightweight reachability probe of its URL. A reachable entry is "active",
// anything else is "unverified"; probes never fail the run.
type Prober struct {
	entries []config.DirectoryEntry
	hc      *http.Client
}

func New(cfg config.Config) *Prober {
	return &Prober{
		entries: cfg.Directory,
		hc:      &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *Prober) Name() string { return "directory" }

func (p *Prober) Fetch(ctx context.Context) ([]domain.Lead, error) {
	leads := make([]domain.Lead, 0, len(p.entries))

	for _, e := range p.entries {
		status := "unverified"
		if p.reachable(ctx, e.URL) {
			status = "active"
		}

		leads = append(leads, domain.Lead{
			NativeID:    util.HashID("url:" + e.URL),
			Title:       e.Name,
			Agency:      e.Name,
			Description: e.Description,
			URL:         e.URL,
			Notes:       entryNotes(e),
			Source:      "directory",
			Sector:      domain.SectorPrivate,
			Type:        domain.TypePartnership,
			Status:      status,
		})
	}

	return leads, nil
}

func (p *Prober) reachable(ctx context.Context, rawURL string) bool {
	if rawURL == "" {
		return false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", "opptracker/1.0")

	resp, err := p.hc.Do(req)
	if err != nil {
		log.Printf("[directory] probe %s: %v", rawURL, err)
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode < 400
}

func entryNotes(e config.DirectoryEntry) string {
	var parts []string
	if e.Category != "" {
		parts = append(parts, "Category: "+e.Category)
	}
	if e.Requirements != "" {
		parts = append(parts, "Requirements: "+e.Requirements)
	}
	if e.EarningPotential != "" {
		parts = append(parts, "Earning potential: "+e.EarningPotential)
	}
	return strings.Join(parts, " | ")
}
