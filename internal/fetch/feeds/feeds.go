package feeds

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"golang.org/x/time/rate"

	"opptracker-engine/internal/config"
	"opptracker-engine/internal/domain"
	"opptracker-engine/internal/match"
	"opptracker-engine/internal/util"
)

// Fetcher pulls job/gig postings from a list of RSS or Atom feeds. Feeds are
// unreliable by nature (redirects to HTML pages, missing fields, dead hosts),
// so every failure is per-feed or per-item and never aborts the run.
// Exclusion and keyword filtering happen here, inside the adapter: only items
// with at least one keyword hit are kept.
type Fetcher struct {
	name     string
	urls     []string
	keywords []string // direct + private-sector lists combined
	exclude  []string
	sector   domain.Sector
	typ      domain.OpportunityType
	hc       *http.Client
	limiter  *rate.Limiter
}

// NewJobFeeds builds the general gig-feed fetcher (craigslist category).
func NewJobFeeds(cfg config.Config) *Fetcher {
	return newFetcher(cfg, "craigslist", cfg.Feeds.JobFeedURLs, domain.TypeGig)
}

// NewAltFeeds builds the alternate job-feed fetcher (indeed category). These
// feeds commonly answer with a webpage instead of XML; parse failures skip
// the feed.
func NewAltFeeds(cfg config.Config) *Fetcher {
	return newFetcher(cfg, "indeed", cfg.Feeds.AltFeedURLs, domain.TypeJobPosting)
}

func newFetcher(cfg config.Config, name string, urls []string, typ domain.OpportunityType) *Fetcher {
	keywords := make([]string, 0, len(cfg.Keywords.DirectTransport)+len(cfg.Keywords.PrivateSector))
	keywords = append(keywords, cfg.Keywords.DirectTransport...)
	keywords = append(keywords, cfg.Keywords.PrivateSector...)

	delay := time.Duration(cfg.Feeds.PolitenessDelaySeconds) * time.Second

	return &Fetcher{
		name:     name,
		urls:     urls,
		keywords: keywords,
		exclude:  cfg.Keywords.Exclude,
		sector:   domain.SectorPrivate,
		typ:      typ,
		hc:       &http.Client{Timeout: time.Duration(cfg.Feeds.RequestTimeoutSeconds) * time.Second},
		limiter:  rate.NewLimiter(rate.Every(delay), 1),
	}
}

func (f *Fetcher) Name() string { return f.name }

func (f *Fetcher) Fetch(ctx context.Context) ([]domain.Lead, error) {
	seen := map[string]bool{} // within-run dedupe by item link
	var leads []domain.Lead

	for _, feedURL := range f.urls {
		// politeness delay between feed requests
		if err := f.limiter.Wait(ctx); err != nil {
			return leads, err
		}

		items, err := f.fetchFeed(ctx, feedURL)
		if err != nil {
			log.Printf("[%s] feed %s: %v", f.name, feedURL, err)
			continue
		}

		kept := 0
		for _, item := range items {
			lead, ok := f.itemLead(item)
			if !ok || seen[lead.URL] {
				continue
			}
			seen[lead.URL] = true
			leads = append(leads, lead)
			kept++
		}
		log.Printf("[%s] feed %s: %d items, %d kept", f.name, feedURL, len(items), kept)
	}

	return leads, nil
}

func (f *Fetcher) fetchFeed(ctx context.Context, feedURL string) ([]*gofeed.Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "opptracker/1.0")

	resp, err := f.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("feed status %d", resp.StatusCode)
	}

	// A redirect to a plain webpage shows up here as an XML parse error.
	parsed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	return parsed.Items, nil
}

func (f *Fetcher) itemLead(item *gofeed.Item) (domain.Lead, bool) {
	if item == nil || item.Link == "" {
		return domain.Lead{}, false
	}

	title := util.CleanText(item.Title)
	desc := stripMarkup(item.Description)
	text := title + " " + desc

	if match.Excluded(text, f.exclude) {
		return domain.Lead{}, false
	}
	if len(match.Keywords(text, f.keywords)) == 0 {
		return domain.Lead{}, false
	}

	posted := item.Published
	if item.PublishedParsed != nil {
		posted = item.PublishedParsed.UTC().Format("2006-01-02")
	}

	return domain.Lead{
		NativeID:    util.HashID("url:" + item.Link),
		Title:       title,
		Description: desc,
		PostedDate:  posted,
		URL:         item.Link,
		Source:      f.name,
		Sector:      f.sector,
		Type:        f.typ,
	}, true
}

// stripMarkup flattens an HTML fragment to plain text. Malformed markup
// falls back to the raw string.
func stripMarkup(s string) string {
	if s == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return util.CleanText(s)
	}
	return util.CleanText(doc.Text())
}
