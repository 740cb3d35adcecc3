package feeds_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"opptracker-engine/internal/config"
	"opptracker-engine/internal/domain"
	"opptracker-engine/internal/fetch/feeds"
)

const rssBody = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>boston jobs</title>
  <item>
    <title>Medical courier needed, own vehicle</title>
    <link>https://boston.example.org/post/1</link>
    <description>&lt;p&gt;Deliver &lt;b&gt;specimens&lt;/b&gt; between labs&lt;/p&gt;</description>
    <pubDate>Mon, 12 Jan 2026 09:00:00 GMT</pubDate>
  </item>
  <item>
    <title>Medical courier needed, own vehicle</title>
    <link>https://boston.example.org/post/1</link>
    <description>duplicate of the first posting</description>
  </item>
  <item>
    <title>Tow truck operator</title>
    <link>https://boston.example.org/post/2</link>
    <description>24/7 towing and recovery</description>
  </item>
  <item>
    <title>Office administrator</title>
    <link>https://boston.example.org/post/3</link>
    <description>front desk role, no driving</description>
  </item>
  <item>
    <title>No link here</title>
    <description>courier route available</description>
  </item>
</channel>
</rss>`

func feedConfig(urls ...string) config.Config {
	var cfg config.Config
	cfg.Feeds.JobFeedURLs = urls
	cfg.Feeds.RequestTimeoutSeconds = 5
	cfg.Keywords.DirectTransport = []string{"courier"}
	cfg.Keywords.PrivateSector = []string{"delivery driver"}
	cfg.Keywords.Exclude = []string{"towing"}
	return cfg
}

func TestFetchFiltersAndDedupes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(rssBody))
	}))
	defer srv.Close()

	leads, err := feeds.NewJobFeeds(feedConfig(srv.URL)).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, leads, 1, "keyword miss, exclusion, duplicate and linkless items all dropped")

	l := leads[0]
	require.Equal(t, "Medical courier needed, own vehicle", l.Title)
	require.Equal(t, "Deliver specimens between labs", l.Description, "markup stripped")
	require.Equal(t, "https://boston.example.org/post/1", l.URL)
	require.Equal(t, "2026-01-12", l.PostedDate)
	require.Equal(t, "craigslist", l.Source)
	require.Equal(t, domain.SectorPrivate, l.Sector)
	require.Equal(t, domain.TypeGig, l.Type)
	require.NotEmpty(t, l.NativeID)
}

func TestFetchSkipsHTMLFeed(t *testing.T) {
	html := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><body>please enable javascript</body></html>"))
	}))
	defer html.Close()

	rss := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(rssBody))
	}))
	defer rss.Close()

	// The HTML feed fails to parse; the good feed after it is still read.
	leads, err := feeds.NewJobFeeds(feedConfig(html.URL, rss.URL)).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, leads, 1)
}

func TestFetchSkipsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	leads, err := feeds.NewJobFeeds(feedConfig(srv.URL)).Fetch(context.Background())
	require.NoError(t, err)
	require.Empty(t, leads)
}

func TestAltFeedsCategory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(rssBody))
	}))
	defer srv.Close()

	cfg := feedConfig()
	cfg.Feeds.AltFeedURLs = []string{srv.URL}

	leads, err := feeds.NewAltFeeds(cfg).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, leads, 1)
	require.Equal(t, "indeed", leads[0].Source)
	require.Equal(t, domain.TypeJobPosting, leads[0].Type)
}
