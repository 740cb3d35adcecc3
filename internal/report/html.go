package report

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"opptracker-engine/internal/domain"
)

type card struct {
	Opp      domain.Opportunity
	Posted   string
	Deadline string
	Award    string
	Desc     string
	Keywords []string
	Search   string // lowercased haystack for the client-side search box
}

type htmlData struct {
	Region       string
	Generated    string
	NewCount     int
	Total        int
	PublicCount  int
	PrivateCount int
	HighCount    int
	ActiveCount  int
	Sources      []string
	ServiceTypes []string
	Statuses     []string
	Commbuys     []Link
	Cards        []card
}

// WriteHTML renders the self-contained report: client-side text search,
// facet filters (sector, source, relevance, service type, status) and
// client-side sorting by posting date or deadline. Input is expected to be
// pre-sorted via SortForDisplay.
func WriteHTML(path string, opps []domain.Opportunity, links []Link, region string, runTime time.Time) error {
	data := buildData(opps, links, region, runTime)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("html output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create html: %w", err)
	}
	defer f.Close()

	if err := reportTpl.Execute(f, data); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return f.Close()
}

func buildData(opps []domain.Opportunity, links []Link, region string, runTime time.Time) htmlData {
	d := htmlData{
		Region:    region,
		Generated: runTime.UTC().Format("January 02, 2006 at 15:04 UTC"),
		Total:     len(opps),
		Commbuys:  links,
	}

	sources := map[string]bool{}
	serviceTypes := map[string]bool{}
	statuses := map[string]bool{}

	for _, o := range opps {
		if o.IsNew {
			d.NewCount++
		}
		if o.Sector == domain.SectorPublic {
			d.PublicCount++
		} else {
			d.PrivateCount++
		}
		if o.Relevance == domain.RelevanceHigh {
			d.HighCount++
		}
		if strings.EqualFold(o.Status, "active") {
			d.ActiveCount++
		}
		sources[o.Source] = true
		serviceTypes[string(o.ServiceType)] = true
		statuses[o.Status] = true

		kws := append([]string(nil), o.KeywordsMatched...)
		sort.Strings(kws)

		search := strings.ToLower(strings.Join([]string{
			o.Title, o.Agency, o.Description, strings.Join(o.KeywordsMatched, " "),
			o.ContactName, string(o.ServiceType), o.PlaceOfPerformance,
			o.NAICSCode, o.Notes,
		}, " "))
		search = truncateBytes(search, 500)

		d.Cards = append(d.Cards, card{
			Opp:      o,
			Posted:   displayDate(o.PostedDate),
			Deadline: displayDate(o.ResponseDeadline),
			Award:    formatCurrency(o.AwardAmount),
			Desc:     truncate(o.Description, 300),
			Keywords: kws,
			Search:   search,
		})
	}

	d.Sources = sortedKeys(sources)
	d.ServiceTypes = sortedKeys(serviceTypes)
	d.Statuses = sortedKeys(statuses)
	return d
}

// truncateBytes caps s at n bytes without splitting a multibyte rune.
func truncateBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func truncate(s string, n int) string {
	if s == "" {
		return "N/A"
	}
	if len(s) <= n {
		return s
	}
	return truncateBytes(s, n) + "..."
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		if k != "" {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

var reportTpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Region}} Transportation Opportunity Tracker</title>
<style>
* { box-sizing: border-box; margin: 0; padding: 0; }
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
  background: #f5f5f5; color: #333; line-height: 1.5; padding: 12px; max-width: 900px; margin: 0 auto; }
h1 { font-size: 1.3em; margin-bottom: 4px; }
.summary, .toolbar { background: #fff; border-radius: 8px; padding: 12px; margin-bottom: 16px; border: 1px solid #ddd; }
.summary-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(90px, 1fr)); gap: 8px; margin-top: 8px; }
.stat { text-align: center; padding: 8px 4px; background: #f9f9f9; border-radius: 6px; }
.stat-num { font-size: 1.5em; font-weight: bold; color: #2c3e50; }
.stat-label { font-size: 0.72em; color: #888; }
.links-section { background: #fff; border-radius: 8px; margin-bottom: 16px; border: 1px solid #ddd; }
.links-section summary { padding: 12px; cursor: pointer; font-weight: 600; font-size: 0.9em; color: #2c3e50; }
.links-section .links-body { padding: 0 12px 12px; display: flex; flex-wrap: wrap; gap: 6px; }
.search-input { width: 100%; padding: 10px 14px; font-size: 1em; border: 2px solid #ddd; border-radius: 6px; outline: none; margin-bottom: 10px; }
.filter-row { display: flex; flex-wrap: wrap; gap: 8px; align-items: center; }
.filter-select { padding: 7px 10px; font-size: 0.85em; border: 1px solid #ddd; border-radius: 6px; background: #fff; flex: 1 1 130px; min-width: 110px; }
.csv-btn { display: inline-block; padding: 7px 14px; font-size: 0.85em; background: #27ae60; color: #fff; border-radius: 6px; text-decoration: none; font-weight: 600; }
.filter-count { font-size: 0.85em; color: #888; margin-top: 8px; }
.opp-card { border: 1px solid #ddd; border-left: 4px solid #2980b9; border-radius: 8px; padding: 12px; margin-bottom: 12px; background: #fff; }
.opp-card[data-is-new="true"] { border-left-color: #27ae60; }
.card-title-row { display: flex; justify-content: space-between; align-items: flex-start; flex-wrap: wrap; gap: 6px; }
.card-name { font-size: 1em; flex: 1 1 auto; overflow-wrap: break-word; }
.badge { color: #fff; background: #7f8c8d; padding: 2px 8px; border-radius: 10px; font-size: 0.7em; font-weight: bold; white-space: nowrap; }
.badge-high { background: #c0392b; } .badge-medium { background: #e67e22; }
.badge-new { background: #27ae60; } .badge-public { background: #2980b9; } .badge-private { background: #8e44ad; }
.card-sub { color: #666; font-size: 0.85em; margin-top: 4px; }
.card-detail { font-size: 0.85em; margin-top: 4px; }
.card-desc { font-size: 0.85em; margin-top: 6px; color: #444; }
.card-notes { font-size: 0.82em; margin-top: 6px; color: #666; font-style: italic; }
.kw-tag { background: #eee; padding: 2px 6px; border-radius: 4px; font-size: 0.85em; margin: 2px; display: inline-block; }
.link-btn { display: inline-block; padding: 4px 10px; font-size: 0.78em; border: 1px solid #2980b9; border-radius: 4px; color: #2980b9; text-decoration: none; font-weight: 600; }
.no-results { text-align: center; color: #888; padding: 32px 12px; display: none; }
</style>
</head>
<body>
<h1>{{.Region}} Transportation Opportunity Tracker</h1>
<p style="color:#888;font-size:0.85em;margin-bottom:12px;">Updated {{.Generated}}</p>

<div class="summary">
  <div class="summary-grid">
    <div class="stat"><div class="stat-num">{{.NewCount}}</div><div class="stat-label">New</div></div>
    <div class="stat"><div class="stat-num">{{.Total}}</div><div class="stat-label">Total Tracked</div></div>
    <div class="stat"><div class="stat-num">{{.PublicCount}}</div><div class="stat-label">Public</div></div>
    <div class="stat"><div class="stat-num">{{.PrivateCount}}</div><div class="stat-label">Private</div></div>
    <div class="stat"><div class="stat-num">{{.HighCount}}</div><div class="stat-label">High Relevance</div></div>
    <div class="stat"><div class="stat-num">{{.ActiveCount}}</div><div class="stat-label">Active</div></div>
  </div>
</div>

{{if .Commbuys}}
<details class="links-section">
  <summary>COMMBUYS Quick Links &mdash; Search the state procurement portal</summary>
  <div class="links-body">
  {{range .Commbuys}}<a class="link-btn" href="{{.URL}}" target="_blank" rel="noopener">{{.Label}}</a>
  {{end}}</div>
</details>
{{end}}

<div class="toolbar">
  <input type="text" id="searchInput" class="search-input"
         placeholder="Search title, agency, description, keywords, contact, service type...">
  <div class="filter-row">
    <select id="filterSector" class="filter-select">
      <option value="">All Sectors</option>
      <option value="public">Public</option>
      <option value="private">Private</option>
    </select>
    <select id="filterSource" class="filter-select">
      <option value="">All Sources</option>
      {{range .Sources}}<option value="{{.}}">{{.}}</option>{{end}}
    </select>
    <select id="filterRelevance" class="filter-select">
      <option value="">All Relevance</option>
      <option value="high">High</option>
      <option value="medium">Medium</option>
      <option value="low">Low</option>
    </select>
    <select id="filterServiceType" class="filter-select">
      <option value="">All Service Types</option>
      {{range .ServiceTypes}}<option value="{{.}}">{{.}}</option>{{end}}
    </select>
    <select id="filterStatus" class="filter-select">
      <option value="">All Statuses</option>
      {{range .Statuses}}<option value="{{.}}">{{.}}</option>{{end}}
    </select>
    <select id="sortOrder" class="filter-select">
      <option value="default">Sort: Default</option>
      <option value="newest">Sort: Newest First</option>
      <option value="oldest">Sort: Oldest First</option>
      <option value="deadline">Sort: Deadline Soonest</option>
    </select>
    <a href="opportunities.csv" class="csv-btn" download>Download CSV</a>
  </div>
  <div class="filter-count" id="filterCount"></div>
</div>

<div id="cardContainer">
{{range .Cards}}<div class="opp-card"
  data-sector="{{.Opp.Sector}}"
  data-source="{{.Opp.Source}}"
  data-relevance="{{.Opp.Relevance}}"
  data-service-type="{{.Opp.ServiceType}}"
  data-status="{{.Opp.Status}}"
  data-is-new="{{if .Opp.IsNew}}true{{else}}false{{end}}"
  data-date="{{.Opp.PostedDate}}"
  data-deadline="{{.Opp.ResponseDeadline}}"
  data-search="{{.Search}}">
  <div class="card-title-row">
    <strong class="card-name">{{.Opp.Title}}</strong>
    <span>
      <span class="badge badge-{{.Opp.Sector}}">{{.Opp.Source}}</span>
      <span class="badge badge-{{.Opp.Relevance}}">{{.Opp.Relevance}}</span>
      <span class="badge">{{.Opp.ServiceType}}</span>
      {{if .Opp.IsNew}}<span class="badge badge-new">NEW</span>{{end}}
    </span>
  </div>
  <div class="card-sub">{{.Opp.Agency}}{{if .Opp.NAICSCode}} &bull; NAICS: {{.Opp.NAICSCode}}{{end}}</div>
  <div class="card-detail"><strong>Posted:</strong> {{.Posted}} &bull;
    <strong>Deadline:</strong> {{.Deadline}} &bull;
    <strong>Award:</strong> {{.Award}}</div>
  <div class="card-detail"><strong>Location:</strong> {{.Opp.PlaceOfPerformance}}</div>
  <div class="card-desc">{{.Desc}}</div>
  {{if .Opp.ContactName}}<div class="card-detail">{{.Opp.ContactName}}{{if .Opp.ContactEmail}} &bull; <a href="mailto:{{.Opp.ContactEmail}}">{{.Opp.ContactEmail}}</a>{{end}}{{if .Opp.ContactPhone}} &bull; {{.Opp.ContactPhone}}{{end}}</div>{{end}}
  {{if .Keywords}}<div class="card-detail">Keywords: {{range .Keywords}}<span class="kw-tag">{{.}}</span>{{end}}</div>{{end}}
  {{if .Opp.Notes}}<div class="card-notes">Notes: {{.Opp.Notes}}</div>{{end}}
  {{if .Opp.URL}}<div class="card-detail"><a class="link-btn" href="{{.Opp.URL}}" target="_blank" rel="noopener">View Source</a></div>{{end}}
</div>
{{end}}</div>
<div class="no-results" id="noResults">No opportunities match your filters.</div>

<script>
(function() {
  var container = document.getElementById('cardContainer');
  var noResults = document.getElementById('noResults');
  var countEl = document.getElementById('filterCount');
  var searchInput = document.getElementById('searchInput');
  var selects = {
    sector: document.getElementById('filterSector'),
    source: document.getElementById('filterSource'),
    relevance: document.getElementById('filterRelevance'),
    'service-type': document.getElementById('filterServiceType'),
    status: document.getElementById('filterStatus')
  };
  var sortOrder = document.getElementById('sortOrder');
  var debounceTimer = null;

  var cards = [];
  var els = container.getElementsByClassName('opp-card');
  for (var i = 0; i < els.length; i++) cards.push(els[i]);
  var total = cards.length;

  function applyFilters() {
    var q = searchInput.value.toLowerCase().trim();
    var shown = 0;
    for (var i = 0; i < cards.length; i++) {
      var c = cards[i];
      var visible = true;
      for (var key in selects) {
        var v = selects[key].value;
        if (v && c.getAttribute('data-' + key) !== v) visible = false;
      }
      if (q && c.getAttribute('data-search').indexOf(q) === -1) visible = false;
      c.style.display = visible ? '' : 'none';
      if (visible) shown++;
    }
    countEl.textContent = 'Showing ' + shown + ' of ' + total + ' opportunities';
    noResults.style.display = (shown === 0) ? 'block' : 'none';
  }

  function applySort() {
    var order = sortOrder.value;
    if (order === 'default') {
      // restore the server-rendered order
      for (var i = 0; i < cards.length; i++) container.appendChild(cards[i]);
      return;
    }
    var sorted = cards.slice().sort(function(a, b) {
      if (order === 'newest' || order === 'oldest') {
        var da = a.getAttribute('data-date') || '';
        var db = b.getAttribute('data-date') || '';
        if (order === 'newest') return da < db ? 1 : (da > db ? -1 : 0);
        return da > db ? 1 : (da < db ? -1 : 0);
      }
      var dla = a.getAttribute('data-deadline') || 'zzzz';
      var dlb = b.getAttribute('data-deadline') || 'zzzz';
      return dla > dlb ? 1 : (dla < dlb ? -1 : 0);
    });
    for (var i = 0; i < sorted.length; i++) container.appendChild(sorted[i]);
  }

  function update() { applySort(); applyFilters(); }

  searchInput.addEventListener('input', function() {
    if (debounceTimer) clearTimeout(debounceTimer);
    debounceTimer = setTimeout(update, 200);
  });
  for (var key in selects) selects[key].addEventListener('change', update);
  sortOrder.addEventListener('change', update);

  applyFilters();
})();
</script>
</body>
</html>
`))
