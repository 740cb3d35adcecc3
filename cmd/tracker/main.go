package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"opptracker-engine/internal/config"
	"opptracker-engine/internal/domain"
	"opptracker-engine/internal/fetch/directory"
	"opptracker-engine/internal/fetch/feeds"
	"opptracker-engine/internal/fetch/manual"
	"opptracker-engine/internal/fetch/samgov"
	"opptracker-engine/internal/fetch/types"
	"opptracker-engine/internal/normalize"
	"opptracker-engine/internal/report"
	"opptracker-engine/internal/secrets"
	"opptracker-engine/internal/seen"
	"opptracker-engine/internal/store"
)

func main() {
	dataDir := os.Getenv("OPPTRACKER_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	cfg, err := config.Load(userCfgPath)
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatal(err)
	}

	seenPath := filepath.Join(cfg.App.DataDir, "seen_opportunities.json")
	seenStore, err := seen.Load(seenPath)
	if err != nil {
		log.Fatalf("seen state load failed: %v", err)
	}

	apiKey := secrets.SAMAPIKey(cfg.SAM.APIKey)

	fetchers := []types.Fetcher{
		samgov.New(cfg, apiKey),
		feeds.NewJobFeeds(cfg),
		feeds.NewAltFeeds(cfg),
		directory.New(cfg),
		manual.New(filepath.Join(cfg.App.DataDir, "manual_opportunities.json")),
	}

	opts := normalize.FromConfig(cfg)
	parent := context.Background()

	// Sources run sequentially; a failed source contributes nothing and the
	// run proceeds with whatever succeeded.
	var all []domain.Opportunity
	perSource := map[string]int{}
	for _, f := range fetchers {
		fctx, cancel := context.WithTimeout(parent, 5*time.Minute)
		log.Printf("[%s] fetching...", f.Name())
		leads, err := f.Fetch(fctx)
		cancel()
		if err != nil {
			log.Printf("[%s] error: %v", f.Name(), err)
		}

		opps := normalize.Leads(leads, opts)
		perSource[f.Name()] = len(opps)
		all = append(all, opps...)
		log.Printf("[%s] %d raw leads, %d after filtering", f.Name(), len(leads), len(opps))
	}

	seenStore.MarkNew(all)
	seenStore.Record(all)

	report.SortForDisplay(all)
	runTime := time.Now().UTC()

	htmlPath := filepath.Join(cfg.App.OutputDir, "index.html")
	if err := report.WriteHTML(htmlPath, all, report.CommbuysLinks(cfg), cfg.App.RegionName, runTime); err != nil {
		log.Fatalf("html report failed: %v", err)
	}
	log.Printf("report saved to %s", htmlPath)

	csvPath := filepath.Join(cfg.App.OutputDir, "opportunities.csv")
	if err := report.WriteCSV(csvPath, all); err != nil {
		log.Fatalf("csv export failed: %v", err)
	}
	log.Printf("csv saved to %s", csvPath)

	archive(parent, cfg, all, runTime)

	// Outputs are on disk; only now does the novelty state advance. A
	// failed commit aborts so future runs don't lose "new" flags.
	if err := seenStore.Commit(runTime); err != nil {
		log.Fatalf("seen state commit failed: %v", err)
	}
	log.Printf("seen state updated at %s", seenPath)

	summarize(all, perSource)
}

// archive records the run in the local history database. Best-effort: any
// failure is logged and the run carries on.
func archive(ctx context.Context, cfg config.Config, opps []domain.Opportunity, runTime time.Time) {
	dbPath := filepath.Join(cfg.App.DataDir, "archive.db")
	db, err := store.Open(dbPath)
	if err != nil {
		log.Printf("[archive] open %s: %v", dbPath, err)
		return
	}
	defer db.Close()

	if err := store.Migrate(db); err != nil {
		log.Printf("[archive] migrate: %v", err)
		return
	}

	actx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()
	added, err := store.RecordRun(actx, db, opps, runTime.Format(time.RFC3339))
	if err != nil {
		log.Printf("[archive] record run: %v", err)
		return
	}
	log.Printf("[archive] %d new rows", added)
}

func summarize(all []domain.Opportunity, perSource map[string]int) {
	var newCount, high, med, low int
	for _, o := range all {
		if o.IsNew {
			newCount++
		}
		switch o.Relevance {
		case domain.RelevanceHigh:
			high++
		case domain.RelevanceMedium:
			med++
		case domain.RelevanceLow:
			low++
		}
	}

	log.Printf("total opportunities: %d (%d new)", len(all), newCount)
	for source, n := range perSource {
		log.Printf("  %s: %d", source, n)
	}
	log.Printf("relevance: high=%d medium=%d low=%d", high, med, low)
}
