package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"opptracker-engine/internal/domain"
)

// Migrate creates the run-archive schema. The archive keeps every
// opportunity ever rendered, keyed on (source, opp_id), so history outlives
// the ID-only novelty state.
func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS opportunities (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  opp_id TEXT NOT NULL,
  source TEXT NOT NULL,
  title TEXT NOT NULL,
  agency TEXT NOT NULL DEFAULT '',
  posted_date TEXT NOT NULL DEFAULT '',
  response_deadline TEXT NOT NULL DEFAULT '',
  award_amount REAL NOT NULL DEFAULT 0,
  place_of_performance TEXT NOT NULL DEFAULT '',
  url TEXT NOT NULL DEFAULT '',
  keywords TEXT NOT NULL DEFAULT '[]',
  relevance TEXT NOT NULL DEFAULT '',
  service_type TEXT NOT NULL DEFAULT '',
  sector TEXT NOT NULL DEFAULT '',
  opportunity_type TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT '',
  first_seen TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_opportunities_source_opp_id
ON opportunities(source, opp_id);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_opportunities_posted_date
ON opportunities(posted_date);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}

	return tx.Commit()
}

// InsertIgnore records one opportunity, skipping rows already archived.
func InsertIgnore(ctx context.Context, db *sql.DB, o domain.Opportunity, firstSeen string) (added bool, err error) {
	kwB, _ := json.Marshal(o.KeywordsMatched)

	res, err := db.ExecContext(ctx, `
INSERT OR IGNORE INTO opportunities
(opp_id, source, title, agency, posted_date, response_deadline, award_amount,
 place_of_performance, url, keywords, relevance, service_type, sector,
 opportunity_type, status, first_seen)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?);`,
		o.ID, o.Source, o.Title, o.Agency, o.PostedDate, o.ResponseDeadline,
		o.AwardAmount, o.PlaceOfPerformance, o.URL, string(kwB), string(o.Relevance),
		string(o.ServiceType), string(o.Sector), string(o.Type), o.Status, firstSeen,
	)
	if err != nil {
		return false, fmt.Errorf("archive insert: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// RecordRun archives a whole run's opportunities. Returns how many rows were
// newly added.
func RecordRun(ctx context.Context, db *sql.DB, opps []domain.Opportunity, firstSeen string) (added int, err error) {
	for _, o := range opps {
		ok, ierr := InsertIgnore(ctx, db, o, firstSeen)
		if ierr != nil {
			return added, ierr
		}
		if ok {
			added++
		}
	}
	return added, nil
}
