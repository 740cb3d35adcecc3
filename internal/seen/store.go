package seen

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gofrs/flock"

	"opptracker-engine/internal/domain"
)

// Store tracks which opportunity IDs have been observed in prior runs, per
// source category. It is loaded once at pipeline start, flags novelty without
// mutating, and commits the union only after report generation succeeds. A
// failed run leaves the state untouched so undelivered opportunities keep
// their "new" status on retry.
type Store struct {
	path    string
	lastRun time.Time
	seen    map[string]map[string]bool
	pending map[string]map[string]bool
}

type stateFile struct {
	LastRun string              `json:"last_run,omitempty"`
	Sources map[string][]string `json:"sources"`
}

// Load reads the persisted state. A missing file yields an empty store.
func Load(path string) (*Store, error) {
	s := &Store{
		path:    path,
		seen:    map[string]map[string]bool{},
		pending: map[string]map[string]bool{},
	}

	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read seen state: %w", err)
	}

	var f stateFile
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse seen state: %w", err)
	}

	for source, ids := range f.Sources {
		set := make(map[string]bool, len(ids))
		for _, id := range ids {
			set[id] = true
		}
		s.seen[source] = set
	}
	if f.LastRun != "" {
		s.lastRun, _ = time.Parse(time.RFC3339, f.LastRun)
	}
	return s, nil
}

func (s *Store) LastRun() time.Time { return s.lastRun }

// MarkNew sets IsNew on every opportunity relative to the persisted state of
// its source category. The seen sets are not mutated; calling MarkNew twice
// yields identical flags.
func (s *Store) MarkNew(opps []domain.Opportunity) {
	for i := range opps {
		opps[i].IsNew = !s.seen[opps[i].Source][opps[i].ID]
	}
}

// Record stages the current run's IDs for the commit union.
func (s *Store) Record(opps []domain.Opportunity) {
	for _, o := range opps {
		if o.ID == "" {
			continue
		}
		if s.pending[o.Source] == nil {
			s.pending[o.Source] = map[string]bool{}
		}
		s.pending[o.Source][o.ID] = true
	}
}

// Commit unions the staged IDs into the seen sets and persists the whole
// state atomically (temp file + rename) under an advisory file lock. The
// sets only grow; IDs are never un-seen.
func (s *Store) Commit(now time.Time) error {
	for source, ids := range s.pending {
		if s.seen[source] == nil {
			s.seen[source] = map[string]bool{}
		}
		for id := range ids {
			s.seen[source][id] = true
		}
	}
	s.pending = map[string]map[string]bool{}
	s.lastRun = now.UTC()

	f := stateFile{
		LastRun: s.lastRun.Format(time.RFC3339),
		Sources: map[string][]string{},
	}
	for source, set := range s.seen {
		ids := make([]string, 0, len(set))
		for id := range set {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		f.Sources[source] = ids
	}

	b, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal seen state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("seen state dir: %w", err)
	}

	lock := flock.New(s.path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock seen state: %w", err)
	}
	defer lock.Unlock()

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write seen state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace seen state: %w", err)
	}
	return nil
}
