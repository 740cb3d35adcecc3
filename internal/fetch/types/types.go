package types

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"opptracker-engine/internal/domain"
)

// Fetcher turns one remote or local source into raw leads. Fetchers are
// best-effort: a failed source returns what it has plus an error the caller
// logs, and the run proceeds with the remaining sources.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context) ([]domain.Lead, error)
}

// Amount decodes a monetary value that sources ship as a number, a numeric
// string, or garbage. Unparseable input coerces to zero (unknown).
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		*a = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "$")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		*a = 0
		return nil
	}
	*a = Amount(v)
	return nil
}

var _ json.Unmarshaler = (*Amount)(nil)
