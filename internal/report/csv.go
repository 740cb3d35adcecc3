package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"opptracker-engine/internal/domain"
)

// KeywordDelimiter flattens the keywords_matched list into one CSV cell;
// splitting on it reconstructs the original set.
const KeywordDelimiter = "; "

// Columns is the fixed export column order.
var Columns = []string{
	"id", "title", "solicitation_number", "agency", "posted_date",
	"response_deadline", "naics_code", "award_amount", "place_of_performance",
	"description", "contact_name", "contact_email", "contact_phone", "url",
	"keywords_matched", "relevance", "service_type", "source", "sector",
	"opportunity_type", "status", "is_new", "notes",
}

// WriteCSV exports all opportunities, one row each, prefixed with a UTF-8
// BOM so spreadsheet tools pick up the encoding.
func WriteCSV(path string, opps []domain.Opportunity) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("csv output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString("\uFEFF"); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, o := range opps {
		if err := w.Write(row(o)); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return f.Close()
}

func row(o domain.Opportunity) []string {
	return []string{
		o.ID,
		o.Title,
		o.SolicitationNumber,
		o.Agency,
		o.PostedDate,
		o.ResponseDeadline,
		o.NAICSCode,
		strconv.FormatFloat(o.AwardAmount, 'f', -1, 64),
		o.PlaceOfPerformance,
		o.Description,
		o.ContactName,
		o.ContactEmail,
		o.ContactPhone,
		o.URL,
		strings.Join(o.KeywordsMatched, KeywordDelimiter),
		string(o.Relevance),
		string(o.ServiceType),
		o.Source,
		string(o.Sector),
		string(o.Type),
		o.Status,
		strconv.FormatBool(o.IsNew),
		o.Notes,
	}
}
