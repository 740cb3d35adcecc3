package util

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
)

func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// HashID derives a stable identifier from a natural key such as a listing URL.
func HashID(key string) string {
	sum := sha1.Sum([]byte(strings.TrimSpace(key)))
	return hex.EncodeToString(sum[:])
}

// NormalizeDate reduces a date string to YYYY-MM-DD when derivable.
// ISO timestamps lose their time part; SAM.gov's MM/dd/yyyy is reordered.
// Anything else passes through unchanged.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if i := strings.Index(s, "T"); i > 0 {
		s = s[:i]
	}
	if strings.Contains(s, "/") {
		parts := strings.Split(s, "/")
		if len(parts) == 3 {
			mm, dd, yyyy := parts[0], parts[1], parts[2]
			if len(mm) == 1 {
				mm = "0" + mm
			}
			if len(dd) == 1 {
				dd = "0" + dd
			}
			return yyyy + "-" + mm + "-" + dd
		}
	}
	return s
}
