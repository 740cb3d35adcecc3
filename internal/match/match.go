package match

import "strings"

// Keywords returns the subset of keywords found in text, case-insensitive,
// preserving keyword order. Empty text matches nothing.
func Keywords(text string, keywords []string) []string {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)

	var matched []string
	for _, kw := range keywords {
		k := strings.ToLower(strings.TrimSpace(kw))
		if k == "" {
			continue
		}
		if strings.Contains(lower, k) {
			matched = append(matched, kw)
		}
	}
	return matched
}

// Excluded reports whether any exclude keyword appears in text.
func Excluded(text string, exclude []string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, kw := range exclude {
		k := strings.ToLower(strings.TrimSpace(kw))
		if k == "" {
			continue
		}
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
