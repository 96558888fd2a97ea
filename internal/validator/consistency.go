package validator

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9\s]`)

// NormalizeName lower-cases s and strips everything but ASCII letters, digits and whitespace.
func NormalizeName(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(nonAlnum.ReplaceAllString(strings.ToLower(s), ""))
}

// ScoreStartupConsistency returns the share of significant name tokens
// (longer than two characters) found in text, in [0, 1]. Both arguments
// are expected to be lower-cased already.
func ScoreStartupConsistency(normalizedName, lowerText string) float64 {
	total, matched := 0, 0
	for _, tok := range strings.Fields(normalizedName) {
		if len(tok) <= 2 {
			continue
		}
		total++
		if strings.Contains(lowerText, tok) {
			matched++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(matched) / float64(total)
}
