package validator

import "strings"

// LexicalScore is the keyword scan result for one document.
type LexicalScore struct {
	Score        int
	Categories   []string
	RedFlags     []string
	IsFinancial  bool
	DetectedType string
}

// ScoreLexical scans lower-cased text for red flags and financial keywords.
// More than RedFlagLimit distinct red flags short-circuits keyword scoring.
func ScoreLexical(text string) LexicalScore {
	res := LexicalScore{RedFlags: []string{}, Categories: []string{}}
	if text == "" {
		res.DetectedType = TypeEmptyOrUnreadable
		return res
	}

	lower := strings.ToLower(text)

	for _, term := range nonFinancialMarkers {
		if strings.Contains(lower, term) {
			res.RedFlags = append(res.RedFlags, term)
		}
	}
	if len(res.RedFlags) > RedFlagLimit {
		res.DetectedType = TypeNonFinancialPersonal
		return res
	}

	for _, cat := range taxonomy {
		hits := 0
		for _, kw := range cat.Keywords {
			if strings.Contains(lower, kw) {
				hits++
			}
		}
		if hits > 0 {
			res.Score += hits
			res.Categories = append(res.Categories, cat.Name)
		}
	}

	res.IsFinancial = res.Score >= MinFinancialScore
	if len(res.Categories) > 0 {
		res.DetectedType = strings.Join(res.Categories, ", ")
	} else {
		res.DetectedType = TypeNonFinancial
	}
	return res
}
