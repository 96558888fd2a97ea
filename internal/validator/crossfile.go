package validator

import (
	"sort"
	"strings"
)

// CompanyReferences returns the distinct words in text that contain a company marker.
func CompanyReferences(text string) []string {
	lower := strings.ToLower(text)
	seen := map[string]struct{}{}
	for _, re := range companyMarkerPatterns {
		for _, m := range re.FindAllString(lower, -1) {
			seen[m] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for m := range seen {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// CrossFileResult reports whether a batch looks like it covers a single company.
type CrossFileResult struct {
	Consistent bool
	References []string
	Warnings   []string
}

const multiCompanyWarning = "Files may contain references to multiple different companies. " +
	"Please ensure all files are related to the same startup."

// CheckCrossFile unions company references across texts. Batches smaller than
// CrossFileMinFiles are always consistent.
func CheckCrossFile(texts []string) CrossFileResult {
	res := CrossFileResult{Consistent: true, References: []string{}, Warnings: []string{}}
	if len(texts) < CrossFileMinFiles {
		return res
	}

	seen := map[string]struct{}{}
	for _, t := range texts {
		for _, ref := range CompanyReferences(t) {
			seen[ref] = struct{}{}
		}
	}
	for ref := range seen {
		res.References = append(res.References, ref)
	}
	sort.Strings(res.References)

	if len(res.References) > CrossFileReferenceLimit {
		res.Consistent = false
		res.Warnings = append(res.Warnings, multiCompanyWarning)
	}
	return res
}
