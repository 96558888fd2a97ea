package validator

import (
	"regexp"
	"sort"
)

// Thresholds used by the scorers and the orchestrator.
const (
	MinFinancialScore       = 3
	MinStartupConsistency   = 0.7
	RedFlagLimit            = 2
	CrossFileReferenceLimit = 5
	CrossFileMinFiles       = 2
)

// Detected type labels for documents that did not match any category.
const (
	TypeEmptyOrUnreadable    = "empty_or_unreadable"
	TypeNonFinancialPersonal = "non_financial_personal"
	TypeNonFinancial         = "non_financial"
)

// Category is a named group of financial keywords.
type Category struct {
	Name     string
	Keywords []string
}

// taxonomy is scanned in order; detected categories are reported in the same order.
var taxonomy = []Category{
	{
		Name: "balance_sheet",
		Keywords: []string{
			"assets", "liabilities", "equity", "balance sheet", "current assets",
			"fixed assets", "accounts payable", "accounts receivable", "inventory",
			"cash", "retained earnings", "shareholder equity", "working capital",
		},
	},
	{
		Name: "income_statement",
		Keywords: []string{
			"revenue", "income", "expenses", "profit", "loss", "ebitda", "ebit",
			"gross profit", "net income", "operating expenses", "cost of goods sold",
			"depreciation", "amortization", "interest expense", "tax expense",
		},
	},
	{
		Name: "cash_flow",
		Keywords: []string{
			"cash flow", "operating cash flow", "investing cash flow",
			"financing cash flow", "cash receipts", "cash payments",
			"net cash flow", "beginning cash", "ending cash",
		},
	},
	{
		Name: "cap_table",
		Keywords: []string{
			"shares", "ownership", "equity", "stockholders", "shareholders",
			"common stock", "preferred stock", "options", "warrants",
			"dilution", "valuation", "share price", "capitalization table",
			"voting rights", "liquidation preference",
		},
	},
	{
		Name: "financial_projections",
		Keywords: []string{
			"forecast", "projection", "budget", "plan", "targets",
			"assumptions", "growth rate", "market size", "projections",
		},
	},
	{
		Name: "general_financial",
		Keywords: []string{
			"financial", "money", "dollar", "currency", "investment",
			"funding", "capital", "valuation", "metrics", "kpi",
			"performance", "analysis", "report", "statement",
		},
	},
}

var nonFinancialMarkers = []string{
	"recipe", "cooking", "personal", "diary", "vacation", "travel",
	"photo", "image", "music", "video", "game", "entertainment",
	"social media", "facebook", "instagram", "twitter", "personal note",
	"shopping list", "grocery", "family", "wedding", "birthday",
}

var companyMarkers = []string{
	"company", "corporation", "inc", "llc", "ltd", "startup",
	"business", "enterprise", "firm", "organization", "venture",
}

// wordRunes matches a run of Unicode word characters. Leftmost matching of
// a run on both sides of a marker spans the whole word, so no \b is needed.
const wordRunes = `[\p{L}\p{M}\p{N}_]*`

// companyMarkerPatterns match any whole word containing a company marker.
var companyMarkerPatterns = func() []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(companyMarkers))
	for _, m := range companyMarkers {
		out = append(out, regexp.MustCompile(wordRunes+regexp.QuoteMeta(m)+wordRunes))
	}
	return out
}()

var allowedExtensions = map[string]struct{}{
	".pdf":  {},
	".docx": {},
	".doc":  {},
	".xlsx": {},
	".xls":  {},
	".csv":  {},
	".txt":  {},
}

// allowedExtensionList is the sorted allow-list used in error messages.
var allowedExtensionList = func() []string {
	out := make([]string, 0, len(allowedExtensions))
	for ext := range allowedExtensions {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}()

// Taxonomy returns a copy of the financial keyword taxonomy.
func Taxonomy() []Category {
	out := make([]Category, len(taxonomy))
	for i, c := range taxonomy {
		out[i] = Category{Name: c.Name, Keywords: append([]string(nil), c.Keywords...)}
	}
	return out
}

// AllowedExtensions returns the sorted list of accepted file extensions.
func AllowedExtensions() []string {
	return append([]string(nil), allowedExtensionList...)
}
