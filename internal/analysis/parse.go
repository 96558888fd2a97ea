package analysis

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"pitchapi/internal/model"
)

const notSpecified = "Not specified"

// field lists the keys accepted for one analysis attribute, most preferred first.
type field struct {
	name    string
	aliases []string
}

var (
	fieldSummary         = field{"summary", []string{"summary", "Summary", "executive_summary", "Executive Summary", "executiveSummary"}}
	fieldStrengths       = field{"strengths", []string{"strengths", "Strengths", "key_strengths", "Key Strengths", "keyStrengths"}}
	fieldWeaknesses      = field{"weaknesses", []string{"weaknesses", "Weaknesses", "key_weaknesses", "Key Weaknesses", "risks", "Risks"}}
	fieldHighlights      = field{"financial_highlights", []string{"financial_highlights", "Financial Highlights", "financialHighlights", "financials"}}
	fieldRecommendations = field{"recommendations", []string{"recommendations", "Recommendations", "investment_recommendations", "Investment Recommendations"}}
	fieldRisk            = field{"risk_assessment", []string{"risk_assessment", "Risk Assessment", "riskAssessment", "risk_level", "Risk Level", "risk"}}
	fieldScore           = field{"investment_score", []string{"investment_score", "Investment Score", "investmentScore", "score"}}

	fieldRevenueModel  = field{"revenue_model", []string{"revenue_model", "Revenue Model", "revenueModel"}}
	fieldFundingStatus = field{"funding_status", []string{"funding_status", "Funding Status", "fundingStatus"}}
	fieldMarketSize    = field{"market_size", []string{"market_size", "Market Size", "marketSize"}}
)

// lookup returns the value of the first alias present with a non-null value.
func (f field) lookup(m map[string]any) (any, bool) {
	for _, k := range f.aliases {
		if v, ok := m[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// ParseResult decodes a model reply into an AnalysisResult. The reply may be
// wrapped in a markdown code fence and may use any accepted alias per field.
func ParseResult(raw, startupName string) (*model.AnalysisResult, error) {
	var m map[string]any
	if err := json.Unmarshal([]byte(cleanJSONBlock(raw)), &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	summary := stringOf(m, fieldSummary, "")
	if summary == "" {
		return nil, fmt.Errorf("%w: missing %s", ErrMalformedResponse, fieldSummary.name)
	}

	res := &model.AnalysisResult{
		StartupName:     startupName,
		Summary:         summary,
		Strengths:       listOf(m, fieldStrengths),
		Weaknesses:      listOf(m, fieldWeaknesses),
		Recommendations: listOf(m, fieldRecommendations),
		RiskAssessment:  NormalizeRisk(stringOf(m, fieldRisk, "")),
		InvestmentScore: scoreOf(m),
		FinancialHighlights: model.FinancialHighlights{
			RevenueModel:  notSpecified,
			FundingStatus: notSpecified,
			MarketSize:    notSpecified,
		},
	}

	if v, ok := fieldHighlights.lookup(m); ok {
		if hm, ok := v.(map[string]any); ok {
			res.FinancialHighlights = model.FinancialHighlights{
				RevenueModel:  stringOf(hm, fieldRevenueModel, notSpecified),
				FundingStatus: stringOf(hm, fieldFundingStatus, notSpecified),
				MarketSize:    stringOf(hm, fieldMarketSize, notSpecified),
			}
		}
	}
	return res, nil
}

// NormalizeRisk maps free-form risk text onto Low, Medium or High.
// Anything unrecognised is treated as Medium.
func NormalizeRisk(s string) string {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool { return !unicode.IsLetter(r) })
	if len(words) == 0 {
		return model.RiskMedium
	}
	switch words[0] {
	case "low":
		return model.RiskLow
	case "high":
		return model.RiskHigh
	default:
		return model.RiskMedium
	}
}

// ClampScore bounds an investment score to 1..10.
func ClampScore(n int) int {
	return max(1, min(10, n))
}

func stringOf(m map[string]any, f field, def string) string {
	v, ok := f.lookup(m)
	if !ok {
		return def
	}
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case float64, bool:
		s = fmt.Sprint(t)
	default:
		return def
	}
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}

func listOf(m map[string]any, f field) []string {
	out := make([]string, 0)
	v, ok := f.lookup(m)
	if !ok {
		return out
	}
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			if item == nil {
				continue
			}
			if s := strings.TrimSpace(fmt.Sprint(item)); s != "" {
				out = append(out, s)
			}
		}
	case string:
		if s := strings.TrimSpace(t); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func scoreOf(m map[string]any) int {
	v, ok := fieldScore.lookup(m)
	if !ok {
		return 1
	}
	switch t := v.(type) {
	case float64:
		return ClampScore(int(math.Round(t)))
	case string:
		// Accepts "7", "7/10" and "7.5".
		s := strings.TrimSpace(t)
		end := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) && r != '.' })
		if end >= 0 {
			s = s[:end]
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return ClampScore(int(math.Round(f)))
		}
	}
	return 1
}

// cleanJSONBlock strips a markdown code fence around a JSON payload.
func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
