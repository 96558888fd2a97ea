package model

// Risk levels accepted in an analysis.
const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
)

// FinancialHighlights summarizes the financial picture of a startup.
type FinancialHighlights struct {
	RevenueModel  string `json:"revenue_model"`
	FundingStatus string `json:"funding_status"`
	MarketSize    string `json:"market_size"`
}

// AnalysisResult is the structured investment analysis of a startup.
type AnalysisResult struct {
	StartupName         string              `json:"startup_name"`
	Summary             string              `json:"summary"`
	Strengths           []string            `json:"strengths"`
	Weaknesses          []string            `json:"weaknesses"`
	FinancialHighlights FinancialHighlights `json:"financial_highlights"`
	Recommendations     []string            `json:"recommendations"`
	RiskAssessment      string              `json:"risk_assessment"`
	InvestmentScore     int                 `json:"investment_score"`
}
