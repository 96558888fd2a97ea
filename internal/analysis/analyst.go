// Package analysis turns validated pitch documents into a structured
// investment analysis using a remote language model.
package analysis

import (
	"context"
	"errors"
	"fmt"

	"pitchapi/internal/model"
	"pitchapi/internal/validator"
)

var (
	// ErrNoDocuments is returned when none of the documents could be attached to the prompt.
	ErrNoDocuments = errors.New("no documents could be prepared for analysis")
	// ErrMalformedResponse is returned when the model reply is not a usable analysis.
	ErrMalformedResponse = errors.New("malformed analysis response")
)

// Analyst produces an investment analysis for a startup from its documents.
type Analyst interface {
	Analyze(ctx context.Context, startupName string, docs []validator.Document) (*model.AnalysisResult, error)
}

// Fallback is the analysis returned when the model could not be reached or
// did not produce a usable answer.
func Fallback(startupName string, cause error) *model.AnalysisResult {
	return &model.AnalysisResult{
		StartupName: startupName,
		Summary:     fmt.Sprintf("Error analyzing %s: %v", startupName, cause),
		Strengths:   []string{"Analysis failed due to technical error"},
		Weaknesses:  []string{"Analysis failed - manual review required"},
		FinancialHighlights: model.FinancialHighlights{
			RevenueModel:  "Failed",
			FundingStatus: "Failed",
			MarketSize:    "Failed",
		},
		Recommendations: []string{"Manual review required"},
		RiskAssessment:  model.RiskHigh,
		InvestmentScore: 1,
	}
}
