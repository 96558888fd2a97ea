package validator

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"pitchapi/internal/logger"
)

// Validator gates uploaded pitch documents before they are stored or analysed.
// It holds no per-call state and is safe for concurrent use.
type Validator struct {
	extractor Extractor
}

// New returns a Validator using the default content extractor.
func New() *Validator {
	return &Validator{extractor: NewContentExtractor()}
}

// NewWithExtractor returns a Validator backed by a custom extractor.
func NewWithExtractor(e Extractor) *Validator {
	return &Validator{extractor: e}
}

// Extractor exposes the extractor so callers can reuse it for the same documents.
func (v *Validator) Extractor() Extractor {
	return v.extractor
}

// Validate runs the extension gate, per-file scoring and the cross-file check.
// It never panics; an unexpected failure produces an invalid verdict with a
// single error.
func (v *Validator) Validate(ctx context.Context, files []Document, startupName string) (verdict Verdict) {
	verdict = newVerdict()

	defer func() {
		if r := recover(); r != nil {
			logger.Error(ctx, "validation_panic", "error", fmt.Sprint(r))
			verdict.IsValid = false
			verdict.Errors = append(verdict.Errors, fmt.Sprintf("Validation error: %v", r))
		}
	}()

	for _, f := range files {
		if !IsAllowedExtension(f.Filename) {
			verdict.IsValid = false
			verdict.Errors = append(verdict.Errors, fmt.Sprintf(
				"File '%s' has unsupported format. Allowed formats: %s",
				f.Filename, strings.Join(allowedExtensionList, ", "),
			))
		}
	}
	if !verdict.IsValid {
		return verdict
	}

	contents := make([]extracted, 0, len(files))
	for _, f := range files {
		text, err := v.extractor.Extract(f.Filename, f.Content)
		if err != nil {
			logger.Warn(ctx, "content_extraction_failed", "filename", f.Filename, "error", err)
			verdict.Warnings = append(verdict.Warnings,
				fmt.Sprintf("Could not analyze content of '%s': %v", f.Filename, err))
			text = ""
		}
		contents = append(contents, extracted{filename: f.Filename, text: text, size: len(text)})
	}

	name := NormalizeName(startupName)
	for _, c := range contents {
		analysis := AnalyzeFile(c.filename, c.text, name)
		verdict.FileAnalyses = append(verdict.FileAnalyses, analysis)

		if !analysis.IsFinancial {
			verdict.IsValid = false
			verdict.Errors = append(verdict.Errors, fmt.Sprintf(
				"File '%s' does not appear to be financial. Detected content type: %s",
				c.filename, analysis.DetectedType,
			))
		}
		if !analysis.StartupConsistent && analysis.StartupScore < MinStartupConsistency {
			verdict.Warnings = append(verdict.Warnings, fmt.Sprintf(
				"File '%s' may not be related to startup '%s'. Consistency score: %.2f",
				c.filename, startupName, analysis.StartupScore,
			))
		}
	}

	texts := make([]string, 0, len(contents))
	for _, c := range contents {
		texts = append(texts, c.text)
	}
	if cross := CheckCrossFile(texts); !cross.Consistent {
		verdict.Warnings = append(verdict.Warnings, cross.Warnings...)
	}

	logger.Debug(ctx, "validation_complete",
		"files", len(files),
		"is_valid", verdict.IsValid,
		"errors", len(verdict.Errors),
		"warnings", len(verdict.Warnings),
	)
	return verdict
}

// AnalyzeFile scores one extracted document against an already normalized startup name.
func AnalyzeFile(filename, text, normalizedName string) FileAnalysis {
	lex := ScoreLexical(text)
	analysis := FileAnalysis{
		Filename:       filename,
		IsFinancial:    lex.IsFinancial,
		DetectedType:   lex.DetectedType,
		FinancialScore: lex.Score,
		RedFlags:       lex.RedFlags,
	}
	if text == "" || lex.DetectedType == TypeNonFinancialPersonal {
		return analysis
	}

	analysis.StartupScore = ScoreStartupConsistency(normalizedName, strings.ToLower(text))
	analysis.StartupConsistent = analysis.StartupScore >= MinStartupConsistency
	return analysis
}

// IsAllowedExtension reports whether the file extension is on the allow-list.
func IsAllowedExtension(filename string) bool {
	if filename == "" {
		return false
	}
	_, ok := allowedExtensions[strings.ToLower(filepath.Ext(filename))]
	return ok
}
