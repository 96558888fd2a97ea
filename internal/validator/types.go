package validator

// Document is a single uploaded file as seen by the validator.
// The content is only held for the duration of one Validate call.
type Document struct {
	Filename    string
	ContentType string
	Content     []byte
}

// FileAnalysis is the per-document verdict.
type FileAnalysis struct {
	Filename          string   `json:"filename"`
	IsFinancial       bool     `json:"is_financial"`
	DetectedType      string   `json:"detected_type"`
	FinancialScore    int      `json:"financial_score"`
	StartupConsistent bool     `json:"startup_consistent"`
	StartupScore      float64  `json:"startup_score"`
	RedFlags          []string `json:"red_flags"`
}

// Verdict is the batch-level result of a validation run.
type Verdict struct {
	IsValid      bool           `json:"is_valid"`
	Errors       []string       `json:"errors"`
	Warnings     []string       `json:"warnings"`
	FileAnalyses []FileAnalysis `json:"file_analyses"`
}

func newVerdict() Verdict {
	return Verdict{
		IsValid:      true,
		Errors:       []string{},
		Warnings:     []string{},
		FileAnalyses: []FileAnalysis{},
	}
}

// FinancialFiles counts analyses that passed the financial gate.
func (v Verdict) FinancialFiles() int {
	n := 0
	for _, a := range v.FileAnalyses {
		if a.IsFinancial {
			n++
		}
	}
	return n
}

// InconsistentFiles counts analyses whose startup name overlap was too low.
func (v Verdict) InconsistentFiles() int {
	n := 0
	for _, a := range v.FileAnalyses {
		if !a.StartupConsistent {
			n++
		}
	}
	return n
}

// extracted is the plain-text form of a Document.
type extracted struct {
	filename string
	text     string
	size     int
}
