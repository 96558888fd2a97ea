package model

import "time"

// SubmissionStatusSubmitted is the status of a freshly accepted submission.
const SubmissionStatusSubmitted = "submitted"

// Submission is a startup pitch submission with its stored files.
// This is a pure domain model with no database-specific dependencies.
type Submission struct {
	ID            int64            `json:"id"`
	SubmissionID  string           `json:"submission_id"`
	StartupName   string           `json:"startup_name"`
	SubmitterName string           `json:"submitter_name"`
	Status        string           `json:"status"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     *time.Time       `json:"updated_at"`
	Files         []SubmissionFile `json:"files"`
}

// SubmissionFile is one document stored in object storage for a submission.
type SubmissionFile struct {
	ID           int64     `json:"id"`
	OriginalName string    `json:"original_name"`
	SavedName    string    `json:"saved_name"`
	StoragePath  string    `json:"file_path"`
	FileSize     int64     `json:"file_size"`
	ContentType  string    `json:"content_type"`
	CreatedAt    time.Time `json:"created_at"`
}

// SubmissionSummary is the list view of a submission.
type SubmissionSummary struct {
	ID            int64     `json:"id"`
	SubmissionID  string    `json:"submission_id"`
	StartupName   string    `json:"startup_name"`
	SubmitterName string    `json:"submitter_name"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	FilesCount    int       `json:"files_count"`
}

// StartupRef is a search hit used for autocomplete.
type StartupRef struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// Stats aggregates submission counters.
type Stats struct {
	TotalSubmissions       int       `json:"total_submissions"`
	TotalFiles             int       `json:"total_files"`
	RecentSubmissionsToday int       `json:"recent_submissions_today"`
	LastUpdated            time.Time `json:"last_updated"`
}
