package repository

import (
	"context"
	"time"

	"pitchapi/internal/model"
)

// SubmissionRepository defines data access for startup submissions using SQL queries only.
// It carries no business logic, only persistence operations.
type SubmissionRepository interface {
	// Create inserts the submission and all of its files in one transaction.
	// Returns the stored submission including database generated ids and timestamps.
	Create(ctx context.Context, sub *model.Submission) (*model.Submission, error)

	// FindBySubmissionID returns a submission with its files, or sql.ErrNoRows.
	FindBySubmissionID(ctx context.Context, submissionID string) (*model.Submission, error)

	// FindByStartupName returns the oldest submission whose startup name contains name
	// (case-insensitive), with its files, or sql.ErrNoRows.
	FindByStartupName(ctx context.Context, name string) (*model.Submission, error)

	// List returns a page of submission summaries, newest first, and the total count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.SubmissionSummary], error)

	// Search returns up to limit startups whose name contains query.
	Search(ctx context.Context, query string, limit int) ([]model.StartupRef, error)

	// Stats counts submissions, files, and submissions created at or after since.
	Stats(ctx context.Context, since time.Time) (*model.Stats, error)
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
