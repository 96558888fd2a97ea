package service

import (
	"context"
	"errors"
	"strings"

	"pitchapi/internal/validator"
)

var (
	ErrStartupNameRequired   = errors.New("startup_name is required")
	ErrSubmitterNameRequired = errors.New("submitter_name is required")
	ErrNoFiles               = errors.New("at least one file is required")
	ErrInvalidSubmissionID   = errors.New("invalid submission id")
	ErrNotFound              = errors.New("submission not found")
	ErrFileNotFound          = errors.New("file not found")
	ErrNoDocuments           = errors.New("no documents found for startup")
)

// ValidationError is returned when uploaded documents fail validation.
// The verdict carries the per-file details shown to the submitter.
type ValidationError struct {
	Verdict validator.Verdict
}

func (e *ValidationError) Error() string {
	if len(e.Verdict.Errors) == 0 {
		return "validation failed"
	}
	return "validation failed: " + strings.Join(e.Verdict.Errors, "; ")
}

// DocumentValidator decides whether a batch of documents may be accepted.
type DocumentValidator interface {
	Validate(ctx context.Context, files []validator.Document, startupName string) validator.Verdict
}
