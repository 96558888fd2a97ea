package service

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"pitchapi/internal/logger"
	"pitchapi/internal/metrics"
	"pitchapi/internal/model"
	"pitchapi/internal/repository"
	"pitchapi/internal/storage"
	"pitchapi/internal/validator"
)

const (
	// SearchLimit caps autocomplete results.
	SearchLimit = 10
	// FileURLExpiry is the lifetime of presigned download links.
	FileURLExpiry = 15 * time.Minute
)

var tracer = otel.Tracer("pitchapi/service")

// SubmitInput is a startup submission as received from the client.
type SubmitInput struct {
	StartupName   string
	SubmitterName string
	Files         []validator.Document
}

// SubmitResult describes an accepted submission.
type SubmitResult struct {
	Submission *model.Submission
	Verdict    validator.Verdict
	Timestamp  time.Time
}

// SubmissionListResult is the service-level DTO for paginated submissions.
type SubmissionListResult struct {
	Items []model.SubmissionSummary `json:"data"`
	Total int                       `json:"total"`
}

// SubmissionService defines the use cases around startup submissions.
type SubmissionService interface {
	// Submit validates the documents, stores them with a metadata.json under
	// submissions/<submission_id>/ and records the submission. Invalid
	// documents yield a *ValidationError and nothing is stored. Uploaded
	// objects are removed again if the database insert fails.
	Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error)

	// Validate runs the validator without storing anything.
	Validate(ctx context.Context, startupName string, files []validator.Document) validator.Verdict

	// Get returns a submission with its files.
	Get(ctx context.Context, submissionID string) (*model.Submission, error)

	// List returns paginated submissions using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*SubmissionListResult, error)

	// Search returns up to SearchLimit startups whose name contains query.
	Search(ctx context.Context, query string) ([]model.StartupRef, error)

	// Stats returns submission counters; "today" is measured in the service location.
	Stats(ctx context.Context) (*model.Stats, error)

	// FileURL returns a presigned download link for one stored file.
	FileURL(ctx context.Context, submissionID string, fileID int64) (string, error)
}

type submissionService struct {
	store     storage.Storage
	repo      repository.SubmissionRepository
	validator DocumentValidator
	metrics   *metrics.Pipeline
	loc       *time.Location
	now       func() time.Time
}

// NewSubmissionService constructs a SubmissionService. pipeline may be nil.
func NewSubmissionService(store storage.Storage, repo repository.SubmissionRepository, v DocumentValidator, pipeline *metrics.Pipeline, loc *time.Location) SubmissionService {
	if loc == nil {
		loc = time.UTC
	}
	return &submissionService{
		store:     store,
		repo:      repo,
		validator: v,
		metrics:   pipeline,
		loc:       loc,
		now:       time.Now,
	}
}

func (s *submissionService) Submit(ctx context.Context, in SubmitInput) (_ *SubmitResult, err error) {
	startupName := strings.TrimSpace(in.StartupName)
	submitterName := strings.TrimSpace(in.SubmitterName)
	switch {
	case startupName == "":
		return nil, ErrStartupNameRequired
	case submitterName == "":
		return nil, ErrSubmitterNameRequired
	case len(in.Files) == 0:
		return nil, ErrNoFiles
	}

	ctx, span := tracer.Start(ctx, "SubmissionService.Submit", trace.WithAttributes(
		attribute.String("startup.name", startupName),
		attribute.Int("files.count", len(in.Files)),
	))
	defer func() { endSpan(span, err) }()

	verdict := s.validate(ctx, startupName, in.Files)
	if !verdict.IsValid {
		return nil, &ValidationError{Verdict: verdict}
	}

	submissionID := uuid.NewString()
	ctx = context.WithValue(ctx, logger.SubmissionIDKey, submissionID)
	span.SetAttributes(attribute.String("submission.id", submissionID))
	now := s.now().In(s.loc)

	sub := &model.Submission{
		SubmissionID:  submissionID,
		StartupName:   startupName,
		SubmitterName: submitterName,
		Status:        model.SubmissionStatusSubmitted,
		Files:         make([]model.SubmissionFile, 0, len(in.Files)),
	}

	uploaded := make([]string, 0, len(in.Files)+1)
	for _, f := range in.Files {
		savedName := uuid.NewString() + strings.ToLower(filepath.Ext(f.Filename))
		key := storage.SubmissionFileKey(submissionID, savedName)
		contentType := f.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		info, err := s.store.Put(ctx, key, bytes.NewReader(f.Content), storage.PutObjectOptions{
			Size:        int64(len(f.Content)),
			ContentType: contentType,
			Metadata:    map[string]string{"original-filename": f.Filename},
		})
		if err != nil {
			return nil, s.abort(ctx, uploaded, fmt.Errorf("upload to storage: %w", err))
		}
		uploaded = append(uploaded, info.Key)

		sub.Files = append(sub.Files, model.SubmissionFile{
			OriginalName: f.Filename,
			SavedName:    savedName,
			StoragePath:  info.Key,
			FileSize:     int64(len(f.Content)),
			ContentType:  contentType,
		})
	}

	metaKey, err := s.putMetadata(ctx, sub, now)
	if err != nil {
		return nil, s.abort(ctx, uploaded, fmt.Errorf("upload metadata: %w", err))
	}
	uploaded = append(uploaded, metaKey)

	stored, err := s.repo.Create(ctx, sub)
	if err != nil {
		return nil, s.abort(ctx, uploaded, fmt.Errorf("db save failed: %w", err))
	}

	logger.Info(ctx, "submission stored",
		"component", "service",
		"startup_name", startupName,
		"files", len(stored.Files),
		"warnings", len(verdict.Warnings),
	)
	return &SubmitResult{Submission: stored, Verdict: verdict, Timestamp: now}, nil
}

// submissionMetadata is the metadata.json stored next to the submission files.
type submissionMetadata struct {
	SubmissionID        string                 `json:"submission_id"`
	StartupName         string                 `json:"startup_name"`
	SubmitterName       string                 `json:"submitter_name"`
	SubmissionTimestamp time.Time              `json:"submission_timestamp"`
	Files               []model.SubmissionFile `json:"files"`
	Status              string                 `json:"status"`
}

func (s *submissionService) putMetadata(ctx context.Context, sub *model.Submission, ts time.Time) (string, error) {
	b, err := json.MarshalIndent(submissionMetadata{
		SubmissionID:        sub.SubmissionID,
		StartupName:         sub.StartupName,
		SubmitterName:       sub.SubmitterName,
		SubmissionTimestamp: ts,
		Files:               sub.Files,
		Status:              sub.Status,
	}, "", "  ")
	if err != nil {
		return "", err
	}

	key := storage.MetadataKey(sub.SubmissionID)
	info, err := s.store.Put(ctx, key, bytes.NewReader(b), storage.PutObjectOptions{
		Size:        int64(len(b)),
		ContentType: "application/json",
	})
	if err != nil {
		return "", err
	}
	return info.Key, nil
}

// abort deletes already uploaded objects and returns cause, extended with any
// rollback failure.
func (s *submissionService) abort(ctx context.Context, keys []string, cause error) error {
	var errs []error
	for _, k := range keys {
		if err := s.store.Delete(ctx, k); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", k, err))
		}
	}
	if len(errs) > 0 {
		logger.Error(ctx, "storage rollback incomplete", "component", "service", "error", errors.Join(errs...).Error())
		return fmt.Errorf("%w; rollback delete failed: %v", cause, errors.Join(errs...))
	}
	return cause
}

func (s *submissionService) Validate(ctx context.Context, startupName string, files []validator.Document) validator.Verdict {
	ctx, span := tracer.Start(ctx, "SubmissionService.Validate", trace.WithAttributes(
		attribute.Int("files.count", len(files)),
	))
	defer span.End()

	return s.validate(ctx, strings.TrimSpace(startupName), files)
}

func (s *submissionService) validate(ctx context.Context, startupName string, files []validator.Document) validator.Verdict {
	verdict := s.validator.Validate(ctx, files, startupName)
	s.metrics.ObserveVerdict(verdict.IsValid, rejectedTypes(verdict))
	return verdict
}

func rejectedTypes(v validator.Verdict) []string {
	var out []string
	for _, fa := range v.FileAnalyses {
		if !fa.IsFinancial {
			out = append(out, fa.DetectedType)
		}
	}
	return out
}

func (s *submissionService) Get(ctx context.Context, submissionID string) (*model.Submission, error) {
	if _, err := uuid.Parse(submissionID); err != nil {
		return nil, ErrInvalidSubmissionID
	}
	sub, err := s.repo.FindBySubmissionID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sub, nil
}

func (s *submissionService) List(ctx context.Context, limit, offset int) (*SubmissionListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &SubmissionListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *submissionService) Search(ctx context.Context, query string) ([]model.StartupRef, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.StartupRef{}, nil
	}
	return s.repo.Search(ctx, query, SearchLimit)
}

func (s *submissionService) Stats(ctx context.Context) (*model.Stats, error) {
	now := s.now().In(s.loc)
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)

	st, err := s.repo.Stats(ctx, startOfDay)
	if err != nil {
		return nil, err
	}
	st.LastUpdated = now
	return st, nil
}

func (s *submissionService) FileURL(ctx context.Context, submissionID string, fileID int64) (string, error) {
	sub, err := s.Get(ctx, submissionID)
	if err != nil {
		return "", err
	}
	for _, f := range sub.Files {
		if f.ID == fileID {
			return s.store.PresignGet(ctx, f.StoragePath, f.OriginalName, FileURLExpiry)
		}
	}
	return "", ErrFileNotFound
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
