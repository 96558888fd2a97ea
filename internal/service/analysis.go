package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"pitchapi/internal/analysis"
	"pitchapi/internal/logger"
	"pitchapi/internal/metrics"
	"pitchapi/internal/model"
	"pitchapi/internal/repository"
	"pitchapi/internal/storage"
	"pitchapi/internal/validator"
)

// AnalysisService produces investment analyses for submitted startups.
type AnalysisService interface {
	// Analyze finds the first submission whose name contains startupName,
	// re-validates its stored documents and asks the analyst for a verdict.
	// Documents that no longer pass validation yield a *ValidationError and
	// never reach the analyst. Analyst failures degrade to analysis.Fallback.
	Analyze(ctx context.Context, startupName string) (*model.AnalysisResult, error)
}

type analysisService struct {
	store     storage.Storage
	repo      repository.SubmissionRepository
	validator DocumentValidator
	analyst   analysis.Analyst
	metrics   *metrics.Pipeline
}

// NewAnalysisService constructs an AnalysisService. pipeline may be nil.
func NewAnalysisService(store storage.Storage, repo repository.SubmissionRepository, v DocumentValidator, analyst analysis.Analyst, pipeline *metrics.Pipeline) AnalysisService {
	return &analysisService{
		store:     store,
		repo:      repo,
		validator: v,
		analyst:   analyst,
		metrics:   pipeline,
	}
}

func (s *analysisService) Analyze(ctx context.Context, startupName string) (_ *model.AnalysisResult, err error) {
	startupName = strings.TrimSpace(startupName)
	if startupName == "" {
		return nil, ErrStartupNameRequired
	}

	ctx, span := tracer.Start(ctx, "AnalysisService.Analyze", trace.WithAttributes(
		attribute.String("startup.query", startupName),
	))
	defer func() { endSpan(span, err) }()

	sub, err := s.repo.FindByStartupName(ctx, startupName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	ctx = context.WithValue(ctx, logger.SubmissionIDKey, sub.SubmissionID)

	docs := s.load(ctx, sub.Files)
	if len(docs) == 0 {
		return nil, ErrNoDocuments
	}

	verdict := s.validator.Validate(ctx, docs, sub.StartupName)
	s.metrics.ObserveVerdict(verdict.IsValid, rejectedTypes(verdict))
	if !verdict.IsValid {
		s.metrics.ObserveAnalysis(metrics.AnalysisBlocked)
		return nil, &ValidationError{Verdict: verdict}
	}

	res, aerr := s.analyst.Analyze(ctx, sub.StartupName, docs)
	if aerr != nil {
		logger.Error(ctx, "analysis failed, returning fallback",
			"component", "service",
			"startup_name", sub.StartupName,
			"error", aerr.Error(),
		)
		span.RecordError(aerr)
		s.metrics.ObserveAnalysis(metrics.AnalysisFallback)
		return analysis.Fallback(sub.StartupName, aerr), nil
	}

	s.metrics.ObserveAnalysis(metrics.AnalysisSuccess)
	return res, nil
}

// load downloads the stored documents, skipping objects that cannot be read.
func (s *analysisService) load(ctx context.Context, files []model.SubmissionFile) []validator.Document {
	docs := make([]validator.Document, 0, len(files))
	for _, f := range files {
		b, err := storage.ReadAll(ctx, s.store, f.StoragePath)
		if err != nil {
			logger.Warn(ctx, "stored document unavailable",
				"component", "service",
				"file_path", f.StoragePath,
				"error", err.Error(),
			)
			continue
		}
		docs = append(docs, validator.Document{
			Filename:    f.OriginalName,
			ContentType: f.ContentType,
			Content:     b,
		})
	}
	return docs
}
