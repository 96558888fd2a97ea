package analysis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"pitchapi/internal/config"
	"pitchapi/internal/logger"
	"pitchapi/internal/model"
	"pitchapi/internal/resilience"
	"pitchapi/internal/validator"
)

const (
	operationAnalyze = "gemini.analyze"
	maxDocumentChars = 200_000
)

const systemInstruction = `You are an expert venture capital analyst specializing in startup evaluation.
Analyze the provided startup documents thoroughly and provide a comprehensive analysis.

Focus on:
- Business model and market opportunity
- Financial projections and metrics
- Team and leadership
- Technology and competitive advantage
- Risks and challenges
- Investment potential

Be specific and data-driven in your analysis.`

const promptTemplate = `Please analyze the startup '%s' based on the attached documents.

Respond with a single JSON object with these keys:
- "summary": executive summary (2-3 sentences)
- "strengths": list of key strengths
- "weaknesses": list of key weaknesses or risks
- "financial_highlights": object with "revenue_model", "funding_status", "market_size"
- "recommendations": list of actionable investment recommendations
- "risk_assessment": one of "Low", "Medium", "High"
- "investment_score": integer from 1 (lowest potential) to 10 (highest potential)`

// generator sends a prompt to the model and returns the text of the reply.
type generator interface {
	Generate(ctx context.Context, parts []genai.Part) (string, error)
}

// GeminiAnalyst implements Analyst with Google Gemini. PDFs are sent as
// inline blobs, other formats as extracted text.
type GeminiAnalyst struct {
	gen       generator
	closer    io.Closer
	extractor validator.Extractor
	exec      *resilience.Executor
	timeout   time.Duration
}

var _ Analyst = (*GeminiAnalyst)(nil)

// NewGeminiAnalyst creates the Gemini client for cfg.Model.
func NewGeminiAnalyst(ctx context.Context, cfg config.GeminiConfig, extractor validator.Extractor, exec *resilience.Executor) (*GeminiAnalyst, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	m := client.GenerativeModel(cfg.Model)
	m.SetTemperature(float32(cfg.Temperature))
	m.ResponseMIMEType = "application/json"
	m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemInstruction)}}

	a := newGeminiAnalyst(&geminiModel{model: m}, extractor, exec, cfg.Timeout)
	a.closer = client
	return a, nil
}

func newGeminiAnalyst(gen generator, extractor validator.Extractor, exec *resilience.Executor, timeout time.Duration) *GeminiAnalyst {
	if exec == nil {
		exec = resilience.NewExecutor(resilience.DefaultPolicy())
	}
	return &GeminiAnalyst{gen: gen, extractor: extractor, exec: exec, timeout: timeout}
}

// Close releases the underlying client.
func (a *GeminiAnalyst) Close() error {
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}

func (a *GeminiAnalyst) Analyze(ctx context.Context, startupName string, docs []validator.Document) (*model.AnalysisResult, error) {
	parts, attached := a.buildParts(ctx, startupName, docs)
	if attached == 0 {
		return nil, ErrNoDocuments
	}

	logger.Info(ctx, "analyzing startup",
		"component", "analysis",
		"startup_name", startupName,
		"documents", attached,
	)

	var result *model.AnalysisResult
	err := a.exec.Execute(ctx, operationAnalyze, func(ctx context.Context) error {
		callCtx := ctx
		if a.timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, a.timeout)
			defer cancel()
		}

		raw, err := a.gen.Generate(callCtx, parts)
		if err != nil {
			return err
		}
		r, err := ParseResult(raw, startupName)
		if err != nil {
			return err
		}
		result = r
		return nil
	}, classifyGeminiError)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (a *GeminiAnalyst) buildParts(ctx context.Context, startupName string, docs []validator.Document) ([]genai.Part, int) {
	parts := []genai.Part{genai.Text(fmt.Sprintf(promptTemplate, startupName))}
	attached := 0

	for _, d := range docs {
		if strings.EqualFold(filepath.Ext(d.Filename), ".pdf") {
			parts = append(parts, genai.Blob{MIMEType: "application/pdf", Data: d.Content})
			attached++
			continue
		}

		text, err := a.extractor.Extract(d.Filename, d.Content)
		if err != nil || strings.TrimSpace(text) == "" {
			logger.Warn(ctx, "skipping document for analysis",
				"component", "analysis",
				"filename", d.Filename,
				"error", fmt.Sprint(err),
			)
			continue
		}
		if len(text) > maxDocumentChars {
			text = strings.ToValidUTF8(text[:maxDocumentChars], "")
		}
		parts = append(parts, genai.Text(fmt.Sprintf("Document: %s\n\n%s", d.Filename, text)))
		attached++
	}
	return parts, attached
}

// classifyGeminiError retries transient upstream failures. Caller cancellation
// and blocked prompts are neither retried nor counted against the breaker.
func classifyGeminiError(err error) resilience.Classification {
	if errors.Is(err, context.Canceled) {
		return resilience.Classification{}
	}
	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return resilience.Classification{}
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusTooManyRequests, apiErr.Code >= 500:
			return resilience.Classification{Retryable: true, RecordFailure: true}
		default:
			return resilience.Classification{RecordFailure: true}
		}
	}

	if st, ok := status.FromError(err); ok && st.Code() != codes.OK && st.Code() != codes.Unknown {
		switch st.Code() {
		case codes.Unavailable, codes.ResourceExhausted, codes.DeadlineExceeded, codes.Internal, codes.Aborted:
			return resilience.Classification{Retryable: true, RecordFailure: true}
		default:
			return resilience.Classification{RecordFailure: true}
		}
	}

	// Timeouts and malformed replies are worth another attempt.
	return resilience.Classification{Retryable: true, RecordFailure: true}
}

type geminiModel struct {
	model *genai.GenerativeModel
}

func (g *geminiModel) Generate(ctx context.Context, parts []genai.Part) (string, error) {
	resp, err := g.model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return responseText(resp)
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", ErrMalformedResponse)
	}
	c := resp.Candidates[0]
	if c.Content == nil {
		return "", fmt.Errorf("%w: empty candidate", ErrMalformedResponse)
	}

	var b strings.Builder
	for _, p := range c.Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("%w: no text parts", ErrMalformedResponse)
	}
	return b.String(), nil
}
