// Package pipeline runs the label scan: build the prompt, call the reasoning
// service once, validate the response and annotate it with display tiers.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Aayushman-oss/nutriscan-ai/internal/extract"
	"github.com/Aayushman-oss/nutriscan-ai/internal/nutrition"
	"github.com/Aayushman-oss/nutriscan-ai/internal/prompts"
	"github.com/Aayushman-oss/nutriscan-ai/internal/schema"
	"github.com/Aayushman-oss/nutriscan-ai/internal/validate"
)

// Config configures an Analyzer.
type Config struct {
	Client    *extract.Client
	Builder   *prompts.Builder
	Validator *validate.Validator

	// InsightCount is passed to the prompt; 0 means the default.
	InsightCount int
	// Extended asks the service for the optional extended fields.
	Extended bool

	Logger *slog.Logger
}

// Analyzer turns one label image into one Assessment.
// It holds no per-request state and is safe for concurrent use.
type Analyzer struct {
	client       *extract.Client
	builder      *prompts.Builder
	validator    *validate.Validator
	insightCount int
	extended     bool
	logger       *slog.Logger
}

// NewAnalyzer creates an analyzer.
func NewAnalyzer(cfg Config) *Analyzer {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Analyzer{
		client:       cfg.Client,
		builder:      cfg.Builder,
		validator:    cfg.Validator,
		insightCount: cfg.InsightCount,
		extended:     cfg.Extended,
		logger:       cfg.Logger,
	}
}

// Analyze scans a label image. The result is either a complete Assessment or
// an error; there is no partial result.
func (a *Analyzer) Analyze(ctx context.Context, image []byte) (*nutrition.Assessment, error) {
	if len(image) == 0 {
		return nil, extract.ErrEmptyInput
	}

	requestID := extract.RequestID(ctx)
	if requestID == "" {
		requestID = uuid.New().String()
		ctx = extract.WithRequestID(ctx, requestID)
	}
	start := time.Now()

	instructions, err := a.builder.Build(prompts.AnalyzeLabel, prompts.Params{
		InsightCount: a.insightCount,
		Extended:     a.extended,
	})
	if err != nil {
		return nil, fmt.Errorf("build prompt: %w", err)
	}

	raw, err := a.client.Invoke(ctx, instructions, extract.ImagePayload(image), schema.Analysis())
	if err != nil {
		return nil, fmt.Errorf("analyze label: %w", err)
	}

	result, err := a.validator.Analysis(raw)
	if err != nil {
		a.logger.Warn("label analysis rejected", "request_id", requestID, "error", err)
		return nil, fmt.Errorf("analyze label: %w", err)
	}

	assessment := nutrition.Annotate(result)
	assessment.RequestID = requestID

	a.logger.Info("label analyzed",
		"request_id", requestID,
		"product", result.ProductIdentified,
		"rating", result.HealthRating,
		"tier", assessment.VerdictTier,
		"elapsed", time.Since(start))

	return assessment, nil
}
