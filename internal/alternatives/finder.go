// Package alternatives suggests whole-food substitutes for a named product.
package alternatives

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/Aayushman-oss/nutriscan-ai/internal/extract"
	"github.com/Aayushman-oss/nutriscan-ai/internal/nutrition"
	"github.com/Aayushman-oss/nutriscan-ai/internal/prompts"
	"github.com/Aayushman-oss/nutriscan-ai/internal/schema"
	"github.com/Aayushman-oss/nutriscan-ai/internal/validate"
)

// Default image lookup settings.
const (
	DefaultImageTemplate = "https://image.pollinations.ai/prompt/{prompt}?width={w}&height={h}&nologo=true"
	DefaultImageWidth    = 400
	DefaultImageHeight   = 300
)

// ImageConfig controls how image URLs are built. The URL is only ever
// handed to the presenter; nothing here fetches it.
type ImageConfig struct {
	Template string
	Width    int
	Height   int
}

// ImageURL fills template with the escaped prompt and fixed dimensions.
func (ic ImageConfig) ImageURL(prompt string) string {
	tmpl := ic.Template
	if tmpl == "" {
		tmpl = DefaultImageTemplate
	}
	w, h := ic.Width, ic.Height
	if w <= 0 {
		w = DefaultImageWidth
	}
	if h <= 0 {
		h = DefaultImageHeight
	}
	return strings.NewReplacer(
		"{prompt}", url.PathEscape(strings.TrimSpace(prompt)),
		"{w}", strconv.Itoa(w),
		"{h}", strconv.Itoa(h),
	).Replace(tmpl)
}

// ImageURL builds a URL with the default template and dimensions.
func ImageURL(prompt string) string {
	return ImageConfig{}.ImageURL(prompt)
}

// Config configures a Finder.
type Config struct {
	Client    *extract.Client
	Builder   *prompts.Builder
	Validator *validate.Validator
	Images    ImageConfig
	Logger    *slog.Logger
}

// Finder runs the alternatives flow: prompt, one service call, validation,
// image URL derivation.
type Finder struct {
	client    *extract.Client
	builder   *prompts.Builder
	validator *validate.Validator
	images    ImageConfig
	logger    *slog.Logger
}

// NewFinder creates a finder.
func NewFinder(cfg Config) *Finder {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Finder{
		client:    cfg.Client,
		builder:   cfg.Builder,
		validator: cfg.Validator,
		images:    cfg.Images,
		logger:    cfg.Logger,
	}
}

// Find returns exactly three suggestions for query, in service order.
func (f *Finder) Find(ctx context.Context, query string) ([]nutrition.AlternativeSuggestion, error) {
	instructions, err := f.builder.Build(prompts.FindAlternatives, prompts.Params{Query: query})
	if errors.Is(err, prompts.ErrEmptyQuery) {
		return nil, fmt.Errorf("%w: %w", extract.ErrEmptyInput, err)
	}
	if err != nil {
		return nil, err
	}

	requestID := extract.RequestID(ctx)
	if requestID == "" {
		requestID = uuid.New().String()
		ctx = extract.WithRequestID(ctx, requestID)
	}

	raw, err := f.client.Invoke(ctx, instructions, extract.TextPayload(query), schema.AlternativesContract())
	if err != nil {
		return nil, fmt.Errorf("find alternatives: %w", err)
	}

	suggestions, err := f.validator.Alternatives(raw)
	if err != nil {
		f.logger.Warn("alternatives response rejected", "request_id", requestID, "error", err)
		return nil, fmt.Errorf("find alternatives: %w", err)
	}

	for i := range suggestions {
		suggestions[i].ImageURL = f.images.ImageURL(suggestions[i].ImageSearchPrompt)
	}

	f.logger.Info("alternatives found", "request_id", requestID, "query", strings.TrimSpace(query), "count", len(suggestions))
	return suggestions, nil
}
