package svcctx

import (
	"fmt"
	"log/slog"

	"github.com/Aayushman-oss/nutriscan-ai/internal/alternatives"
	"github.com/Aayushman-oss/nutriscan-ai/internal/config"
	"github.com/Aayushman-oss/nutriscan-ai/internal/extract"
	"github.com/Aayushman-oss/nutriscan-ai/internal/pipeline"
	"github.com/Aayushman-oss/nutriscan-ai/internal/prompts"
	"github.com/Aayushman-oss/nutriscan-ai/internal/prompts/catalog"
	"github.com/Aayushman-oss/nutriscan-ai/internal/providers"
	"github.com/Aayushman-oss/nutriscan-ai/internal/validate"
)

// New wires the analyzer and finder for cfg against the default provider in
// reg. A default provider without a credential fails here with
// extract.ErrInvalidConfiguration, before any request is served.
func New(cfg *config.Config, reg *providers.Registry, logger *slog.Logger) (*Services, error) {
	if logger == nil {
		logger = slog.Default()
	}

	resolver := catalog.NewResolver(logger, cfg.PromptOverrides())
	builder := prompts.NewBuilder(resolver)

	validator, err := validate.New(validate.Options{
		Strict:       cfg.Pipeline.StrictContract,
		InsightCount: cfg.Pipeline.InsightCount,
		Logger:       logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compile contracts: %w", err)
	}

	provider, _ := cfg.GetLLMProvider(cfg.Defaults.LLMProvider)
	client, err := extract.FromRegistry(reg, cfg.Defaults.LLMProvider, extract.Config{
		Model:       provider.Model,
		Temperature: cfg.Defaults.Temperature,
		MaxTokens:   cfg.Defaults.MaxTokens,
		Timeout:     cfg.CallTimeout(),
		Logger:      logger,
	})
	if err != nil {
		return nil, err
	}

	analyzer := pipeline.NewAnalyzer(pipeline.Config{
		Client:       client,
		Builder:      builder,
		Validator:    validator,
		InsightCount: cfg.Pipeline.InsightCount,
		Extended:     cfg.Pipeline.ExtendedFields,
		Logger:       logger.With("component", "analyzer"),
	})
	finder := alternatives.NewFinder(alternatives.Config{
		Client:    client,
		Builder:   builder,
		Validator: validator,
		Images: alternatives.ImageConfig{
			Template: cfg.Pipeline.ImageTemplate,
			Width:    cfg.Pipeline.ImageWidth,
			Height:   cfg.Pipeline.ImageHeight,
		},
		Logger: logger.With("component", "alternatives"),
	})

	return &Services{
		Analyzer:      analyzer,
		Finder:        finder,
		Resolver:      resolver,
		Registry:      reg,
		Config:        cfg,
		Logger:        logger,
		Provider:      client.Provider(),
		Model:         client.Model(),
		MaxImageBytes: cfg.Pipeline.MaxImageBytes,
	}, nil
}
