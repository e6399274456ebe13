package svcctx

import (
	"context"
	"errors"
	"testing"

	"github.com/Aayushman-oss/nutriscan-ai/internal/config"
	"github.com/Aayushman-oss/nutriscan-ai/internal/extract"
	"github.com/Aayushman-oss/nutriscan-ai/internal/providers"
)

func TestNew(t *testing.T) {
	reg := providers.NewRegistry()
	reg.RegisterLLM("gemini", providers.NewMockClient())

	svc, err := New(config.DefaultConfig(), reg, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if svc.Analyzer == nil || svc.Finder == nil || svc.Resolver == nil {
		t.Fatalf("services not wired: %+v", svc)
	}
	if svc.Provider != providers.MockClientName {
		t.Errorf("Provider = %s, want %s", svc.Provider, providers.MockClientName)
	}
	if svc.Model != "gemini-2.5-flash" {
		t.Errorf("Model = %s, want configured model", svc.Model)
	}
	if svc.MaxImageBytes != 10<<20 {
		t.Errorf("MaxImageBytes = %d", svc.MaxImageBytes)
	}
	if len(svc.Resolver.AllEmbedded()) != 2 {
		t.Errorf("expected 2 embedded prompts, got %d", len(svc.Resolver.AllEmbedded()))
	}
}

func TestNew_MissingKey(t *testing.T) {
	cfg := config.DefaultConfig()
	reg := providers.NewRegistryFromConfig(providers.RegistryConfig{
		LLMProviders: map[string]providers.LLMProviderConfig{
			"gemini": {Type: "openai", Enabled: true},
		},
	})

	_, err := New(cfg, reg, nil)
	if !errors.Is(err, extract.ErrInvalidConfiguration) {
		t.Fatalf("error = %v, want ErrInvalidConfiguration", err)
	}
	if !errors.Is(err, providers.ErrMissingAPIKey) {
		t.Errorf("error = %v, want ErrMissingAPIKey", err)
	}
}

func TestContextExtractors(t *testing.T) {
	ctx := context.Background()
	if ServicesFrom(ctx) != nil || AnalyzerFrom(ctx) != nil || RegistryFrom(ctx) != nil {
		t.Fatal("expected nil services on bare context")
	}

	reg := providers.NewRegistry()
	reg.RegisterLLM("gemini", providers.NewMockClient())
	svc, err := New(config.DefaultConfig(), reg, nil)
	if err != nil {
		t.Fatal(err)
	}

	ctx = WithServices(ctx, svc)
	if AnalyzerFrom(ctx) != svc.Analyzer {
		t.Error("AnalyzerFrom mismatch")
	}
	if FinderFrom(ctx) != svc.Finder {
		t.Error("FinderFrom mismatch")
	}
	if PromptResolverFrom(ctx) != svc.Resolver {
		t.Error("PromptResolverFrom mismatch")
	}
	if RegistryFrom(ctx) != reg {
		t.Error("RegistryFrom mismatch")
	}
	if LoggerFrom(ctx) == nil {
		t.Error("LoggerFrom returned nil")
	}
}
