package config

import (
	"errors"
	"fmt"
	"strings"
)

// Config holds nutriscan configuration.
// Stored at: ~/.nutriscan/config.yaml
type Config struct {
	LLMProviders map[string]LLMProviderCfg `mapstructure:"llm_providers" yaml:"llm_providers"`
	Defaults     DefaultsCfg               `mapstructure:"defaults" yaml:"defaults"`
	Pipeline     PipelineCfg               `mapstructure:"pipeline" yaml:"pipeline"`
	Server       ServerCfg                 `mapstructure:"server" yaml:"server"`
	Prompts      PromptsCfg                `mapstructure:"prompts" yaml:"prompts"`
}

// LLMProviderCfg configures an LLM provider.
type LLMProviderCfg struct {
	Type           string `mapstructure:"type" yaml:"type"`                       // "openai" or "openrouter"
	Model          string `mapstructure:"model" yaml:"model"`                     // Model name
	BaseURL        string `mapstructure:"base_url" yaml:"base_url,omitempty"`     // OpenAI-compatible endpoint
	APIKey         string `mapstructure:"api_key" yaml:"api_key"`                 // API key (supports ${ENV_VAR} syntax)
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"` // HTTP timeout, 0 means none
	Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
}

// DefaultsCfg specifies default provider selection and generation settings.
type DefaultsCfg struct {
	LLMProvider    string  `mapstructure:"llm_provider" yaml:"llm_provider"`       // Default LLM provider
	Temperature    float64 `mapstructure:"temperature" yaml:"temperature"`         // 0 leaves the service default
	MaxTokens      int     `mapstructure:"max_tokens" yaml:"max_tokens"`           // 0 leaves the service default
	TimeoutSeconds int     `mapstructure:"timeout_seconds" yaml:"timeout_seconds"` // Per-call deadline, 0 means none
}

// PipelineCfg controls prompt content and response validation.
type PipelineCfg struct {
	// StrictContract rejects verdicts over two words and insight counts
	// that differ from InsightCount.
	StrictContract bool   `mapstructure:"strict_contract" yaml:"strict_contract"`
	InsightCount   int    `mapstructure:"insight_count" yaml:"insight_count"`
	ExtendedFields bool   `mapstructure:"extended_fields" yaml:"extended_fields"`
	ImageTemplate  string `mapstructure:"image_template" yaml:"image_template"`
	ImageWidth     int    `mapstructure:"image_width" yaml:"image_width"`
	ImageHeight    int    `mapstructure:"image_height" yaml:"image_height"`
	MaxImageBytes  int64  `mapstructure:"max_image_bytes" yaml:"max_image_bytes"`
}

// ServerCfg configures the HTTP server.
type ServerCfg struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port string `mapstructure:"port" yaml:"port"`
}

// PromptsCfg holds operator prompt overrides.
type PromptsCfg struct {
	Overrides []PromptOverride `mapstructure:"overrides" yaml:"overrides"`
}

// PromptOverride replaces the embedded text for one prompt key. Keys contain
// dots, so overrides are a list rather than a map.
type PromptOverride struct {
	Key  string `mapstructure:"key" yaml:"key"`
	Text string `mapstructure:"text" yaml:"text"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LLMProviders: map[string]LLMProviderCfg{
			"gemini": {
				Type:           "openai",
				Model:          "gemini-2.5-flash",
				BaseURL:        "https://generativelanguage.googleapis.com/v1beta/openai/",
				APIKey:         "${GEMINI_API_KEY}",
				TimeoutSeconds: 0,
				Enabled:        true,
			},
			"openrouter": {
				Type:           "openrouter",
				Model:          "google/gemini-2.5-flash",
				APIKey:         "${OPENROUTER_API_KEY}",
				TimeoutSeconds: 0,
				Enabled:        false,
			},
		},
		Defaults: DefaultsCfg{
			LLMProvider:    "gemini",
			Temperature:    0.2,
			TimeoutSeconds: 0, // deadlines come from the caller unless configured
		},
		Pipeline: PipelineCfg{
			StrictContract: false,
			InsightCount:   2,
			ExtendedFields: false,
			ImageTemplate:  "https://image.pollinations.ai/prompt/{prompt}?width={w}&height={h}&nologo=true",
			ImageWidth:     400,
			ImageHeight:    300,
			MaxImageBytes:  10 << 20,
		},
		Server: ServerCfg{
			Host: "127.0.0.1",
			Port: "8080",
		},
	}
}

// GetLLMProvider returns an LLM provider config by name.
func (c *Config) GetLLMProvider(name string) (LLMProviderCfg, bool) {
	cfg, ok := c.LLMProviders[name]
	return cfg, ok
}

// EnabledLLMProviders returns all enabled LLM providers.
func (c *Config) EnabledLLMProviders() map[string]LLMProviderCfg {
	result := make(map[string]LLMProviderCfg)
	for name, cfg := range c.LLMProviders {
		if cfg.Enabled {
			result[name] = cfg
		}
	}
	return result
}

// PromptOverrides returns the overrides keyed by prompt key.
func (c *Config) PromptOverrides() map[string]string {
	out := make(map[string]string, len(c.Prompts.Overrides))
	for _, o := range c.Prompts.Overrides {
		out[o.Key] = o.Text
	}
	return out
}

// Validate checks the settings that have no safe fallback.
func (c *Config) Validate() error {
	var errs []error

	if c.Defaults.LLMProvider == "" {
		errs = append(errs, errors.New("defaults.llm_provider is required"))
	} else if p, ok := c.LLMProviders[c.Defaults.LLMProvider]; !ok {
		errs = append(errs, fmt.Errorf("defaults.llm_provider %q is not configured", c.Defaults.LLMProvider))
	} else if !p.Enabled {
		errs = append(errs, fmt.Errorf("defaults.llm_provider %q is disabled", c.Defaults.LLMProvider))
	}

	for name, p := range c.LLMProviders {
		switch p.Type {
		case "openai", "openrouter":
		default:
			errs = append(errs, fmt.Errorf("llm_providers.%s.type %q is not one of openai, openrouter", name, p.Type))
		}
	}

	if c.Pipeline.InsightCount < 0 {
		errs = append(errs, errors.New("pipeline.insight_count must not be negative"))
	}
	if c.Pipeline.ImageWidth < 0 || c.Pipeline.ImageHeight < 0 {
		errs = append(errs, errors.New("pipeline.image_width and image_height must not be negative"))
	}
	if t := c.Pipeline.ImageTemplate; t != "" && !strings.Contains(t, "{prompt}") {
		errs = append(errs, errors.New("pipeline.image_template must contain {prompt}"))
	}

	return errors.Join(errs...)
}
