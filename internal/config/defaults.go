package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// ErrInvalidKey is returned when a config key contains invalid characters.
var ErrInvalidKey = errors.New("invalid config key")

// ValidateKey checks if a config key contains only allowed characters.
// Valid keys contain: letters, digits, dots, underscores, and hyphens.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: key cannot be empty", ErrInvalidKey)
	}
	for i, r := range key {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '.' && r != '_' && r != '-' {
			return fmt.Errorf("%w: invalid character %q at position %d", ErrInvalidKey, r, i)
		}
	}
	// Don't allow keys starting or ending with dots
	if key[0] == '.' || key[len(key)-1] == '.' {
		return fmt.Errorf("%w: key cannot start or end with a dot", ErrInvalidKey)
	}
	return nil
}

// Entry is one documented configuration key with its value.
type Entry struct {
	Key         string `json:"key" yaml:"key"`
	Value       any    `json:"value" yaml:"value"`
	Description string `json:"description" yaml:"description"`
}

// DefaultEntries returns the documented keys with their default values.
func DefaultEntries() []Entry {
	d := DefaultConfig()
	entries := []Entry{
		// Generation defaults
		{Key: "defaults.llm_provider", Value: d.Defaults.LLMProvider, Description: "Provider used for label scans and alternatives"},
		{Key: "defaults.temperature", Value: d.Defaults.Temperature, Description: "Sampling temperature, 0 leaves the service default"},
		{Key: "defaults.max_tokens", Value: d.Defaults.MaxTokens, Description: "Completion token cap, 0 leaves the service default"},
		{Key: "defaults.timeout_seconds", Value: d.Defaults.TimeoutSeconds, Description: "Deadline for one reasoning service call, 0 means none"},

		// Pipeline
		{Key: "pipeline.strict_contract", Value: d.Pipeline.StrictContract, Description: "Reject verdicts over two words and wrong insight counts"},
		{Key: "pipeline.insight_count", Value: d.Pipeline.InsightCount, Description: "Psychological insights requested per scan"},
		{Key: "pipeline.extended_fields", Value: d.Pipeline.ExtendedFields, Description: "Ask for calories, sugar, sodium, preservatives and additives"},
		{Key: "pipeline.image_template", Value: d.Pipeline.ImageTemplate, Description: "Image URL template for alternatives ({prompt}, {w}, {h})"},
		{Key: "pipeline.image_width", Value: d.Pipeline.ImageWidth, Description: "Image width substituted for {w}"},
		{Key: "pipeline.image_height", Value: d.Pipeline.ImageHeight, Description: "Image height substituted for {h}"},
		{Key: "pipeline.max_image_bytes", Value: d.Pipeline.MaxImageBytes, Description: "Largest accepted label upload"},

		// Server
		{Key: "server.host", Value: d.Server.Host, Description: "HTTP listen host"},
		{Key: "server.port", Value: d.Server.Port, Description: "HTTP listen port"},
	}

	names := make([]string, 0, len(d.LLMProviders))
	for name := range d.LLMProviders {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		p := d.LLMProviders[name]
		prefix := "llm_providers." + name + "."
		entries = append(entries,
			Entry{Key: prefix + "type", Value: p.Type, Description: "Provider type (openai or openrouter)"},
			Entry{Key: prefix + "model", Value: p.Model, Description: "Default model for " + name},
			Entry{Key: prefix + "base_url", Value: p.BaseURL, Description: "Endpoint base URL, empty for the provider default"},
			Entry{Key: prefix + "api_key", Value: p.APIKey, Description: "API key (uses environment variable)"},
			Entry{Key: prefix + "timeout_seconds", Value: p.TimeoutSeconds, Description: "HTTP timeout in seconds for " + name},
			Entry{Key: prefix + "enabled", Value: p.Enabled, Description: "Whether " + name + " is enabled"},
		)
	}
	return entries
}

// GetDefault returns the default entry for a config key, or nil.
func GetDefault(key string) *Entry {
	for _, entry := range DefaultEntries() {
		if entry.Key == key {
			return &entry
		}
	}
	return nil
}

// Entries returns the documented keys with their effective values. API keys
// are masked.
func (cm *Manager) Entries() []Entry {
	entries := DefaultEntries()
	for i := range entries {
		if v, err := cm.Value(entries[i].Key); err == nil {
			entries[i].Value = v
		}
		if strings.HasSuffix(entries[i].Key, ".api_key") {
			entries[i].Value = MaskSecret(fmt.Sprint(entries[i].Value))
		}
	}
	return entries
}

// MaskSecret hides a credential, leaving ${VAR} references readable.
func MaskSecret(s string) string {
	switch {
	case s == "":
		return ""
	case len(EnvVarNames(s)) > 0:
		return s
	case len(s) <= 8:
		return "****"
	default:
		return s[:4] + "****"
	}
}
