// Package catalog wires every embedded prompt into a resolver.
package catalog

import (
	"log/slog"

	"github.com/Aayushman-oss/nutriscan-ai/internal/prompts"
	"github.com/Aayushman-oss/nutriscan-ai/internal/prompts/alternatives"
	"github.com/Aayushman-oss/nutriscan-ai/internal/prompts/label"
)

// NewResolver returns a resolver with all embedded prompts registered and
// the given overrides applied.
func NewResolver(logger *slog.Logger, overrides map[string]string) *prompts.Resolver {
	r := prompts.NewResolver(logger)
	label.RegisterPrompts(r)
	alternatives.RegisterPrompts(r)
	if len(overrides) > 0 {
		r.SetOverrides(overrides)
	}
	return r
}

// NewBuilder returns a builder over NewResolver(logger, overrides).
func NewBuilder(logger *slog.Logger, overrides map[string]string) *prompts.Builder {
	return prompts.NewBuilder(NewResolver(logger, overrides))
}
