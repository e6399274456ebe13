// Package alternatives holds the instruction template for suggesting
// whole-food substitutes to a named product.
package alternatives

import (
	_ "embed"

	"github.com/Aayushman-oss/nutriscan-ai/internal/prompts"
)

//go:embed alternatives.tmpl
var alternativesPrompt string

// RegisterPrompts registers the alternatives prompt with the resolver.
func RegisterPrompts(r *prompts.Resolver) {
	r.Register(prompts.EmbeddedPrompt{
		Key:         prompts.FindAlternativesKey,
		Text:        alternativesPrompt,
		Description: "Alternative search - three whole-food substitutes with rationale and image description",
	})
}
