// Package label holds the instruction template for analyzing an ingredient
// label image.
package label

import (
	_ "embed"

	"github.com/Aayushman-oss/nutriscan-ai/internal/prompts"
)

//go:embed label.tmpl
var labelPrompt string

// Text returns the embedded label analysis template.
func Text() string {
	return labelPrompt
}

// RegisterPrompts registers the label prompt with the resolver.
func RegisterPrompts(r *prompts.Resolver) {
	r.Register(prompts.EmbeddedPrompt{
		Key:         prompts.AnalyzeLabelKey,
		Text:        labelPrompt,
		Description: "Label analysis - verdict, rating, flagged ingredients and replacements from a label photo",
	})
}
