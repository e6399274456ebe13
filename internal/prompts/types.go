// Package prompts provides the instruction texts sent to the reasoning
// service, with embedded defaults and operator overrides.
//
// Embedded .tmpl files are the source of truth. An override registered from
// configuration replaces the embedded text for its key without a rebuild.
// Resolution order for a key:
//  1. Operator override (config `prompts.overrides`)
//  2. Embedded default
package prompts

import "errors"

// TaskKind selects which instruction bundle to build.
type TaskKind string

const (
	// AnalyzeLabel asks for a full assessment of a label image.
	AnalyzeLabel TaskKind = "analyze_label"
	// FindAlternatives asks for substitutes to a named product.
	FindAlternatives TaskKind = "find_alternatives"
)

// Prompt keys, one per task kind.
const (
	AnalyzeLabelKey     = "tasks.analyze_label"
	FindAlternativesKey = "tasks.find_alternatives"
)

// DefaultInsightCount is the number of psychological insights requested.
const DefaultInsightCount = 2

var (
	// ErrUnknownTask is returned for a TaskKind with no prompt bound to it.
	ErrUnknownTask = errors.New("unknown task kind")
	// ErrEmptyQuery is returned when FindAlternatives has no product name.
	ErrEmptyQuery = errors.New("alternatives query is empty")
)

// KeyFor returns the prompt key for a task kind.
func KeyFor(kind TaskKind) (string, error) {
	switch kind {
	case AnalyzeLabel:
		return AnalyzeLabelKey, nil
	case FindAlternatives:
		return FindAlternativesKey, nil
	default:
		return "", ErrUnknownTask
	}
}

// Params are the template inputs for a task.
type Params struct {
	// Query is the product name for FindAlternatives. Inserted as text only.
	Query string
	// InsightCount is how many psychological insights AnalyzeLabel asks for.
	InsightCount int
	// Extended requests the optional extended fields.
	Extended bool
}

// EmbeddedPrompt represents a prompt loaded from an embedded .tmpl file.
type EmbeddedPrompt struct {
	Key         string   `json:"key" yaml:"key"`                 // Hierarchical key: tasks.analyze_label
	Text        string   `json:"text" yaml:"text"`               // The prompt text (Go template)
	Description string   `json:"description" yaml:"description"` // Human-readable description
	Variables   []string `json:"variables" yaml:"variables"`     // Extracted template variables
	Hash        string   `json:"hash" yaml:"hash"`               // SHA256 of the text for change detection
}

// ResolvedPrompt is the text chosen for a key after applying overrides.
type ResolvedPrompt struct {
	Key        string   `json:"key" yaml:"key"`
	Text       string   `json:"text" yaml:"text"`
	Variables  []string `json:"variables,omitempty" yaml:"variables,omitempty"`
	IsOverride bool     `json:"is_override" yaml:"is_override"`
	Hash       string   `json:"hash" yaml:"hash"`
}
