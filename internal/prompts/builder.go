package prompts

import (
	"fmt"
	"strings"
)

// Builder composes instruction text for a task from resolved prompts.
type Builder struct {
	resolver *Resolver
}

// NewBuilder creates a builder backed by r.
func NewBuilder(r *Resolver) *Builder {
	return &Builder{resolver: r}
}

// Build returns the instruction text for kind. Build has no side effects;
// the same inputs always render the same text.
func (b *Builder) Build(kind TaskKind, params Params) (string, error) {
	key, err := KeyFor(kind)
	if err != nil {
		return "", fmt.Errorf("%w: %s", err, kind)
	}

	switch kind {
	case FindAlternatives:
		params.Query = strings.TrimSpace(params.Query)
		if params.Query == "" {
			return "", ErrEmptyQuery
		}
	case AnalyzeLabel:
		if params.InsightCount <= 0 {
			params.InsightCount = DefaultInsightCount
		}
	}

	resolved, err := b.resolver.Resolve(key)
	if err != nil {
		return "", err
	}
	return Render(key, resolved.Text, params)
}
