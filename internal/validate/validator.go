// Package validate turns raw reasoning-service text into typed results.
//
// Validation is all-or-nothing: a response either satisfies its contract and
// yields a fully populated value, or yields a *ValidationError and nothing
// else.
package validate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Aayushman-oss/nutriscan-ai/internal/nutrition"
	"github.com/Aayushman-oss/nutriscan-ai/internal/prompts"
	"github.com/Aayushman-oss/nutriscan-ai/internal/schema"
)

// Options configures a Validator.
type Options struct {
	// Strict enforces the prompt's cardinality rules: verdict of at most two
	// words and exactly InsightCount psychological insights.
	Strict       bool
	InsightCount int
	Logger       *slog.Logger
}

// Validator checks documents against compiled contracts. It is safe for
// concurrent use; compiled schemas are read-only.
type Validator struct {
	opts     Options
	compiled map[string]*jsonschema.Schema
	logger   *slog.Logger
}

// New compiles every registered contract.
func New(opts Options) (*Validator, error) {
	if opts.InsightCount <= 0 {
		opts.InsightCount = prompts.DefaultInsightCount
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	contracts, err := schema.All()
	if err != nil {
		return nil, err
	}

	v := &Validator{
		opts:     opts,
		compiled: make(map[string]*jsonschema.Schema, len(contracts)),
		logger:   logger,
	}
	for _, c := range contracts {
		s, err := compile(c)
		if err != nil {
			return nil, err
		}
		v.compiled[c.Name] = s
	}
	return v, nil
}

func compile(c schema.Contract) (*jsonschema.Schema, error) {
	doc, err := c.ValidationSchema()
	if err != nil {
		return nil, err
	}
	url := c.Name + ".json"
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, bytes.NewReader(doc)); err != nil {
		return nil, fmt.Errorf("failed to load schema %s: %w", c.Name, err)
	}
	s, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", c.Name, err)
	}
	return s, nil
}

// Document parses raw and validates it against contract c. Top-level null
// values for optional properties are dropped before validation.
func (v *Validator) Document(raw string, c schema.Contract) (any, error) {
	doc, how, err := parseJSON(raw)
	if err != nil {
		v.logger.Debug("response is not JSON", "contract", c.Name, "error", err)
		return nil, malformed(err)
	}
	if how != recoverAsIs {
		v.logger.Debug("recovered JSON from response", "contract", c.Name, "via", how)
	}

	if obj, ok := doc.(map[string]any); ok {
		required := c.Required()
		for key, val := range obj {
			if val == nil && !slices.Contains(required, key) {
				delete(obj, key)
			}
		}
	}

	s, ok := v.compiled[c.Name]
	if !ok {
		if s, err = compile(c); err != nil {
			return nil, err
		}
	}
	if err := s.Validate(doc); err != nil {
		verr := fromSchemaError(err)
		v.logger.Debug("response does not match contract", "contract", c.Name, "field", verr.Field, "detail", verr.Detail)
		return nil, verr
	}
	return doc, nil
}

// Analysis validates a label analysis response.
func (v *Validator) Analysis(raw string) (*nutrition.AnalysisResult, error) {
	doc, err := v.Document(raw, schema.Analysis())
	if err != nil {
		return nil, err
	}

	var result nutrition.AnalysisResult
	if err := decode(doc, &result); err != nil {
		return nil, err
	}

	if strings.TrimSpace(result.ProductIdentified) == "" {
		return nil, mismatch("productIdentified", "must not be blank")
	}
	for i, bad := range result.BadIngredients {
		if strings.TrimSpace(bad.Name) == "" {
			return nil, mismatch(fmt.Sprintf("badIngredients[%d].name", i), "must not be blank")
		}
	}

	normalize(&result)

	if v.opts.Strict {
		if n := len(strings.Fields(result.Verdict)); n > 2 {
			return nil, mismatch("verdict", fmt.Sprintf("verdict has %d words, at most 2 allowed", n))
		}
		if n := len(result.PsychologicalInsights); n != v.opts.InsightCount {
			return nil, mismatch("psychologicalInsights", fmt.Sprintf("expected %d insights, got %d", v.opts.InsightCount, n))
		}
	}

	return &result, nil
}

// Alternatives validates an alternatives response and returns the
// suggestions in service order.
func (v *Validator) Alternatives(raw string) ([]nutrition.AlternativeSuggestion, error) {
	doc, err := v.Document(raw, schema.AlternativesContract())
	if err != nil {
		return nil, err
	}

	var result nutrition.AlternativesResult
	if err := decode(doc, &result); err != nil {
		return nil, err
	}

	for i, alt := range result.Alternatives {
		fields := [][2]string{
			{"imageSearchPrompt", alt.ImageSearchPrompt},
			{"name", alt.Name},
			{"reason", alt.Reason},
		}
		for _, f := range fields {
			if strings.TrimSpace(f[1]) == "" {
				return nil, mismatch(fmt.Sprintf("alternatives[%d].%s", i, f[0]), "must not be blank")
			}
		}
	}
	return result.Alternatives, nil
}

// decode converts a validated generic document into a typed value.
func decode(doc any, out any) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return malformed(err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return mismatch("", err.Error())
	}
	return nil
}

// normalize replaces absent sequences with empty ones and clamps risk levels.
func normalize(r *nutrition.AnalysisResult) {
	if r.PsychologicalInsights == nil {
		r.PsychologicalInsights = []string{}
	}
	if r.BadIngredients == nil {
		r.BadIngredients = []nutrition.BadIngredient{}
	}
	if r.GoodIngredients == nil {
		r.GoodIngredients = []string{}
	}
	if r.HealthyReplacements == nil {
		r.HealthyReplacements = []string{}
	}
	if r.PreservativesFound == nil {
		r.PreservativesFound = []string{}
	}
	if r.Additives == nil {
		r.Additives = []nutrition.AdditiveFinding{}
	}
	for i := range r.Additives {
		r.Additives[i].RiskLevel = nutrition.ParseRiskLevel(string(r.Additives[i].RiskLevel))
	}
}
