// Package schema holds the JSON output contracts the reasoning service is
// asked to satisfy. Contracts are embedded .json documents.
package schema

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Contract names.
const (
	LabelAnalysis = "label_analysis"
	Alternatives  = "alternatives"
)

// Contract is one output schema plus the metadata sent alongside it.
type Contract struct {
	Name        string // Contract name (e.g., "label_analysis")
	Description string
	// ClampedEnums lists properties whose enum is advisory: the validator
	// accepts any string there and coerces it afterwards.
	ClampedEnums []string

	raw json.RawMessage
}

var registry = []Contract{
	{
		Name:         LabelAnalysis,
		Description:  "Structured nutritional assessment of one ingredient label",
		ClampedEnums: []string{"riskLevel"},
	},
	{
		Name:        Alternatives,
		Description: "Exactly three whole-food alternatives to a named product",
	},
}

// All returns every contract sorted by name.
func All() ([]Contract, error) {
	out := make([]Contract, 0, len(registry))
	for _, c := range registry {
		loaded, err := load(c)
		if err != nil {
			return nil, err
		}
		out = append(out, loaded)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Get returns a single contract by name.
func Get(name string) (Contract, error) {
	for _, c := range registry {
		if c.Name == name {
			return load(c)
		}
	}
	return Contract{}, fmt.Errorf("schema not found: %s", name)
}

// Analysis returns the label analysis contract. It panics if the embedded
// document is missing, which only happens on a broken build.
func Analysis() Contract {
	return mustGet(LabelAnalysis)
}

// AlternativesContract returns the alternatives contract.
func AlternativesContract() Contract {
	return mustGet(Alternatives)
}

func mustGet(name string) Contract {
	c, err := Get(name)
	if err != nil {
		panic(err)
	}
	return c
}

func load(c Contract) (Contract, error) {
	content, err := schemaFS.ReadFile(fmt.Sprintf("schemas/%s.json", c.Name))
	if err != nil {
		return Contract{}, fmt.Errorf("failed to read schema %s: %w", c.Name, err)
	}
	if !json.Valid(content) {
		return Contract{}, fmt.Errorf("schema %s is not valid JSON", c.Name)
	}
	c.raw = json.RawMessage(content)
	return c, nil
}
