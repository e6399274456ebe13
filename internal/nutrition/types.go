// Package nutrition holds the typed results of a label scan and the pure
// functions that derive display tiers from them.
package nutrition

import "strings"

// RiskLevel grades how concerning an additive is.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// RiskLevels lists the accepted values in ascending order.
var RiskLevels = []RiskLevel{RiskLow, RiskMedium, RiskHigh}

// ParseRiskLevel maps a service token onto a RiskLevel.
// Matching ignores case and surrounding space; anything else is Low.
func ParseRiskLevel(s string) RiskLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return RiskHigh
	case "medium":
		return RiskMedium
	default:
		return RiskLow
	}
}

// AdditiveFinding is one coded or named additive found on the label.
type AdditiveFinding struct {
	Name        string    `json:"name" yaml:"name"`
	ENumber     string    `json:"eNumber" yaml:"eNumber"`
	Explanation string    `json:"explanation" yaml:"explanation"`
	RiskLevel   RiskLevel `json:"riskLevel" yaml:"riskLevel"`
}

// BadIngredient is a flagged ingredient with a one-sentence explanation.
type BadIngredient struct {
	Name        string `json:"name" yaml:"name"`
	Explanation string `json:"explanation" yaml:"explanation"`
}

// AnalysisResult is the validated assessment of one scanned label.
// Sequence fields are never nil once validated.
type AnalysisResult struct {
	ProductIdentified     string          `json:"productIdentified" yaml:"productIdentified"`
	HealthRating          int             `json:"healthRating" yaml:"healthRating"`
	Verdict               string          `json:"verdict" yaml:"verdict"`
	PsychologicalInsights []string        `json:"psychologicalInsights" yaml:"psychologicalInsights"`
	BadIngredients        []BadIngredient `json:"badIngredients" yaml:"badIngredients"`
	GoodIngredients       []string        `json:"goodIngredients" yaml:"goodIngredients"`
	HealthyReplacements   []string        `json:"healthyReplacements" yaml:"healthyReplacements"`

	// Extended fields, present only when the service fills them.
	CaloriesEstimate   string            `json:"caloriesEstimate,omitempty" yaml:"caloriesEstimate,omitempty"`
	SugarLevel         string            `json:"sugarLevel,omitempty" yaml:"sugarLevel,omitempty"`
	SodiumLevel        string            `json:"sodiumLevel,omitempty" yaml:"sodiumLevel,omitempty"`
	PreservativesFound []string          `json:"preservativesFound" yaml:"preservativesFound"`
	Additives          []AdditiveFinding `json:"additives" yaml:"additives"`
}

// AlternativeSuggestion is a healthier substitute for a named product.
type AlternativeSuggestion struct {
	Name              string `json:"name" yaml:"name"`
	Reason            string `json:"reason" yaml:"reason"`
	ImageSearchPrompt string `json:"imageSearchPrompt" yaml:"imageSearchPrompt"`

	// ImageURL is built locally from ImageSearchPrompt; it is never fetched.
	ImageURL string `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
}

// AlternativesResult is the document shape returned for a search query.
type AlternativesResult struct {
	Alternatives []AlternativeSuggestion `json:"alternatives" yaml:"alternatives"`
}

// Assessment is an AnalysisResult annotated with its display tiers.
type Assessment struct {
	AnalysisResult `yaml:",inline"`

	VerdictTier   Tier            `json:"verdictTier" yaml:"verdictTier"`
	ScorePercent  int             `json:"scorePercent" yaml:"scorePercent"`
	CleanLabel    bool            `json:"cleanLabel" yaml:"cleanLabel"`
	AdditiveTiers []AdditiveColor `json:"additiveTiers" yaml:"additiveTiers"`
	RequestID     string          `json:"requestId,omitempty" yaml:"requestId,omitempty"`
}
