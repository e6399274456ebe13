package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/Aayushman-oss/nutriscan-ai/internal/nutrition"
)

func colaAssessment() *nutrition.Assessment {
	return nutrition.Annotate(&nutrition.AnalysisResult{
		ProductIdentified: "Cola",
		HealthRating:      2,
		Verdict:           "Avoid",
		BadIngredients: []nutrition.BadIngredient{
			{Name: "High-fructose corn syrup", Explanation: "a cheap sugar that spikes blood sugar fast"},
		},
		GoodIngredients:       []string{},
		PsychologicalInsights: []string{"Equivalent to 10 teaspoons of sugar."},
		HealthyReplacements:   []string{"sparkling water with fruit"},
	})
}

func TestAssessment_Cola(t *testing.T) {
	out := Assessment(colaAssessment())

	for _, want := range []string{"Cola", "Avoid", "Poor", "2/10", "High-fructose corn syrup", "sparkling water with fruit", "AI Insights", "10 teaspoons"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, CleanLabelMessage) {
		t.Error("flagged label must not show the clean-label message")
	}
	if strings.Contains(out, "Additives") {
		t.Error("additives section should be omitted when empty")
	}
}

func TestAssessment_CleanLabel(t *testing.T) {
	a := nutrition.Annotate(&nutrition.AnalysisResult{
		ProductIdentified: "Rolled Oats",
		HealthRating:      9,
		Verdict:           "Eat",
		BadIngredients:    []nutrition.BadIngredient{},
		GoodIngredients:   []string{"whole grain oats"},
	})
	out := Assessment(a)
	if !strings.Contains(out, CleanLabelMessage) {
		t.Errorf("expected clean-label message:\n%s", out)
	}
}

func TestAssessment_Additives(t *testing.T) {
	a := nutrition.Annotate(&nutrition.AnalysisResult{
		ProductIdentified: "Gummies",
		HealthRating:      3,
		Verdict:           "Skip",
		Additives: []nutrition.AdditiveFinding{
			{Name: "Allura Red", ENumber: "E129", RiskLevel: nutrition.RiskHigh, Explanation: "synthetic dye"},
		},
		CaloriesEstimate: "320 kcal",
	})
	out := Assessment(a)
	for _, want := range []string{"Allura Red (E129)", "[High]", "320 kcal"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestAlternatives(t *testing.T) {
	out := Alternatives("Doritos", []nutrition.AlternativeSuggestion{
		{Name: "Baked lentil chips", Reason: "more protein", ImageURL: "https://img/x"},
		{Name: "Air-popped popcorn", Reason: "whole grain"},
	})
	if !strings.Contains(out, "1. ") || !strings.Contains(out, "2. ") {
		t.Errorf("expected numbered list:\n%s", out)
	}
	if !strings.Contains(out, "https://img/x") {
		t.Errorf("expected image url:\n%s", out)
	}

	if empty := Alternatives("Doritos", nil); !strings.Contains(empty, "(none)") {
		t.Errorf("expected empty marker, got %q", empty)
	}
}

func TestScoreBar_Width(t *testing.T) {
	for _, p := range []int{-10, 0, 20, 55, 100, 150} {
		if w := lipgloss.Width(ScoreBar(p)); w != scoreBarWidth {
			t.Errorf("ScoreBar(%d) width = %d, want %d", p, w, scoreBarWidth)
		}
	}
}
