package schema

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestAll(t *testing.T) {
	contracts, err := All()
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(contracts) != 2 {
		t.Fatalf("expected 2 contracts, got %d", len(contracts))
	}
	for _, c := range contracts {
		if len(c.Raw()) == 0 {
			t.Errorf("contract %s has empty schema", c.Name)
		}
	}
}

func TestGet(t *testing.T) {
	t.Run("existing contract", func(t *testing.T) {
		c, err := Get(LabelAnalysis)
		if err != nil {
			t.Fatalf("Get(%s) error = %v", LabelAnalysis, err)
		}
		if c.Name != LabelAnalysis {
			t.Errorf("expected name %s, got %s", LabelAnalysis, c.Name)
		}
	})

	t.Run("non-existent contract", func(t *testing.T) {
		if _, err := Get("nutrition_facts"); err == nil {
			t.Error("expected error for non-existent contract")
		}
	})
}

func TestAnalysis_Required(t *testing.T) {
	req := Analysis().Required()
	want := []string{"productIdentified", "healthRating", "verdict", "badIngredients", "goodIngredients", "healthyReplacements"}
	if strings.Join(req, ",") != strings.Join(want, ",") {
		t.Errorf("Required() = %v, want %v", req, want)
	}
}

func TestContract_JSONSchema(t *testing.T) {
	raw, err := AlternativesContract().JSONSchema()
	if err != nil {
		t.Fatalf("JSONSchema() error = %v", err)
	}

	var wrapper map[string]any
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		t.Fatalf("failed to unmarshal wrapper: %v", err)
	}
	if wrapper["name"] != "nutriscan_alternatives" {
		t.Errorf("unexpected name %v", wrapper["name"])
	}
	if _, ok := wrapper["schema"].(map[string]any); !ok {
		t.Fatalf("wrapper missing schema object: %s", raw)
	}
}

func TestContract_ValidationSchema(t *testing.T) {
	c := Analysis()

	if !strings.Contains(string(c.Raw()), `"enum"`) {
		t.Fatal("model-facing schema should keep the riskLevel enum")
	}

	got, err := c.ValidationSchema()
	if err != nil {
		t.Fatalf("ValidationSchema() error = %v", err)
	}
	if strings.Contains(string(got), `"enum"`) {
		t.Errorf("validation schema should drop advisory enums, got: %s", got)
	}
	if !strings.Contains(string(got), `"maximum":10`) {
		t.Errorf("validation schema should keep rating bounds, got: %s", got)
	}
}
