package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Aayushman-oss/nutriscan-ai/internal/extract"
	"github.com/Aayushman-oss/nutriscan-ai/internal/nutrition"
	"github.com/Aayushman-oss/nutriscan-ai/internal/prompts/catalog"
	"github.com/Aayushman-oss/nutriscan-ai/internal/providers"
	"github.com/Aayushman-oss/nutriscan-ai/internal/validate"
)

var jpeg = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}

const colaResponse = `{
  "productIdentified": "Cola",
  "healthRating": 2,
  "verdict": "Avoid",
  "psychologicalInsights": ["Equivalent to 9 teaspoons of sugar", "Acid strong enough to clean coins"],
  "badIngredients": [
    {"name": "High Fructose Corn Syrup", "explanation": "A very sweet syrup that makes your body store fat."},
    {"name": "Phosphoric Acid", "explanation": "A sour chemical that can hurt your teeth."}
  ],
  "goodIngredients": [],
  "healthyReplacements": ["Sparkling water with lemon"],
  "additives": [
    {"name": "Caramel Color", "eNumber": "E150d", "explanation": "Brown coloring.", "riskLevel": "High"},
    {"name": "Caffeine", "eNumber": "", "explanation": "A stimulant.", "riskLevel": "medium"}
  ]
}`

func newAnalyzer(t *testing.T, mock *providers.MockClient, cfg Config) *Analyzer {
	t.Helper()
	client, err := extract.New(extract.Config{LLM: mock})
	if err != nil {
		t.Fatal(err)
	}
	v, err := validate.New(validate.Options{})
	if err != nil {
		t.Fatal(err)
	}
	cfg.Client = client
	cfg.Builder = catalog.NewBuilder(nil, nil)
	cfg.Validator = v
	return NewAnalyzer(cfg)
}

func TestAnalyze_Cola(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseText = colaResponse
	a := newAnalyzer(t, mock, Config{})

	got, err := a.Analyze(context.Background(), jpeg)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if got.VerdictTier != nutrition.TierPoor {
		t.Errorf("VerdictTier = %s, want Poor", got.VerdictTier)
	}
	if len(got.GoodIngredients) != 0 {
		t.Errorf("GoodIngredients = %v, want empty", got.GoodIngredients)
	}
	if len(got.HealthyReplacements) != 1 {
		t.Errorf("HealthyReplacements = %v, want one", got.HealthyReplacements)
	}
	if got.ScorePercent != 20 {
		t.Errorf("ScorePercent = %d, want 20", got.ScorePercent)
	}
	if got.CleanLabel {
		t.Error("CleanLabel = true")
	}
	want := []nutrition.AdditiveColor{nutrition.ColorRed, nutrition.ColorYellow}
	if diff := cmp.Diff(want, got.AdditiveTiers); diff != "" {
		t.Errorf("AdditiveTiers (-want +got):\n%s", diff)
	}
	if got.RequestID == "" {
		t.Error("RequestID is empty")
	}
	if mock.LastRequest().RequestID != got.RequestID {
		t.Errorf("provider saw request ID %q, assessment has %q", mock.LastRequest().RequestID, got.RequestID)
	}
}

func TestAnalyze_RequestIDFromContext(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseText = colaResponse
	a := newAnalyzer(t, mock, Config{})

	got, err := a.Analyze(extract.WithRequestID(context.Background(), "fixed-id"), jpeg)
	if err != nil {
		t.Fatal(err)
	}
	if got.RequestID != "fixed-id" {
		t.Errorf("RequestID = %q, want fixed-id", got.RequestID)
	}
}

func TestAnalyze_PromptOptions(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseText = colaResponse
	a := newAnalyzer(t, mock, Config{InsightCount: 4, Extended: true})

	if _, err := a.Analyze(context.Background(), jpeg); err != nil {
		t.Fatal(err)
	}
	text := mock.LastRequest().Messages[0].Content
	if !strings.Contains(text, "exactly 4") {
		t.Error("insight count not rendered into prompt")
	}
	if !strings.Contains(text, "eNumber") {
		t.Error("extended section missing from prompt")
	}
}

func TestAnalyze_Errors(t *testing.T) {
	t.Run("empty image", func(t *testing.T) {
		mock := providers.NewMockClient()
		a := newAnalyzer(t, mock, Config{})
		if _, err := a.Analyze(context.Background(), nil); !errors.Is(err, extract.ErrEmptyInput) {
			t.Errorf("error = %v, want ErrEmptyInput", err)
		}
		if mock.RequestCount() != 0 {
			t.Error("empty image reached the service")
		}
	})

	t.Run("service down", func(t *testing.T) {
		mock := providers.NewMockClient()
		mock.ShouldFail = true
		a := newAnalyzer(t, mock, Config{})
		if _, err := a.Analyze(context.Background(), jpeg); !errors.Is(err, extract.ErrServiceUnavailable) {
			t.Errorf("error = %v, want ErrServiceUnavailable", err)
		}
	})

	t.Run("invalid response", func(t *testing.T) {
		mock := providers.NewMockClient()
		mock.ResponseText = strings.Replace(colaResponse, `"healthRating": 2`, `"healthRating": 11`, 1)
		a := newAnalyzer(t, mock, Config{})

		got, err := a.Analyze(context.Background(), jpeg)
		if got != nil {
			t.Error("partial result returned")
		}
		var verr *validate.ValidationError
		if !errors.As(err, &verr) || verr.Field != "healthRating" {
			t.Errorf("error = %v, want schema mismatch on healthRating", err)
		}
	})
}
