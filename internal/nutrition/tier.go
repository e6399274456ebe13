package nutrition

// Tier is the display severity of a whole label.
type Tier string

const (
	TierGood    Tier = "Good"
	TierCaution Tier = "Caution"
	TierPoor    Tier = "Poor"
)

// AdditiveColor is the display color of one additive.
type AdditiveColor string

const (
	ColorRed    AdditiveColor = "red"
	ColorYellow AdditiveColor = "yellow"
	ColorGreen  AdditiveColor = "green"
)

// Rating bounds and tier thresholds.
const (
	MinHealthRating = 0
	MaxHealthRating = 10

	goodThreshold    = 7
	cautionThreshold = 4
)

// VerdictTier maps a health rating to its tier:
// 7 and above is Good, 4 up to 7 is Caution, below 4 is Poor.
func VerdictTier(rating int) Tier {
	switch {
	case rating >= goodThreshold:
		return TierGood
	case rating >= cautionThreshold:
		return TierCaution
	default:
		return TierPoor
	}
}

// AdditiveTier maps a risk level to its color. Unknown levels are green,
// matching the Low clamp applied during validation.
func AdditiveTier(risk RiskLevel) AdditiveColor {
	switch risk {
	case RiskHigh:
		return ColorRed
	case RiskMedium:
		return ColorYellow
	default:
		return ColorGreen
	}
}

// IsCleanLabel reports whether the scan flagged no bad ingredients.
func (r *AnalysisResult) IsCleanLabel() bool {
	return len(r.BadIngredients) == 0
}

// Annotate attaches display tiers to a validated result.
func Annotate(r *AnalysisResult) *Assessment {
	tiers := make([]AdditiveColor, len(r.Additives))
	for i, a := range r.Additives {
		tiers[i] = AdditiveTier(a.RiskLevel)
	}
	return &Assessment{
		AnalysisResult: *r,
		VerdictTier:    VerdictTier(r.HealthRating),
		ScorePercent:   r.HealthRating * 10,
		CleanLabel:     r.IsCleanLabel(),
		AdditiveTiers:  tiers,
	}
}
