// Package render formats scan results for the terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Aayushman-oss/nutriscan-ai/internal/nutrition"
)

// CleanLabelMessage is shown in place of the bad-ingredient list when a scan
// flagged nothing.
const CleanLabelMessage = "Looks incredibly clean! No major red flags found."

const scoreBarWidth = 20

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	labelStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	tierColors = map[nutrition.Tier]lipgloss.Color{
		nutrition.TierGood:    lipgloss.Color("42"),
		nutrition.TierCaution: lipgloss.Color("214"),
		nutrition.TierPoor:    lipgloss.Color("196"),
	}
	additiveColors = map[nutrition.AdditiveColor]lipgloss.Color{
		nutrition.ColorGreen:  lipgloss.Color("42"),
		nutrition.ColorYellow: lipgloss.Color("214"),
		nutrition.ColorRed:    lipgloss.Color("196"),
	}
)

// Assessment renders a scan result as a multi-section text report.
func Assessment(a *nutrition.Assessment) string {
	tierStyle := lipgloss.NewStyle().Bold(true).Foreground(tierColors[a.VerdictTier])

	var b strings.Builder
	writeSectionHeader(&b, a.ProductIdentified)
	writeLabeledLine(&b, "Verdict", tierStyle.Render(a.Verdict)+" "+mutedStyle.Render("("+string(a.VerdictTier)+")"))
	writeLabeledLine(&b, "Score", ScoreBar(a.ScorePercent)+fmt.Sprintf(" %d/10", a.HealthRating))
	if a.RequestID != "" {
		writeLabeledLine(&b, "Request", mutedStyle.Render(a.RequestID))
	}
	b.WriteString("\n")

	writeSectionHeader(&b, "Red flags")
	if a.CleanLabel {
		b.WriteString(tierStyle.Render(CleanLabelMessage) + "\n\n")
	} else {
		for _, bad := range a.BadIngredients {
			fmt.Fprintf(&b, "- %s: %s\n", labelStyle.Render(bad.Name), bad.Explanation)
		}
		b.WriteString("\n")
	}

	writeList(&b, "Good stuff", a.GoodIngredients)
	writeList(&b, "AI Insights", a.PsychologicalInsights)
	writeList(&b, "Try instead", a.HealthyReplacements)

	if a.CaloriesEstimate != "" || a.SugarLevel != "" || a.SodiumLevel != "" {
		writeSectionHeader(&b, "Nutrition")
		writeOptionalLine(&b, "Calories", a.CaloriesEstimate)
		writeOptionalLine(&b, "Sugar", a.SugarLevel)
		writeOptionalLine(&b, "Sodium", a.SodiumLevel)
		b.WriteString("\n")
	}
	if len(a.PreservativesFound) > 0 {
		writeList(&b, "Preservatives", a.PreservativesFound)
	}
	if len(a.Additives) > 0 {
		writeSectionHeader(&b, "Additives")
		for i, add := range a.Additives {
			color := nutrition.AdditiveTier(add.RiskLevel)
			if i < len(a.AdditiveTiers) {
				color = a.AdditiveTiers[i]
			}
			dot := lipgloss.NewStyle().Foreground(additiveColors[color]).Render("●")
			name := add.Name
			if add.ENumber != "" {
				name += " (" + add.ENumber + ")"
			}
			fmt.Fprintf(&b, "%s %s [%s] %s\n", dot, labelStyle.Render(name), add.RiskLevel, add.Explanation)
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// Alternatives renders suggestions as a numbered list.
func Alternatives(query string, alts []nutrition.AlternativeSuggestion) string {
	var b strings.Builder
	writeSectionHeader(&b, "Healthier picks for "+query)
	if len(alts) == 0 {
		b.WriteString(mutedStyle.Render("(none)") + "\n")
		return b.String()
	}
	for i, alt := range alts {
		fmt.Fprintf(&b, "%d. %s\n", i+1, labelStyle.Render(alt.Name))
		fmt.Fprintf(&b, "   %s\n", alt.Reason)
		if alt.ImageURL != "" {
			fmt.Fprintf(&b, "   %s\n", mutedStyle.Render(alt.ImageURL))
		}
	}
	return b.String()
}

// ScoreBar draws a fixed-width bar filled to percent.
func ScoreBar(percent int) string {
	percent = max(0, min(100, percent))
	filled := percent * scoreBarWidth / 100
	color := tierColors[nutrition.VerdictTier(percent/10)]
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", scoreBarWidth-filled))
}

func writeSectionHeader(b *strings.Builder, title string) {
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n")
}

func writeLabeledLine(b *strings.Builder, label, value string) {
	b.WriteString(labelStyle.Render(label + ":"))
	b.WriteString(" ")
	b.WriteString(value)
	b.WriteString("\n")
}

func writeOptionalLine(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	writeLabeledLine(b, label, value)
}

func writeList(b *strings.Builder, title string, items []string) {
	writeSectionHeader(b, title)
	if len(items) == 0 {
		b.WriteString(mutedStyle.Render("(none)") + "\n\n")
		return
	}
	for _, item := range items {
		b.WriteString("- ")
		b.WriteString(item)
		b.WriteString("\n")
	}
	b.WriteString("\n")
}
