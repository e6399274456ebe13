package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aayushman-oss/nutriscan-ai/internal/api"
	"github.com/Aayushman-oss/nutriscan-ai/internal/nutrition"
	"github.com/Aayushman-oss/nutriscan-ai/internal/render"
	"github.com/Aayushman-oss/nutriscan-ai/internal/server/endpoints"
)

var alternativesRetries int

var alternativesCmd = &cobra.Command{
	Use:   "alternatives <food item>",
	Short: "Suggest healthier alternatives for a junk food item",
	Long: `Ask the reasoning service for healthier alternatives to a junk food item.
Each suggestion comes with a reason and an illustration URL.

Examples:
  nutriscan alternatives Doritos
  nutriscan alternatives "instant ramen" -o json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		query := strings.Join(args, " ")

		mgr, err := loadConfig()
		if err != nil {
			return err
		}
		svc, err := buildServices(mgr)
		if err != nil {
			return err
		}

		alts, err := withRetries(ctx, alternativesRetries, func() ([]nutrition.AlternativeSuggestion, error) {
			return svc.Finder.Find(ctx, query)
		})
		if err != nil {
			return err
		}

		resp := endpoints.AlternativesResponse{Query: strings.TrimSpace(query), Alternatives: alts}
		return api.Output(resp, func() string { return render.Alternatives(resp.Query, alts) })
	},
}

func init() {
	alternativesCmd.Flags().IntVar(&alternativesRetries, "retries", 0, "retry this many times while the reasoning service is unavailable")
	rootCmd.AddCommand(alternativesCmd)
}
