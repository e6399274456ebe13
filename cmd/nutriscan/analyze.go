package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Aayushman-oss/nutriscan-ai/internal/api"
	"github.com/Aayushman-oss/nutriscan-ai/internal/extract"
	"github.com/Aayushman-oss/nutriscan-ai/internal/nutrition"
	"github.com/Aayushman-oss/nutriscan-ai/internal/pipeline"
	"github.com/Aayushman-oss/nutriscan-ai/internal/render"
)

var (
	analyzeRetries   int
	analyzeRequestID string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <image>",
	Short: "Analyze a photo of an ingredient label",
	Long: `Send a JPG or PNG photo of an ingredient label to the reasoning service
and print the assessment: health rating, verdict, flagged ingredients,
beneficial ingredients and healthier replacements.

Examples:
  nutriscan analyze label.jpg
  nutriscan analyze label.png -o yaml
  nutriscan analyze label.jpg --retries 2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		mgr, err := loadConfig()
		if err != nil {
			return err
		}
		svc, err := buildServices(mgr)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read image: %w", err)
		}
		if _, err := pipeline.CheckImage(data, svc.MaxImageBytes); err != nil {
			return err
		}

		if analyzeRequestID != "" {
			ctx = extract.WithRequestID(ctx, analyzeRequestID)
		}
		assessment, err := withRetries(ctx, analyzeRetries, func() (*nutrition.Assessment, error) {
			return svc.Analyzer.Analyze(ctx, data)
		})
		if err != nil {
			return err
		}

		return api.Output(assessment, func() string { return render.Assessment(assessment) })
	},
}

func init() {
	analyzeCmd.Flags().IntVar(&analyzeRetries, "retries", 0, "retry this many times while the reasoning service is unavailable")
	analyzeCmd.Flags().StringVar(&analyzeRequestID, "request-id", "", "correlation id logged with the request (default: random)")
	rootCmd.AddCommand(analyzeCmd)
}
