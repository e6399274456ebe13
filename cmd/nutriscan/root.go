package main

import (
	"github.com/spf13/cobra"

	"github.com/Aayushman-oss/nutriscan-ai/internal/api"
	"github.com/Aayushman-oss/nutriscan-ai/internal/logging"
	"github.com/Aayushman-oss/nutriscan-ai/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
	logLevel     string
	logFormat    string
)

var rootCmd = &cobra.Command{
	Use:   "nutriscan",
	Short: "Ingredient label analysis with a multimodal reasoning service",
	Long: `NutriScan reads a photo of a food ingredient label and returns a health
rating, a short verdict, the ingredients worth worrying about, and healthier
replacements. It can also suggest healthier alternatives for a junk food item.

The reasoning service is configured in config.yaml (default: Gemini through
its OpenAI-compatible endpoint, key read from GEMINI_API_KEY).

Examples:
  nutriscan analyze label.jpg             # Scan a label photo
  nutriscan analyze label.jpg -o json     # Same, as JSON
  nutriscan alternatives Doritos          # Healthier swaps
  nutriscan serve                         # HTTP API on :8080
  nutriscan mcp                           # MCP tools over stdio`,
	Version:       version.GitRelease,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.nutriscan/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "nutriscan home directory (default: ~/.nutriscan)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", string(api.DefaultOutput), "output format: text, yaml or json",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "warn", "log level: debug, info, warn or error",
	)
	rootCmd.PersistentFlags().StringVar(
		&logFormat, "log-format", "text", "log format: text or json",
	)

	// Set output format and logging before any command runs
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		format, err := api.ParseOutputFormat(outputFormat)
		if err != nil {
			return err
		}
		api.SetOutputFormat(format)

		level, err := logging.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		logging.Init(level, logFormat)
		return nil
	}

	rootCmd.AddCommand(versionCmd)
}
