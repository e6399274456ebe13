package main

import (
	"github.com/spf13/cobra"

	"github.com/Aayushman-oss/nutriscan-ai/internal/mcp"
	"github.com/Aayushman-oss/nutriscan-ai/version"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the scan tools over MCP (stdio)",
	Long: `Start an MCP server over stdin/stdout. Assistant clients launch it as a
subprocess and call these tools:

  analyze_label      image_path or image_base64 -> assessment
  find_alternatives  query -> healthier alternatives
  get_contract       name -> response JSON Schema

Logs go to stderr so stdout stays a clean protocol stream.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := loadConfig()
		if err != nil {
			return err
		}
		svc, err := buildServices(mgr)
		if err != nil {
			return err
		}
		return mcp.NewServer(svc, version.GitRelease).Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
