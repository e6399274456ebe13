package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aayushman-oss/nutriscan-ai/internal/api"
	"github.com/Aayushman-oss/nutriscan-ai/internal/config"
	"github.com/Aayushman-oss/nutriscan-ai/internal/home"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and initialize the local configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long: `Write the default configuration to --config, or to config.yaml in the
nutriscan home directory. API keys are written as ${ENV_VAR} references.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			h, err := home.New(homeDir)
			if err != nil {
				return err
			}
			if err := h.EnsureExists(); err != nil {
				return err
			}
			path = h.ConfigPath()
		}

		if _, err := os.Stat(path); err == nil && !configForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := config.WriteDefault(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration (API keys masked)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := loadConfig()
		if err != nil {
			return err
		}
		entries := mgr.Entries()
		return api.Output(entries, func() string {
			var b strings.Builder
			if f := mgr.ConfigFileUsed(); f != "" {
				fmt.Fprintf(&b, "# %s\n", f)
			} else {
				b.WriteString("# defaults (no config file found)\n")
			}
			for _, e := range entries {
				fmt.Fprintf(&b, "%-40s %v\n", e.Key, e.Value)
			}
			return b.String()
		})
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Show one effective config value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := loadConfig()
		if err != nil {
			return err
		}
		v, err := mgr.Value(args[0])
		if err != nil {
			return err
		}
		if strings.HasSuffix(args[0], ".api_key") {
			v = config.MaskSecret(fmt.Sprint(v))
		}
		entry := config.Entry{Key: args[0], Value: v}
		if d := config.GetDefault(args[0]); d != nil {
			entry.Description = d.Description
		}
		return api.Output(entry, func() string { return fmt.Sprintf("%v\n", v) })
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing config file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
}
