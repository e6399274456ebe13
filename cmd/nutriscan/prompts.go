package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aayushman-oss/nutriscan-ai/internal/api"
	"github.com/Aayushman-oss/nutriscan-ai/internal/logging"
	"github.com/Aayushman-oss/nutriscan-ai/internal/prompts"
	"github.com/Aayushman-oss/nutriscan-ai/internal/prompts/catalog"
	"github.com/Aayushman-oss/nutriscan-ai/internal/server/endpoints"
)

var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "Inspect the instruction prompts (with config overrides applied)",
}

func localResolver() (*prompts.Resolver, error) {
	mgr, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return catalog.NewResolver(logging.New("prompts"), mgr.Get().PromptOverrides()), nil
}

func promptResponse(r *prompts.Resolver, key string) (endpoints.PromptResponse, error) {
	resolved, err := r.Resolve(key)
	if err != nil {
		return endpoints.PromptResponse{}, err
	}
	resp := endpoints.PromptResponse{
		Key:        key,
		Text:       resolved.Text,
		Variables:  resolved.Variables,
		Hash:       resolved.Hash,
		IsOverride: resolved.IsOverride,
	}
	if e, ok := r.GetEmbedded(key); ok {
		resp.Description = e.Description
	}
	return resp, nil
}

var promptsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List prompt keys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := localResolver()
		if err != nil {
			return err
		}
		var resp endpoints.PromptsListResponse
		for _, e := range r.AllEmbedded() {
			p, err := promptResponse(r, e.Key)
			if err != nil {
				return err
			}
			resp.Prompts = append(resp.Prompts, p)
		}
		return api.Output(resp, func() string {
			var b strings.Builder
			for _, p := range resp.Prompts {
				marker := ""
				if p.IsOverride {
					marker = " (override)"
				}
				fmt.Fprintf(&b, "%-28s %s%s\n", p.Key, p.Description, marker)
			}
			return b.String()
		})
	},
}

var promptsShowCmd = &cobra.Command{
	Use:   "show <key>",
	Short: "Show the text sent for a prompt key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := localResolver()
		if err != nil {
			return err
		}
		p, err := promptResponse(r, args[0])
		if err != nil {
			return err
		}
		return api.Output(p, func() string {
			header := fmt.Sprintf("# %s (variables: %s)\n", p.Key, strings.Join(p.Variables, ", "))
			if p.IsOverride {
				header = fmt.Sprintf("# %s (override, variables: %s)\n", p.Key, strings.Join(p.Variables, ", "))
			}
			return header + p.Text + "\n"
		})
	},
}

func init() {
	promptsCmd.AddCommand(promptsListCmd)
	promptsCmd.AddCommand(promptsShowCmd)
	rootCmd.AddCommand(promptsCmd)
}
