package endpoints

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/Aayushman-oss/nutriscan-ai/internal/api"
	"github.com/Aayushman-oss/nutriscan-ai/internal/svcctx"
)

// HealthResponse is the response for health check endpoints.
type HealthResponse struct {
	Status   string `json:"status"`
	Provider string `json:"provider,omitempty"`
}

// HealthEndpoint handles GET /health.
type HealthEndpoint struct{}

func (e *HealthEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/health", e.handler
}

func (e *HealthEndpoint) RequiresInit() bool { return false }

func (e *HealthEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (e *HealthEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp HealthResponse
			if err := client.Get(cmd.Context(), "/health", &resp); err != nil {
				return err
			}
			return api.Output(resp, func() string { return fmt.Sprintf("Status: %s\n", resp.Status) })
		},
	}
}

// ReadyEndpoint handles GET /ready.
type ReadyEndpoint struct{}

func (e *ReadyEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/ready", e.handler
}

func (e *ReadyEndpoint) RequiresInit() bool { return false }

// ready is true when the default provider is registered with a credential.
func (e *ReadyEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	svc := svcctx.ServicesFrom(r.Context())
	if svc == nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "not_initialized"})
		return
	}
	resp := HealthResponse{Status: "ok", Provider: svc.Config.Defaults.LLMProvider}
	if svc.Registry == nil || !svc.Registry.HasLLM(resp.Provider) {
		resp.Status = "degraded"
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (e *ReadyEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "ready",
		Short: "Check server readiness (includes the reasoning provider)",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp HealthResponse
			if err := client.Get(cmd.Context(), "/ready", &resp); err != nil {
				return err
			}
			return api.Output(resp, func() string {
				return fmt.Sprintf("Status:   %s\nProvider: %s\n", resp.Status, resp.Provider)
			})
		},
	}
}

// StatusResponse is the detailed status response.
type StatusResponse struct {
	Server         string   `json:"server"`
	Provider       string   `json:"provider"`
	Model          string   `json:"model"`
	LLM            []string `json:"llm"`
	Unkeyed        []string `json:"unkeyed,omitempty"`
	StrictContract bool     `json:"strict_contract"`
}

// StatusEndpoint handles GET /status.
type StatusEndpoint struct{}

func (e *StatusEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/status", e.handler
}

func (e *StatusEndpoint) RequiresInit() bool { return false }

func (e *StatusEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	resp := StatusResponse{Server: "running"}

	if svc := svcctx.ServicesFrom(r.Context()); svc != nil {
		resp.Provider = svc.Provider
		resp.Model = svc.Model
		resp.StrictContract = svc.Config.Pipeline.StrictContract
	}
	if registry := svcctx.RegistryFrom(r.Context()); registry != nil {
		resp.LLM = registry.ListLLM()
		resp.Unkeyed = registry.Unkeyed()
	}

	writeJSON(w, http.StatusOK, resp)
}

func (e *StatusEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Get detailed server status",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp StatusResponse
			if err := client.Get(cmd.Context(), "/status", &resp); err != nil {
				return err
			}
			return api.Output(resp, func() string {
				s := fmt.Sprintf("Server:   %s\n", resp.Server)
				s += fmt.Sprintf("Provider: %s (%s)\n", resp.Provider, resp.Model)
				s += fmt.Sprintf("LLM:      %v\n", resp.LLM)
				if len(resp.Unkeyed) > 0 {
					s += fmt.Sprintf("Unkeyed:  %v\n", resp.Unkeyed)
				}
				s += fmt.Sprintf("Strict:   %t\n", resp.StrictContract)
				return s
			})
		},
	}
}
