package endpoints

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aayushman-oss/nutriscan-ai/internal/api"
	"github.com/Aayushman-oss/nutriscan-ai/internal/config"
)

// SettingsResponse contains the effective config entries. API keys are masked.
type SettingsResponse struct {
	Settings []config.Entry `json:"settings"`
}

// ListSettingsEndpoint handles GET /api/settings.
type ListSettingsEndpoint struct {
	// ConfigManager is set by the server; settings are read live from it.
	ConfigManager *config.Manager
}

func (e *ListSettingsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/settings", e.handler
}

func (e *ListSettingsEndpoint) RequiresInit() bool { return false }

func (e *ListSettingsEndpoint) Group() string { return "settings" }

// handler godoc
//
//	@Summary		List effective settings
//	@Description	Get every documented configuration key with its effective value
//	@Tags			settings
//	@Produce		json
//	@Success		200	{object}	SettingsResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/api/settings [get]
func (e *ListSettingsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	if e.ConfigManager == nil {
		writeError(w, http.StatusInternalServerError, "config manager not available")
		return
	}
	writeJSON(w, http.StatusOK, SettingsResponse{Settings: e.ConfigManager.Entries()})
}

func (e *ListSettingsEndpoint) Command(getServerURL func() string) *cobra.Command {
	var prefix string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List effective settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp SettingsResponse
			if err := client.Get(cmd.Context(), "/api/settings", &resp); err != nil {
				return err
			}

			// Filter by prefix if specified
			if prefix != "" {
				filtered := resp.Settings[:0]
				for _, entry := range resp.Settings {
					if strings.HasPrefix(entry.Key, prefix) {
						filtered = append(filtered, entry)
					}
				}
				resp.Settings = filtered
			}
			return api.Output(resp, func() string { return formatEntries(resp.Settings) })
		},
	}
	cmd.Flags().StringVar(&prefix, "prefix", "", "Filter by key prefix (e.g., 'pipeline.')")
	return cmd
}

// GetSettingEndpoint handles GET /api/settings/{key...}.
type GetSettingEndpoint struct {
	ConfigManager *config.Manager
}

func (e *GetSettingEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/settings/{key...}", e.handler
}

func (e *GetSettingEndpoint) RequiresInit() bool { return false }

func (e *GetSettingEndpoint) Group() string { return "settings" }

// handler godoc
//
//	@Summary		Get a setting
//	@Description	Get a single configuration setting by key
//	@Tags			settings
//	@Produce		json
//	@Param			key	path		string	true	"Setting key (URL-encoded)"
//	@Success		200	{object}	config.Entry
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/settings/{key} [get]
func (e *GetSettingEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	key, err := url.PathUnescape(r.PathValue("key"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid key encoding")
		return
	}
	if err := config.ValidateKey(key); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if e.ConfigManager == nil {
		writeError(w, http.StatusInternalServerError, "config manager not available")
		return
	}

	for _, entry := range e.ConfigManager.Entries() {
		if entry.Key == key {
			writeJSON(w, http.StatusOK, entry)
			return
		}
	}

	// Undocumented keys, e.g. an extra provider block.
	value, err := e.ConfigManager.Value(key)
	if err != nil {
		writeError(w, http.StatusNotFound, "setting not found: "+key)
		return
	}
	if strings.HasSuffix(key, ".api_key") {
		value = config.MaskSecret(fmt.Sprint(value))
	}
	writeJSON(w, http.StatusOK, config.Entry{Key: key, Value: value})
}

func (e *GetSettingEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a setting by key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var entry config.Entry
			if err := client.Get(cmd.Context(), "/api/settings/"+url.PathEscape(args[0]), &entry); err != nil {
				return err
			}
			return api.Output(entry, func() string { return fmt.Sprintf("%v\n", entry.Value) })
		},
	}
}

func formatEntries(entries []config.Entry) string {
	var b strings.Builder
	for _, entry := range entries {
		fmt.Fprintf(&b, "%-40s %v\n", entry.Key, entry.Value)
	}
	return b.String()
}
