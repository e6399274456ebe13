package endpoints

import (
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aayushman-oss/nutriscan-ai/internal/api"
	"github.com/Aayushman-oss/nutriscan-ai/internal/schema"
)

// SchemasListResponse names the available output contracts.
type SchemasListResponse struct {
	Schemas []string `json:"schemas"`
}

// ListSchemasEndpoint handles GET /api/schemas.
type ListSchemasEndpoint struct{}

func (e *ListSchemasEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/schemas", e.handler
}

func (e *ListSchemasEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		List output contracts
//	@Tags			schemas
//	@Produce		json
//	@Success		200	{object}	SchemasListResponse
//	@Router			/api/schemas [get]
func (e *ListSchemasEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	contracts, err := schema.All()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := SchemasListResponse{Schemas: make([]string, len(contracts))}
	for i, c := range contracts {
		resp.Schemas[i] = c.Name
	}
	writeJSON(w, http.StatusOK, resp)
}

func (e *ListSchemasEndpoint) Command(getServerURL func() string) *cobra.Command {
	return nil
}

// GetSchemaEndpoint handles GET /api/schemas/{name}.
type GetSchemaEndpoint struct{}

func (e *GetSchemaEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/schemas/{name}", e.handler
}

func (e *GetSchemaEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		Get an output contract
//	@Description	Returns the JSON schema the reasoning service is asked to satisfy
//	@Tags			schemas
//	@Produce		json
//	@Param			name	path		string	true	"Contract name (label_analysis or alternatives)"
//	@Success		200		{object}	object
//	@Failure		404		{object}	ErrorResponse
//	@Router			/api/schemas/{name} [get]
func (e *GetSchemaEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	c, err := schema.Get(r.PathValue("name"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(c.Raw())
}

func (e *GetSchemaEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "schema [name]",
		Short: "Fetch an output contract from the server (lists names without an argument)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			if len(args) == 0 {
				var resp SchemasListResponse
				if err := client.Get(cmd.Context(), "/api/schemas", &resp); err != nil {
					return err
				}
				return api.Output(resp, func() string { return strings.Join(resp.Schemas, "\n") + "\n" })
			}
			var doc map[string]any
			if err := client.Get(cmd.Context(), "/api/schemas/"+args[0], &doc); err != nil {
				return err
			}
			return api.Output(doc, nil)
		},
	}
}
