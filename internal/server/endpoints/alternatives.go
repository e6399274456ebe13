package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/Aayushman-oss/nutriscan-ai/internal/api"
	"github.com/Aayushman-oss/nutriscan-ai/internal/extract"
	"github.com/Aayushman-oss/nutriscan-ai/internal/nutrition"
	"github.com/Aayushman-oss/nutriscan-ai/internal/render"
	"github.com/Aayushman-oss/nutriscan-ai/internal/svcctx"
)

// AlternativesRequest is the request body for POST /api/alternatives.
type AlternativesRequest struct {
	Query string `json:"query"`
}

// AlternativesResponse lists suggestions in the order the service gave them.
type AlternativesResponse struct {
	Query        string                            `json:"query"`
	Alternatives []nutrition.AlternativeSuggestion `json:"alternatives"`
}

// AlternativesEndpoint handles POST /api/alternatives.
type AlternativesEndpoint struct{}

func (e *AlternativesEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/alternatives", e.handler
}

func (e *AlternativesEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Find healthier alternatives
//	@Description	Suggest three whole-food substitutes for a named product
//	@Tags			scan
//	@Accept			json
//	@Produce		json
//	@Param			request	body		AlternativesRequest	true	"Product to replace"
//	@Success		200		{object}	AlternativesResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		502		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/api/alternatives [post]
func (e *AlternativesEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	finder := svcctx.FinderFrom(r.Context())
	if finder == nil {
		writeError(w, http.StatusInternalServerError, "alternatives finder not available")
		return
	}

	var req AlternativesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error(), Kind: KindInvalidRequest})
		return
	}

	ctx := r.Context()
	if id := r.Header.Get(RequestIDHeader); id != "" {
		ctx = extract.WithRequestID(ctx, id)
	}

	suggestions, err := finder.Find(ctx, req.Query)
	if err != nil {
		writeServiceError(w, svcctx.LoggerFrom(r.Context()), err)
		return
	}

	writeJSON(w, http.StatusOK, AlternativesResponse{Query: req.Query, Alternatives: suggestions})
}

func (e *AlternativesEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "alternatives <product>",
		Short: "Ask the server for healthier alternatives",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp AlternativesResponse
			if err := client.Post(cmd.Context(), "/api/alternatives", AlternativesRequest{Query: args[0]}, &resp); err != nil {
				return err
			}
			return api.Output(resp, func() string { return render.Alternatives(resp.Query, resp.Alternatives) })
		},
	}
}
