package endpoints

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/Aayushman-oss/nutriscan-ai/internal/api"
	"github.com/Aayushman-oss/nutriscan-ai/internal/extract"
	"github.com/Aayushman-oss/nutriscan-ai/internal/nutrition"
	"github.com/Aayushman-oss/nutriscan-ai/internal/pipeline"
	"github.com/Aayushman-oss/nutriscan-ai/internal/render"
	"github.com/Aayushman-oss/nutriscan-ai/internal/svcctx"
)

// RequestIDHeader carries a caller-chosen request ID.
const RequestIDHeader = "X-Request-ID"

// AnalyzeEndpoint handles POST /api/analyze.
type AnalyzeEndpoint struct{}

func (e *AnalyzeEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/analyze", e.handler
}

func (e *AnalyzeEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Analyze an ingredient label
//	@Description	Upload a JPG, PNG, WEBP or GIF photo of an ingredient label
//	@Tags			scan
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			image	formData	file	true	"Label photo"
//	@Success		200		{object}	nutrition.Assessment
//	@Failure		400		{object}	ErrorResponse
//	@Failure		413		{object}	ErrorResponse
//	@Failure		415		{object}	ErrorResponse
//	@Failure		502		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/api/analyze [post]
func (e *AnalyzeEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	svc := svcctx.ServicesFrom(r.Context())
	if svc == nil || svc.Analyzer == nil {
		writeError(w, http.StatusInternalServerError, "analyzer not available")
		return
	}

	maxBytes := svc.MaxImageBytes
	if maxBytes <= 0 {
		maxBytes = pipeline.DefaultMaxImageBytes
	}
	// Leave headroom for multipart framing.
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+1<<20)

	file, _, err := r.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: "image too large", Kind: KindInvalidRequest})
			return
		}
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "missing image field: " + err.Error(), Kind: KindInvalidRequest})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "failed to read image: " + err.Error(), Kind: KindInvalidRequest})
		return
	}
	if _, err := pipeline.CheckImage(data, maxBytes); err != nil {
		switch {
		case errors.Is(err, pipeline.ErrImageTooLarge):
			writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{
				Error: fmt.Sprintf("image exceeds %d bytes", maxBytes),
				Kind:  KindInvalidRequest,
			})
		case errors.Is(err, pipeline.ErrUnsupportedImage):
			writeJSON(w, http.StatusUnsupportedMediaType, ErrorResponse{Error: err.Error(), Kind: KindInvalidRequest})
		default:
			writeServiceError(w, svc.Logger, err)
		}
		return
	}

	ctx := r.Context()
	if id := r.Header.Get(RequestIDHeader); id != "" {
		ctx = extract.WithRequestID(ctx, id)
	}

	assessment, err := svc.Analyzer.Analyze(ctx, data)
	if err != nil {
		writeServiceError(w, svc.Logger, err)
		return
	}

	w.Header().Set(RequestIDHeader, assessment.RequestID)
	writeJSON(w, http.StatusOK, assessment)
}

func (e *AnalyzeEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <image>",
		Short: "Upload a label photo to the server for analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read image: %w", err)
			}
			client := api.NewClient(getServerURL())
			var resp nutrition.Assessment
			if err := client.PostMultipart(cmd.Context(), "/api/analyze", "image", args[0], data, &resp); err != nil {
				return err
			}
			return api.Output(resp, func() string { return render.Assessment(&resp) })
		},
	}
}
