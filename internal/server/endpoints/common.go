package endpoints

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Aayushman-oss/nutriscan-ai/internal/extract"
	"github.com/Aayushman-oss/nutriscan-ai/internal/validate"
)

// Error kinds reported in ErrorResponse.Kind.
const (
	KindEmptyInput           = "empty_input"
	KindInvalidRequest       = "invalid_request"
	KindServiceUnavailable   = "service_unavailable"
	KindInvalidConfiguration = "invalid_configuration"
	KindInternal             = "internal"
)

// ErrorResponse is a standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// classify maps a pipeline error to its HTTP status and kind.
func classify(err error) (int, string) {
	var verr *validate.ValidationError
	switch {
	case errors.Is(err, extract.ErrEmptyInput):
		return http.StatusBadRequest, KindEmptyInput
	case errors.As(err, &verr):
		return http.StatusBadGateway, string(verr.Kind)
	case errors.Is(err, extract.ErrServiceUnavailable):
		return http.StatusServiceUnavailable, KindServiceUnavailable
	case errors.Is(err, extract.ErrInvalidConfiguration):
		return http.StatusInternalServerError, KindInvalidConfiguration
	default:
		return http.StatusInternalServerError, KindInternal
	}
}

// writeServiceError writes err with the status for its class.
func writeServiceError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status, kind := classify(err)
	if logger != nil && status >= http.StatusInternalServerError {
		logger.Error("request failed", "kind", kind, "error", err)
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error(), Kind: kind})
}
