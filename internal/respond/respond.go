// Package respond holds the shared JSON response helpers. Errors go through
// the taxonomy's status mapping; anything unexpected becomes a generic 500
// so internals never leak to callers.
package respond

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	apperrors "radagast/internal/errors"
)

type errorResponse struct {
	Message string `json:"message"`
}

func JSON(logger *zap.Logger, w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

func Error(logger *zap.Logger, w http.ResponseWriter, err error) {
	status := apperrors.HTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error("unexpected error", zap.Error(err))
		message = "an unexpected error occurred"
	}
	JSON(logger, w, status, errorResponse{Message: message})
}
