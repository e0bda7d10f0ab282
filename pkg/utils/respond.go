// pkg/utils/respond.go
package utils

import (
	"encoding/json"
	"net/http"

	"support-chat-backend/internal/common/errors"
)

// RespondJSON writes a JSON payload with the given status.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// RespondError writes the error payload shape the widget expects. The stack
// field carries structured error details, not a runtime stack trace.
func RespondError(w http.ResponseWriter, status int, err error) {
	payload := map[string]string{"error": err.Error()}
	if stdErr := errors.AsStandard(err); stdErr != nil {
		payload["error"] = stdErr.Message
		payload["stack"] = stdErr.Details
	}
	RespondJSON(w, status, payload)
}

// StatusForError maps the error taxonomy to HTTP status codes.
func StatusForError(err error) int {
	switch {
	case errors.IsValidation(err):
		return http.StatusBadRequest
	case errors.IsStorageUnavailable(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
