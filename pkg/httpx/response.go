package httpx

import (
	"encoding/json"
	"net/http"

	"canvaspad/pkg/apperr"
	"canvaspad/pkg/logger"
)

// WriteJSON marshals data first so a late encoding failure cannot produce a
// half-written body after headers are sent.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		logger.Sugar.Errorf("Failed to encode response: %v", err)
		WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// WriteError writes a JSON error body with the given status.
func WriteError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// WriteDomainError maps a domain error to its HTTP status and message.
// Unexpected errors are logged server-side and returned as a generic 500.
func WriteDomainError(w http.ResponseWriter, err error) {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		logger.Sugar.Errorf("Unexpected error: %v", err)
	}
	WriteError(w, status, apperr.Message(err))
}
