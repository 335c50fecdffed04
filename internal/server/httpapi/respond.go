package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avolkov/passvault/internal/vaulterr"
)

type successResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type errorResponse struct {
	StatusCode   int          `json:"statusCode"`
	ErrorMessage string       `json:"errorMessage"`
	ErrorDetails errorDetails `json:"errorDetails"`
}

type errorDetails struct {
	Type  string `json:"type"`
	Cause string `json:"cause"`
}

func sendJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func sendSuccess(w http.ResponseWriter, message string, data any) {
	sendJSON(w, http.StatusOK, successResponse{Message: message, Data: data})
}

// sendError translates any error into the uniform envelope. Vault error
// kinds carry their own status and a caller-safe message; anything else is
// reported as a generic internal failure so library internals never reach
// the client.
func sendError(w http.ResponseWriter, err error, message string) {
	var ve *vaulterr.Error
	if errors.As(err, &ve) {
		sendJSON(w, ve.Status, errorResponse{
			StatusCode:   ve.Status,
			ErrorMessage: message,
			ErrorDetails: errorDetails{Type: ve.Kind.String(), Cause: ve.Message},
		})
		return
	}

	sendJSON(w, http.StatusInternalServerError, errorResponse{
		StatusCode:   http.StatusInternalServerError,
		ErrorMessage: message,
		ErrorDetails: errorDetails{Type: "InternalError", Cause: "internal error"},
	})
}
