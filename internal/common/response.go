package common

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the structured failure body: a tag clients branch on plus
// a human-readable message.
type ErrorResponse struct {
	ErrorType Kind   `json:"errorType"`
	Message   string `json:"message"`
}

// RespondWithError writes the tagged error body for err with its mapped
// status code.
func RespondWithError(w http.ResponseWriter, err error) {
	RespondWithJSON(w, HTTPStatusFromError(err), ErrorResponse{
		ErrorType: KindOf(err),
		Message:   MessageOf(err),
	})
}

// RespondWithKind writes an error body without a service-level error value,
// for failures originating in handlers or middleware.
func RespondWithKind(w http.ResponseWriter, kind Kind, message string) {
	RespondWithJSON(w, HTTPStatusFromError(E(kind, message)), ErrorResponse{
		ErrorType: kind,
		Message:   message,
	})
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"errorType": "INTERNAL", "message": "Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
