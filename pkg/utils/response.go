package utils

import (
	"encoding/json"
	"log"
	"net/http"
)

// ErrorBody is the uniform error envelope of the training API. Handlers keep
// their success shapes (exchange, session, persona cards); failures always
// reduce to this one field so the UI renders them the same way.
type ErrorBody struct {
	Error string `json:"error"`
}

// RespondJSON writes payload as the JSON body for the given status. Encoding
// failures are logged rather than surfaced; the status line is already out.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[http] failed to encode response: %v", err)
	}
}

// RespondError writes the error envelope for the given status.
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorBody{Error: message})
}
