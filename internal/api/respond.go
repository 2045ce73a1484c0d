package api

import (
	"encoding/json"
	"net/http"

	"github.com/inkvoice/inkvoice/internal/apperr"
	"github.com/inkvoice/inkvoice/internal/logger"
)

// writeJSON writes a success body.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}

// writeError converts any error into the uniform {"error": "..."} body,
// with the status taken from the taxonomy kind. This is the only place
// errors become HTTP.
func writeError(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)
	status := apperr.HTTPStatus(kind)
	if status >= http.StatusInternalServerError {
		logger.New().WithError(err).Error("request failed")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

// writeValidationError is the shorthand for missing-field responses.
func writeValidationError(w http.ResponseWriter, msg string) {
	writeError(w, apperr.Validation(msg))
}
