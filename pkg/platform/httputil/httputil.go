// Package httputil centralizes JSON response writing so every handler returns
// the same envelope shapes.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "skyscreen/pkg/domainerrors"
)

// WriteJSON writes v as a JSON body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates an error into a JSON error envelope. Coded errors keep
// their code; descriptions are only exposed for non-internal codes so internal
// causes never leak to callers.
func WriteError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := string(dErrors.CodeInternal)
	description := ""

	if de, ok := err.(dErrors.Error); ok {
		status = dErrors.ToHTTPStatus(de.Code)
		code = string(de.Code)
		if de.Code != dErrors.CodeInternal {
			description = de.Description
		}
	}

	body := map[string]string{"error": code}
	if description != "" {
		body["error_description"] = description
	}
	WriteJSON(w, status, body)
}
