// Package httputil centralizes JSON encoding and domain error translation
// for HTTP handlers so every endpoint returns the same envelopes.
package httputil

import (
	"encoding/json"
	"net/http"

	"accessdesk/pkg/domerrors"
)

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into the JSON error envelope.
// Internal and audit failures omit the description so store internals never
// reach API callers; everything else includes the caller-facing message.
func WriteError(w http.ResponseWriter, err error) {
	code := domerrors.CodeOf(err)
	status := domerrors.ToHTTPStatus(code)

	body := map[string]string{"error": string(code)}
	if status < http.StatusInternalServerError {
		body["error_description"] = domerrors.MessageOf(err)
	}
	WriteJSON(w, status, body)
}

// Decode decodes the JSON request body into T. On failure it writes a
// bad_request envelope and returns ok=false.
func Decode[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	var v T
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&v); err != nil {
		WriteError(w, domerrors.New(domerrors.CodeBadRequest, "invalid JSON body"))
		return v, false
	}
	return v, true
}
