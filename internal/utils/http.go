package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteJSON marshals data and writes it as the HTTP response body with the
// given status code and an application/json content type.
//
// The payload is marshaled before any header is written, so a value that
// cannot be serialized produces a clean 500 instead of a half-written
// response. Returns a non-nil error only when marshaling fails; transport
// write errors mean the caller's connection went away and are not reported.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) error {
	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "response serialization failed", http.StatusInternalServerError)
		return fmt.Errorf("marshal response body: %w", err)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(body)

	return nil
}
