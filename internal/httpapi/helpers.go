package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"boardhub.org/internal/apperr"
	"boardhub.org/internal/obs"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]any{"error": message})
}

// writeAppError is the single error dispatcher: it maps the taxonomy kind to
// a status code and renders the flat error body. Internal causes are logged,
// never rendered.
func writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	ae := apperr.From(err)
	if ae.Status() >= http.StatusInternalServerError {
		obs.LogRequest(map[string]any{
			"level":      "error",
			"msg":        "request_failed",
			"request_id": RequestIDFromContext(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"error":      errCause(ae),
		})
	}
	writeError(w, ae.Status(), ae.Message)
}

func errCause(err error) string {
	if cause := errors.Unwrap(err); cause != nil {
		return cause.Error()
	}
	return err.Error()
}

// decodeJSON strictly decodes a request body into dst: unknown fields and
// trailing data are rejected, and an oversized body surfaces as 400.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apperr.BadRequest("request body too large")
		}
		return apperr.BadRequest("invalid JSON body")
	}
	if dec.More() {
		return apperr.BadRequest("invalid JSON body")
	}
	if _, err := dec.Token(); err != io.EOF {
		return apperr.BadRequest("invalid JSON body")
	}
	return nil
}
