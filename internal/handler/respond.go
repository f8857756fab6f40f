package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sandwichproject/host-locator/internal/domain"
)

// writeJSON serializes v with the given status. Encoding failures are logged,
// not surfaced — the status line has already been written.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encoding failed", "error", err)
	}
}

// decodeJSON parses the request body into v, rejecting unknown fields so
// client typos surface as 422s instead of silently dropped data.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// pathID parses the {id} route parameter as an int64.
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// writeServiceError maps service-layer sentinel errors to HTTP responses.
// Unknown errors become an opaque 500; the detail stays in the server log.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, resource string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, notFoundBody(resource+" not found"))
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
	default:
		slog.ErrorContext(r.Context(), "handler error", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, internalBody())
	}
}
