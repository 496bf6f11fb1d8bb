package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/marciomedrado/casa/internal/catalog"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("encoding response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

// catalogError maps placement and deletion errors to HTTP responses.
// Validation failures are unprocessable input, deletion guards are
// conflicts, unresolvable references are not found. Anything else is
// an internal error.
func catalogError(w http.ResponseWriter, err error) {
	var verr *catalog.ValidationError
	if errors.As(err, &verr) {
		jsonError(w, http.StatusUnprocessableEntity, verr.Error())
		return
	}
	var cerr *catalog.ConstraintError
	if errors.As(err, &cerr) {
		jsonError(w, http.StatusConflict, cerr.Error())
		return
	}
	var rerr *catalog.ResolutionError
	if errors.As(err, &rerr) {
		jsonError(w, http.StatusNotFound, rerr.Error())
		return
	}
	slog.Error("request failed", "error", err)
	jsonError(w, http.StatusInternalServerError, "internal error")
}
