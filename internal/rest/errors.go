// internal/rest/errors.go
package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"librarium/internal/catalog"
)

// errorResponse carries the typed failure's message verbatim; rendering it
// for a user is the caller's concern.
type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps engine failures to HTTP statuses. Business-rule conflicts
// (duplicates, loan-state violations) are all 409s.
func statusFor(err error) int {
	switch {
	case errors.Is(err, catalog.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrDuplicateKey),
		errors.Is(err, catalog.ErrItemLoaned),
		errors.Is(err, catalog.ErrHolderHasLoans),
		errors.Is(err, catalog.ErrAlreadyLoaned),
		errors.Is(err, catalog.ErrNotLoaned):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
