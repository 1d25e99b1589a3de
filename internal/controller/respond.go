// internal/controller/respond.go
package controller

import (
	"encoding/json"
	"net/http"

	appErrors "github.com/openchurch/campaign-service/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the typed service errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case appErrors.IsNotFound(err):
		status = http.StatusNotFound
	case appErrors.IsInvalidArgument(err), appErrors.IsInvalidState(err):
		status = http.StatusBadRequest
	case appErrors.IsConflict(err):
		status = http.StatusConflict
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
