package utils

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/containerd/errdefs"
)

func JSONError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// WriteError translates a classified error into the HTTP response. Conflicts
// map to 400 rather than 409 to keep the existing client contract. Internal
// failures are logged and never leak detail to the caller.
func WriteError(w http.ResponseWriter, err error) {
	switch {
	case errdefs.IsInvalidArgument(err):
		JSONError(w, err.Error(), http.StatusBadRequest)
	case errdefs.IsConflict(err):
		JSONError(w, err.Error(), http.StatusBadRequest)
	case errdefs.IsNotFound(err):
		JSONError(w, err.Error(), http.StatusNotFound)
	case errdefs.IsUnavailable(err):
		log.Printf("partial failure: %v", err)
		JSONError(w, "internal server error", http.StatusInternalServerError)
	default:
		log.Printf("internal error: %v", err)
		JSONError(w, "internal server error", http.StatusInternalServerError)
	}
}
