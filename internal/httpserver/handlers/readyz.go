package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/hollowdust/pavilion/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready             bool `json:"ready"`
	CollectionsLoaded int  `json:"collections_loaded"`
}

// Readyz reports ready once at least one collection outline is in memory.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		loaded := len(d.MemoryIndex.Kinds())
		ready := loaded > 0

		w.Header().Set("Content-Type", "application/json")
		if !ready {
			w.WriteHeader(http.StatusServiceUnavailable)
		} else {
			w.WriteHeader(http.StatusOK)
		}

		_ = json.NewEncoder(w).Encode(readyzResponse{
			Ready:             ready,
			CollectionsLoaded: loaded,
		})
	}
}
