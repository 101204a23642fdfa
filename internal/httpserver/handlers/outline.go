package handlers

import (
	"net/http"
	"time"

	"github.com/hollowdust/pavilion/internal/domain"
	"github.com/hollowdust/pavilion/internal/httpserver/deps"
)

type outlineResponse struct {
	Kind       string            `json:"kind"`
	Categories []domain.Category `json:"categories"`
	Entries    []domain.Entry    `json:"entries"`
	LoadedAt   time.Time         `json:"loaded_at"`
}

// Outline serves one collection's parsed outline from the memory index.
func Outline(d deps.Deps, kind domain.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, ok := d.MemoryIndex.GetOutline(kind)
		if !ok {
			writeError(w, http.StatusServiceUnavailable, "collection not loaded")
			return
		}

		writeJSON(w, http.StatusOK, outlineResponse{
			Kind:       string(out.Kind),
			Categories: out.Categories,
			Entries:    out.Entries,
			LoadedAt:   out.LoadedAt,
		})
	}
}
