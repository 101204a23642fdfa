package handlers

import (
	"net/http"
	"sort"
	"time"

	"github.com/hollowdust/pavilion/internal/httpserver/deps"
)

type collectionSummary struct {
	Kind       string `json:"kind"`
	Entries    int    `json:"entries"`
	LastReload string `json:"last_reload,omitempty"`
}

type collectionsResponse struct {
	Title       string              `json:"title"`
	Collections []collectionSummary `json:"collections"`
}

// Collections lists the collections the site manifest declares, with
// their current load state.
func Collections(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kinds := d.Manifest.Kinds()
		sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

		summaries := make([]collectionSummary, 0, len(kinds))
		for _, kind := range kinds {
			s := collectionSummary{
				Kind:    string(kind),
				Entries: d.MemoryIndex.EntryCount(kind),
			}
			if last := d.MemoryIndex.GetLastReload(kind); !last.IsZero() {
				s.LastReload = last.Format(time.RFC3339)
			}
			summaries = append(summaries, s)
		}

		writeJSON(w, http.StatusOK, collectionsResponse{
			Title:       d.Manifest.Title,
			Collections: summaries,
		})
	}
}
