package handlers

import (
	"net/http"
	"strings"

	"github.com/hollowdust/pavilion/internal/domain"
	"github.com/hollowdust/pavilion/internal/httpserver/deps"
	"github.com/hollowdust/pavilion/internal/logger"
)

type searchResult struct {
	Kind  string        `json:"kind"`
	Entry *domain.Entry `json:"entry"`
	Score float64       `json:"score"`
}

type searchResponse struct {
	Query   string         `json:"query"`
	Results []searchResult `json:"results"`
}

// Search ranks entries across collections against a free-text query.
// `#tag` terms are hard filters, everything else is fuzzy-matched, and
// view counts nudge frequently opened entries up the ranking.
func Search(d deps.Deps) http.HandlerFunc {
	memIndex := d.MemoryIndex

	return func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(r.URL.Query().Get("q"))
		if raw == "" {
			writeError(w, http.StatusBadRequest, "missing query parameter q")
			return
		}

		kinds := memIndex.Kinds()
		if kindParam := strings.TrimSpace(r.URL.Query().Get("kind")); kindParam != "" {
			kind := domain.Kind(kindParam)
			if _, ok := memIndex.GetOutline(kind); !ok {
				writeError(w, http.StatusNotFound, "unknown collection")
				return
			}
			kinds = []domain.Kind{kind}
		}

		query := domain.ParseQuery(raw)

		lists := make([][]*domain.Candidate, 0, len(kinds))
		for _, kind := range kinds {
			lists = append(lists, domain.RankEntries(query, kind, memIndex.AllEntries(kind)))
		}
		candidates := domain.MergeCandidates(lists...)

		if d.SearchMaxResults > 0 && len(candidates) > d.SearchMaxResults {
			candidates = candidates[:d.SearchMaxResults]
		}

		d.Logger.Info("search request",
			logger.String("query", raw),
			logger.Int("results", len(candidates)))

		results := make([]searchResult, 0, len(candidates))
		for _, c := range candidates {
			results = append(results, searchResult{
				Kind:  string(c.Kind),
				Entry: c.Entry,
				Score: c.TotalScore,
			})
		}

		writeJSON(w, http.StatusOK, searchResponse{
			Query:   raw,
			Results: results,
		})
	}
}
