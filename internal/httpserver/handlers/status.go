package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/hollowdust/pavilion/internal/httpserver/deps"
)

type componentStatus struct {
	OK            bool   `json:"ok"`
	EntriesLoaded *int   `json:"entries_loaded,omitempty"`
	LastReload    string `json:"last_reload,omitempty"`
	Mode          string `json:"mode,omitempty"`
	Impact        string `json:"impact,omitempty"`
	Error         string `json:"error,omitempty"`
}

type statusResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

// Status reports per-collection load state and Redis health.
func Status(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		components := map[string]componentStatus{
			"redis": checkRedis(d),
		}

		for _, kind := range d.Manifest.Kinds() {
			count := d.MemoryIndex.EntryCount(kind)
			lastReload := d.MemoryIndex.GetLastReload(kind)
			lastReloadStr := "never"
			if !lastReload.IsZero() {
				lastReloadStr = lastReload.Format("2006-01-02 15:04:05")
			}

			c := count
			components[string(kind)] = componentStatus{
				OK:            count > 0,
				EntriesLoaded: &c,
				LastReload:    lastReloadStr,
			}
		}

		response := statusResponse{
			Mode:       determineMode(d, components),
			Components: components,
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

func determineMode(d deps.Deps, components map[string]componentStatus) string {
	loaded := 0
	for _, kind := range d.Manifest.Kinds() {
		if c, exists := components[string(kind)]; exists && c.OK {
			loaded++
		}
	}

	// No collection loaded at all means the site has nothing to serve.
	if loaded == 0 {
		return "critical"
	}

	if loaded < len(d.Manifest.Kinds()) {
		return "degraded"
	}

	// Redis down is non-critical but loses view learning and warm restarts.
	if redis, exists := components["redis"]; exists && !redis.OK {
		return "degraded"
	}

	return "ok"
}

func checkRedis(d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "view-learning-disabled",
			Error:  "client not initialized",
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := d.RedisClient.Ping(ctx).Err()
	if err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "view-learning-disabled",
			Error:  "timeout",
		}
	}

	return componentStatus{
		OK:     true,
		Mode:   "optimal",
		Impact: "view-learning-enabled",
		Error:  "none",
	}
}
