package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/hollowdust/pavilion/internal/httpserver/deps"
)

// Assets serves static files (covers, article images) from the configured
// assets directory. http.FileServer handles Range requests and
// conditional GETs, which matters for audio and large images.
func Assets(d deps.Deps) http.HandlerFunc {
	root := filepath.Clean(d.AssetsDir)
	fs := http.StripPrefix("/assets/", http.FileServer(http.Dir(root)))

	return func(w http.ResponseWriter, r *http.Request) {
		// Directory listings stay off.
		if strings.HasSuffix(r.URL.Path, "/") {
			writeError(w, http.StatusNotFound, "not found")
			return
		}

		rel := strings.TrimPrefix(r.URL.Path, "/assets/")
		info, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil || info.IsDir() {
			writeError(w, http.StatusNotFound, "not found")
			return
		}

		fs.ServeHTTP(w, r)
	}
}
