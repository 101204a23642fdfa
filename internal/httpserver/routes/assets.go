package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/hollowdust/pavilion/internal/httpserver/deps"
	"github.com/hollowdust/pavilion/internal/httpserver/handlers"
)

func init() { Register(registerAssets) }

func registerAssets(r chi.Router, d deps.Deps) {
	if d.AssetsDir == "" {
		return
	}
	r.Get("/assets/*", handlers.Assets(d))
}
