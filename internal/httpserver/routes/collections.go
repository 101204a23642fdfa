package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/hollowdust/pavilion/internal/httpserver/deps"
	"github.com/hollowdust/pavilion/internal/httpserver/handlers"
)

func init() { Register(registerCollections) }

func registerCollections(r chi.Router, d deps.Deps) {
	r.Get("/api/collections", handlers.Collections(d))
}
