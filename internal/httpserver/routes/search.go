package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/hollowdust/pavilion/internal/httpserver/deps"
	"github.com/hollowdust/pavilion/internal/httpserver/handlers"
	"github.com/hollowdust/pavilion/internal/httpserver/mw"
)

func init() { Register(registerSearch) }

func registerSearch(r chi.Router, d deps.Deps) {
	limit := mw.RateLimit(mw.RateLimitConfig{
		Burst:             30,
		RefillPerIPPerMin: 60,
		MaxEntries:        4096,
		TrustProxy:        d.TrustProxy,
	})
	r.With(limit).Get("/api/search", handlers.Search(d))
}
