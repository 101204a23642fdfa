package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/hollowdust/pavilion/internal/httpserver/deps"
	"github.com/hollowdust/pavilion/internal/httpserver/handlers"
	"github.com/hollowdust/pavilion/internal/httpserver/mw"
)

func init() { Register(registerReload) }

func registerReload(r chi.Router, d deps.Deps) {
	limit := mw.RateLimit(mw.RateLimitConfig{
		Burst:             3,
		RefillPerIPPerMin: 6,
		TrustProxy:        d.TrustProxy,
	})
	r.With(
		mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger),
		mw.EnforceHost(d.AllowedHosts, d.Logger),
		limit,
	).Post("/reload", handlers.Reload(d))
}
