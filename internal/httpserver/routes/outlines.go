package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/hollowdust/pavilion/internal/domain"
	"github.com/hollowdust/pavilion/internal/httpserver/deps"
	"github.com/hollowdust/pavilion/internal/httpserver/handlers"
)

func init() { Register(registerOutlines) }

func registerOutlines(r chi.Router, d deps.Deps) {
	r.Get("/api/trophies", handlers.Outline(d, domain.KindTrophies))
	r.Get("/api/acg", handlers.Outline(d, domain.KindACG))
	r.Get("/api/friends", handlers.Outline(d, domain.KindFriends))
	r.Get("/api/articles", handlers.Outline(d, domain.KindArticles))
	r.Get("/api/articles/{slug}", handlers.Article(d))
}
