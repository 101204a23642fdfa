package handlers

import (
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hollowdust/pavilion/internal/domain"
	"github.com/hollowdust/pavilion/internal/httpserver/deps"
	"github.com/hollowdust/pavilion/internal/logger"
	redisstore "github.com/hollowdust/pavilion/internal/store/redis"
)

type articleResponse struct {
	*domain.RenderedArticle
	Views int64 `json:"views"`
}

// Article serves one rendered article. Bodies are rendered lazily on
// first read and cached in memory plus Redis until the article list
// reloads. Each successful read bumps the entry's view counter.
func Article(d deps.Deps) http.HandlerFunc {
	var store *redisstore.Store
	if d.RedisClient != nil {
		store = redisstore.NewStore(d.RedisClient)
	}

	now := d.TimeNow
	if now == nil {
		now = time.Now
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		slug := chi.URLParam(r, "slug")

		entry := findArticleEntry(d, slug)
		if entry == nil {
			writeError(w, http.StatusNotFound, "article not found")
			return
		}

		rendered, ok := d.MemoryIndex.GetArticle(entry.ID)
		if !ok && store != nil {
			if cached, err := store.GetArticle(ctx, entry.ID); err == nil && cached != nil {
				rendered = cached
				ok = true
				d.MemoryIndex.PutArticle(cached)
			}
		}

		if !ok {
			var err error
			rendered, err = renderArticle(d, entry, now())
			if err != nil {
				if os.IsNotExist(err) {
					d.Logger.Warn("article body missing",
						logger.String("article", entry.Name))
					writeError(w, http.StatusNotFound, "article body not found")
					return
				}
				d.Logger.Error("failed to render article",
					logger.String("article", entry.Name),
					logger.Error(err))
				writeError(w, http.StatusInternalServerError, "failed to render article")
				return
			}

			d.MemoryIndex.PutArticle(rendered)
			if store != nil {
				if err := store.SaveArticle(ctx, rendered); err != nil {
					d.Logger.Warn("failed to cache rendered article in redis",
						logger.String("article_id", rendered.ID),
						logger.Error(err))
				}
			}
		}

		// View learning (best effort on the Redis side).
		views := d.MemoryIndex.IncrementViews(entry.ID)
		if store != nil {
			if err := store.IncrementViews(ctx, entry.ID); err != nil {
				d.Logger.Debug("failed to persist view counter",
					logger.String("article_id", entry.ID),
					logger.Error(err))
			}
		}

		writeJSON(w, http.StatusOK, articleResponse{
			RenderedArticle: rendered,
			Views:           views,
		})
	}
}

// findArticleEntry resolves a slug to an article entry, matching the
// canonical ID first and falling back to the exact title.
func findArticleEntry(d deps.Deps, slug string) *domain.Entry {
	for _, e := range d.MemoryIndex.AllEntries(domain.KindArticles) {
		if e.ID == slug || e.Name == slug {
			return e
		}
	}
	return nil
}

func renderArticle(d deps.Deps, entry *domain.Entry, at time.Time) (*domain.RenderedArticle, error) {
	body, err := os.ReadFile(d.Manifest.ArticlePath(entry.Name))
	if err != nil {
		return nil, err
	}

	html, err := d.Renderer.Render(body)
	if err != nil {
		return nil, err
	}

	return &domain.RenderedArticle{
		ID:         entry.ID,
		Title:      entry.Name,
		HTML:       html,
		ReadTime:   entry.ReadTime,
		Cover:      entry.Cover,
		Tags:       entry.Tags,
		Category:   entry.Category,
		RenderedAt: at,
	}, nil
}
