package scheduler

import (
	"context"
	"time"

	"github.com/hollowdust/pavilion/internal/domain"
	"github.com/hollowdust/pavilion/internal/index"
	"github.com/hollowdust/pavilion/internal/logger"
)

// articleCache is the slice of the Redis store the janitor needs.
type articleCache interface {
	CachedArticleIDs(ctx context.Context) ([]string, error)
	DeleteArticle(ctx context.Context, id string) error
}

// CacheJanitor prunes rendered articles whose entry no longer exists in
// the articles outline. Renders are produced lazily on first read, so an
// article removed from the outline otherwise lingers in cache forever.
type CacheJanitor struct {
	store    articleCache
	index    *index.MemoryIndex
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
}

// NewCacheJanitor creates a new cache janitor
func NewCacheJanitor(
	store articleCache,
	idx *index.MemoryIndex,
	log logger.Logger,
	interval time.Duration,
) *CacheJanitor {
	return &CacheJanitor{
		store:    store,
		index:    idx,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic cleanup process
func (cj *CacheJanitor) Start(ctx context.Context) error {
	// Run immediately on start
	if err := cj.Collect(ctx); err != nil {
		cj.logger.Warn("initial cache cleanup failed",
			logger.Error(err))
	}

	// Start periodic cleanup
	ticker := time.NewTicker(cj.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := cj.Collect(ctx); err != nil {
					cj.logger.Error("cache cleanup failed",
						logger.Error(err))
				}
			case <-cj.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the janitor
func (cj *CacheJanitor) Stop() {
	close(cj.stopCh)
}

// Collect removes cached renders for articles absent from the outline
func (cj *CacheJanitor) Collect(ctx context.Context) error {
	out, ok := cj.index.GetOutline(domain.KindArticles)
	if !ok {
		// No outline loaded yet, nothing to compare against.
		return nil
	}

	live := make(map[string]bool, len(out.Entries))
	for _, e := range out.Entries {
		live[e.ID] = true
	}

	deletedCount := 0
	pruned := make(map[string]bool)
	for _, id := range cj.index.ArticleIDs() {
		if live[id] {
			continue
		}

		cj.index.DeleteArticle(id)
		pruned[id] = true

		// Delete from Redis store (best effort)
		if cj.store != nil {
			if err := cj.store.DeleteArticle(ctx, id); err != nil {
				cj.logger.Warn("failed to delete rendered article from redis",
					logger.String("article_id", id),
					logger.Error(err))
			}
		}

		cj.logger.Info("pruned orphaned rendered article",
			logger.String("article_id", id))

		deletedCount++
	}

	// The Redis id set can hold orphans the memory cache never saw:
	// renders cached by a previous process whose entries are gone now.
	if cj.store != nil {
		cached, err := cj.store.CachedArticleIDs(ctx)
		if err != nil {
			cj.logger.Warn("failed to list cached articles in redis",
				logger.Error(err))
		} else {
			for _, id := range cached {
				if live[id] || pruned[id] {
					continue
				}

				if err := cj.store.DeleteArticle(ctx, id); err != nil {
					cj.logger.Warn("failed to delete rendered article from redis",
						logger.String("article_id", id),
						logger.Error(err))
					continue
				}

				cj.logger.Info("pruned orphaned rendered article",
					logger.String("article_id", id))

				deletedCount++
			}
		}
	}

	if deletedCount > 0 {
		cj.logger.Info("cache cleanup completed",
			logger.Int("articles_pruned", deletedCount))
	} else {
		cj.logger.Debug("no orphaned rendered articles")
	}

	return nil
}
