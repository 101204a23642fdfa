package scheduler

import (
	"context"

	"github.com/hollowdust/pavilion/internal/domain"
	"github.com/hollowdust/pavilion/internal/index"
	"github.com/hollowdust/pavilion/internal/logger"
)

// outlineStore is the slice of the Redis store the syncer needs.
type outlineStore interface {
	GetOutline(ctx context.Context, kind domain.Kind) (*domain.Outline, error)
	GetAllViews(ctx context.Context) (map[string]int64, error)
	SaveOutlinesMany(ctx context.Context, outs []*domain.Outline) error
}

// RedisSyncer restores outlines and view counters from Redis into the
// memory index on startup, so reads work before the first file reload
// and view counts survive restarts.
type RedisSyncer struct {
	store  outlineStore
	index  *index.MemoryIndex
	logger logger.Logger
}

// NewRedisSyncer creates a new Redis syncer
func NewRedisSyncer(
	store outlineStore,
	idx *index.MemoryIndex,
	log logger.Logger,
) *RedisSyncer {
	return &RedisSyncer{
		store:  store,
		index:  idx,
		logger: log,
	}
}

// Sync loads the given collections and all view counters from Redis
func (rs *RedisSyncer) Sync(ctx context.Context, kinds []domain.Kind) error {
	rs.logger.Info("syncing content from redis to memory")

	restored := 0
	for _, kind := range kinds {
		out, err := rs.store.GetOutline(ctx, kind)
		if err != nil {
			return err
		}
		if out == nil {
			continue
		}
		rs.index.UpdateOutline(out)
		restored++
	}

	views, err := rs.store.GetAllViews(ctx)
	if err != nil {
		return err
	}
	if len(views) > 0 {
		rs.index.SetViews(views)
	}

	if restored == 0 && len(views) == 0 {
		rs.logger.Info("no cached content found in redis")
		return nil
	}

	rs.logger.Info("synced content from redis",
		logger.Int("outlines", restored),
		logger.Int("view_counters", len(views)))

	return nil
}

// Mirror writes every loaded outline back to Redis in one pipeline.
// Called on shutdown: the per-reload saves predate any view counting, so
// this leaves the mirror with current view counts and fresh TTLs for the
// next warm start.
func (rs *RedisSyncer) Mirror(ctx context.Context) error {
	kinds := rs.index.Kinds()
	outs := make([]*domain.Outline, 0, len(kinds))
	for _, kind := range kinds {
		if out, ok := rs.index.GetOutline(kind); ok {
			outs = append(outs, out)
		}
	}

	if len(outs) == 0 {
		return nil
	}

	if err := rs.store.SaveOutlinesMany(ctx, outs); err != nil {
		return err
	}

	rs.logger.Info("mirrored outlines to redis",
		logger.Int("outlines", len(outs)))

	return nil
}
