package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/hollowdust/pavilion/internal/domain"
	"github.com/hollowdust/pavilion/internal/index"
	"github.com/hollowdust/pavilion/internal/logger"
	"github.com/hollowdust/pavilion/internal/outline"
	"github.com/hollowdust/pavilion/internal/sources/content"
	redisstore "github.com/hollowdust/pavilion/internal/store/redis"
)

// ContentReloader handles periodic reloading of one collection's outline file
type ContentReloader struct {
	kind          domain.Kind
	loader        *content.Loader
	mapFn         func(outline.Result) (*domain.Outline, error)
	store         *redisstore.Store
	index         *index.MemoryIndex
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewContentReloader creates a reloader for one collection declared in the
// site manifest. Articles get the three-field mapper with cover derivation,
// everything else the generic one.
func NewContentReloader(
	manifest *content.Manifest,
	kind domain.Kind,
	store *redisstore.Store,
	idx *index.MemoryIndex,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *ContentReloader {
	var mapFn func(outline.Result) (*domain.Outline, error)
	if kind == domain.KindArticles {
		am := content.NewArticleMapper(manifest)
		mapFn = am.MapOutline
	} else {
		m := content.NewMapper()
		mapFn = func(res outline.Result) (*domain.Outline, error) {
			return m.MapOutline(kind, res)
		}
	}

	return &ContentReloader{
		kind:          kind,
		loader:        content.NewLoader(manifest.OutlinePath(kind)),
		mapFn:         mapFn,
		store:         store,
		index:         idx,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start begins the periodic reload process. A failed initial load does
// not stop the ticker: the collection serves degraded until a later
// reload succeeds.
func (cr *ContentReloader) Start(ctx context.Context) error {
	var initialErr error
	if err := cr.Reload(ctx); err != nil {
		initialErr = fmt.Errorf("initial reload failed: %w", err)
	}

	// Start periodic reload
	ticker := time.NewTicker(cr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := cr.Reload(ctx); err != nil {
					cr.logger.Error("failed to reload outline",
						logger.String("kind", string(cr.kind)),
						logger.Error(err))
				}
			case <-cr.manualTrigger:
				cr.logger.Info("manual reload triggered",
					logger.String("kind", string(cr.kind)))
				if err := cr.Reload(ctx); err != nil {
					cr.logger.Error("failed to reload outline",
						logger.String("kind", string(cr.kind)),
						logger.Error(err))
				}
			case <-cr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return initialErr
}

// Stop stops the reloader
func (cr *ContentReloader) Stop() {
	close(cr.stopCh)
}

// Reload loads the outline file, parses it and updates index + store
func (cr *ContentReloader) Reload(ctx context.Context) error {
	cr.logger.Info("reloading outline",
		logger.String("kind", string(cr.kind)))

	text, err := cr.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load outline file: %w", err)
	}

	res := outline.Parse(text, content.EntryArity(cr.kind))

	// Malformed lines never abort a reload, they just get reported.
	for _, d := range res.Diagnostics {
		cr.logger.Warn("skipped malformed outline line",
			logger.String("kind", string(cr.kind)),
			logger.Int("line", d.Line),
			logger.String("text", d.Text))
	}

	out, err := cr.mapFn(res)
	if err != nil {
		return fmt.Errorf("failed to map outline: %w", err)
	}

	cr.logger.Info("loaded outline",
		logger.String("kind", string(cr.kind)),
		logger.Int("categories", len(out.Categories)),
		logger.Int("entries", len(out.Entries)))

	// Update memory index
	cr.index.UpdateOutline(out)

	// Article bodies may have changed along with the outline, drop the
	// rendered cache and let reads re-render lazily.
	if cr.kind == domain.KindArticles {
		cr.index.InvalidateArticles()
		if cr.store != nil {
			if err := cr.store.FlushArticles(ctx); err != nil {
				cr.logger.Warn("failed to flush rendered articles from redis",
					logger.Error(err))
			}
		}
	}

	// Update Redis store (best effort)
	if cr.store != nil {
		if err := cr.store.SaveOutline(ctx, out); err != nil {
			cr.logger.Warn("failed to save outline to redis",
				logger.String("kind", string(cr.kind)),
				logger.Error(err))
			// Don't fail - memory index is the primary source
		} else {
			cr.logger.Debug("outline saved to redis",
				logger.String("kind", string(cr.kind)))
		}
	}

	return nil
}
