package index

import (
	"sync"
	"time"

	"github.com/hollowdust/pavilion/internal/domain"
)

// MemoryIndex holds the parsed outlines and rendered articles in memory.
// It is the primary read path for every request; Redis only mirrors it so
// a restart can warm up without touching the content files.
//
// There is no module-level state here: the index is constructed once in
// app wiring, and each reload replaces a collection's outline wholesale,
// which is the cache-invalidation contract.
type MemoryIndex struct {
	mu         sync.RWMutex
	outlines   map[domain.Kind]*domain.Outline
	articles   map[string]*domain.RenderedArticle // entry ID -> rendered article
	views      map[string]int64                   // entry ID -> view counter
	lastReload map[domain.Kind]time.Time
}

// NewMemoryIndex creates an empty memory index.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		outlines:   make(map[domain.Kind]*domain.Outline),
		articles:   make(map[string]*domain.RenderedArticle),
		views:      make(map[string]int64),
		lastReload: make(map[domain.Kind]time.Time),
	}
}

// UpdateOutline replaces a collection's outline. View counters learned so
// far are re-applied onto the fresh entries by ID.
func (idx *MemoryIndex) UpdateOutline(out *domain.Outline) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	for i := range out.Entries {
		if v, ok := idx.views[out.Entries[i].ID]; ok {
			out.Entries[i].Views = v
		}
	}

	idx.outlines[out.Kind] = out
	idx.lastReload[out.Kind] = time.Now()
}

// GetOutline retrieves a collection's outline.
func (idx *MemoryIndex) GetOutline(kind domain.Kind) (*domain.Outline, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out, ok := idx.outlines[kind]
	return out, ok
}

// AllEntries returns every entry of one collection as pointers suitable
// for ranking. The entries are copies taken under the read lock, so a
// concurrent view-count bump cannot race with a ranking pass reading
// them.
func (idx *MemoryIndex) AllEntries(kind domain.Kind) []*domain.Entry {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out, ok := idx.outlines[kind]
	if !ok {
		return nil
	}
	entries := make([]*domain.Entry, 0, len(out.Entries))
	for i := range out.Entries {
		e := out.Entries[i]
		entries = append(entries, &e)
	}
	return entries
}

// Kinds returns the kinds currently loaded.
func (idx *MemoryIndex) Kinds() []domain.Kind {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	kinds := make([]domain.Kind, 0, len(idx.outlines))
	for k := range idx.outlines {
		kinds = append(kinds, k)
	}
	return kinds
}

// EntryCount returns the number of entries in one collection.
func (idx *MemoryIndex) EntryCount(kind domain.Kind) int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if out, ok := idx.outlines[kind]; ok {
		return len(out.Entries)
	}
	return 0
}

// IncrementViews bumps the view counter for an entry and returns the new
// value. The counter survives outline reloads.
func (idx *MemoryIndex) IncrementViews(id string) int64 {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.views[id]++
	v := idx.views[id]

	for _, out := range idx.outlines {
		for i := range out.Entries {
			if out.Entries[i].ID == id {
				out.Entries[i].Views = v
			}
		}
	}

	return v
}

// SetViews seeds the view counters, typically from Redis on startup.
// Existing in-memory counters win on conflict.
func (idx *MemoryIndex) SetViews(views map[string]int64) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	for id, v := range views {
		if _, ok := idx.views[id]; !ok {
			idx.views[id] = v
		}
	}

	for _, out := range idx.outlines {
		for i := range out.Entries {
			if v, ok := idx.views[out.Entries[i].ID]; ok {
				out.Entries[i].Views = v
			}
		}
	}
}

// GetLastReload returns the timestamp of a collection's last reload.
func (idx *MemoryIndex) GetLastReload(kind domain.Kind) time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload[kind]
}

// ─────────────────────────────────────────────────────────────────
// Rendered article cache
// ─────────────────────────────────────────────────────────────────

// PutArticle caches a rendered article.
func (idx *MemoryIndex) PutArticle(a *domain.RenderedArticle) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.articles[a.ID] = a
}

// GetArticle retrieves a rendered article by entry ID.
func (idx *MemoryIndex) GetArticle(id string) (*domain.RenderedArticle, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	a, ok := idx.articles[id]
	return a, ok
}

// DeleteArticle drops one rendered article from the cache.
func (idx *MemoryIndex) DeleteArticle(id string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	delete(idx.articles, id)
}

// ArticleIDs returns the IDs of all cached rendered articles.
func (idx *MemoryIndex) ArticleIDs() []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	ids := make([]string, 0, len(idx.articles))
	for id := range idx.articles {
		ids = append(ids, id)
	}
	return ids
}

// InvalidateArticles empties the rendered article cache.
func (idx *MemoryIndex) InvalidateArticles() {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.articles = make(map[string]*domain.RenderedArticle)
}
