package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/hollowdust/pavilion/internal/domain"
	"github.com/hollowdust/pavilion/internal/index"
	"github.com/hollowdust/pavilion/internal/logger"
)

type fakeOutlineStore struct {
	outlines map[domain.Kind]*domain.Outline
	views    map[string]int64
	saved    []*domain.Outline
}

func (f *fakeOutlineStore) GetOutline(_ context.Context, kind domain.Kind) (*domain.Outline, error) {
	return f.outlines[kind], nil
}

func (f *fakeOutlineStore) GetAllViews(_ context.Context) (map[string]int64, error) {
	return f.views, nil
}

func (f *fakeOutlineStore) SaveOutlinesMany(_ context.Context, outs []*domain.Outline) error {
	f.saved = append(f.saved, outs...)
	return nil
}

func TestRedisSyncerSync(t *testing.T) {
	id := domain.EntryID(domain.KindTrophies, "Hollow Knight")
	store := &fakeOutlineStore{
		outlines: map[domain.Kind]*domain.Outline{
			domain.KindTrophies: {
				Kind: domain.KindTrophies,
				Entries: []domain.Entry{
					{ID: id, Name: "Hollow Knight"},
				},
				LoadedAt: time.Now(),
			},
		},
		views: map[string]int64{id: 7},
	}

	idx := index.NewMemoryIndex()
	rs := NewRedisSyncer(store, idx, logger.New("error", false))

	if err := rs.Sync(context.Background(), []domain.Kind{domain.KindTrophies, domain.KindFriends}); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	out, ok := idx.GetOutline(domain.KindTrophies)
	if !ok {
		t.Fatal("trophies outline should be restored from the store")
	}
	if out.Entries[0].Views != 7 {
		t.Errorf("restored entry views = %d, want 7", out.Entries[0].Views)
	}
	if _, ok := idx.GetOutline(domain.KindFriends); ok {
		t.Error("friends outline was never cached, nothing should be restored")
	}
}

func TestRedisSyncerMirror(t *testing.T) {
	idx := index.NewMemoryIndex()
	id := domain.EntryID(domain.KindArticles, "Why Go")
	idx.UpdateOutline(&domain.Outline{
		Kind: domain.KindArticles,
		Entries: []domain.Entry{
			{ID: id, Name: "Why Go"},
		},
		LoadedAt: time.Now(),
	})
	idx.UpdateOutline(&domain.Outline{
		Kind:     domain.KindFriends,
		LoadedAt: time.Now(),
	})
	idx.IncrementViews(id)
	idx.IncrementViews(id)

	store := &fakeOutlineStore{}
	rs := NewRedisSyncer(store, idx, logger.New("error", false))

	if err := rs.Mirror(context.Background()); err != nil {
		t.Fatalf("Mirror() error = %v", err)
	}

	if len(store.saved) != 2 {
		t.Fatalf("Mirror() saved %d outlines, want 2", len(store.saved))
	}
	for _, out := range store.saved {
		if out.Kind != domain.KindArticles {
			continue
		}
		if out.Entries[0].Views != 2 {
			t.Errorf("mirrored entry views = %d, want 2", out.Entries[0].Views)
		}
	}
}

func TestRedisSyncerMirrorEmptyIndex(t *testing.T) {
	store := &fakeOutlineStore{}
	rs := NewRedisSyncer(store, index.NewMemoryIndex(), logger.New("error", false))

	if err := rs.Mirror(context.Background()); err != nil {
		t.Fatalf("Mirror() error = %v", err)
	}
	if len(store.saved) != 0 {
		t.Errorf("Mirror() saved %d outlines with nothing loaded, want 0", len(store.saved))
	}
}
