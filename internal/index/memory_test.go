package index

import (
	"sync"
	"testing"

	"github.com/hollowdust/pavilion/internal/domain"
)

func testOutline(kind domain.Kind, names ...string) *domain.Outline {
	out := &domain.Outline{Kind: kind}
	for _, n := range names {
		out.Entries = append(out.Entries, domain.Entry{
			ID:   domain.EntryID(kind, n),
			Name: n,
		})
	}
	return out
}

func TestNewMemoryIndex(t *testing.T) {
	idx := NewMemoryIndex()
	if idx == nil {
		t.Fatal("NewMemoryIndex() returned nil")
	}
	if _, ok := idx.GetOutline(domain.KindTrophies); ok {
		t.Error("NewMemoryIndex() should start empty")
	}
}

func TestUpdateOutlineOverwrites(t *testing.T) {
	idx := NewMemoryIndex()

	idx.UpdateOutline(testOutline(domain.KindTrophies, "A", "B"))
	idx.UpdateOutline(testOutline(domain.KindTrophies, "C"))

	out, ok := idx.GetOutline(domain.KindTrophies)
	if !ok {
		t.Fatal("outline not found after update")
	}
	if len(out.Entries) != 1 || out.Entries[0].Name != "C" {
		t.Errorf("UpdateOutline() should replace wholesale, got %+v", out.Entries)
	}
}

func TestUpdateOutlineIsolatesKinds(t *testing.T) {
	idx := NewMemoryIndex()

	idx.UpdateOutline(testOutline(domain.KindTrophies, "A"))
	idx.UpdateOutline(testOutline(domain.KindFriends, "B"))

	if idx.EntryCount(domain.KindTrophies) != 1 {
		t.Error("trophies outline lost after friends update")
	}
	if idx.EntryCount(domain.KindFriends) != 1 {
		t.Error("friends outline missing")
	}
}

func TestIncrementViewsSurvivesReload(t *testing.T) {
	idx := NewMemoryIndex()
	idx.UpdateOutline(testOutline(domain.KindArticles, "Post"))

	id := domain.EntryID(domain.KindArticles, "Post")
	idx.IncrementViews(id)
	idx.IncrementViews(id)

	// Reload the collection: counters must be re-applied.
	idx.UpdateOutline(testOutline(domain.KindArticles, "Post"))

	out, _ := idx.GetOutline(domain.KindArticles)
	if out.Entries[0].Views != 2 {
		t.Errorf("Views = %v, want 2 after reload", out.Entries[0].Views)
	}
}

func TestAllEntriesSnapshotIsStable(t *testing.T) {
	idx := NewMemoryIndex()
	idx.UpdateOutline(testOutline(domain.KindArticles, "Post"))
	id := domain.EntryID(domain.KindArticles, "Post")

	snap := idx.AllEntries(domain.KindArticles)
	idx.IncrementViews(id)

	if snap[0].Views != 0 {
		t.Errorf("snapshot Views = %v, want 0: entries handed out must be copies", snap[0].Views)
	}
	if fresh := idx.AllEntries(domain.KindArticles); fresh[0].Views != 1 {
		t.Errorf("fresh snapshot Views = %v, want 1", fresh[0].Views)
	}
}

func TestArticleCache(t *testing.T) {
	idx := NewMemoryIndex()

	a := &domain.RenderedArticle{ID: "abc", Title: "Post", HTML: "<p>hi</p>"}
	idx.PutArticle(a)

	got, ok := idx.GetArticle("abc")
	if !ok || got.HTML != "<p>hi</p>" {
		t.Errorf("GetArticle() = %+v, %v", got, ok)
	}

	idx.DeleteArticle("abc")
	if _, ok := idx.GetArticle("abc"); ok {
		t.Error("article still cached after delete")
	}
}

func TestInvalidateArticles(t *testing.T) {
	idx := NewMemoryIndex()
	idx.PutArticle(&domain.RenderedArticle{ID: "a"})
	idx.PutArticle(&domain.RenderedArticle{ID: "b"})

	idx.InvalidateArticles()

	if len(idx.ArticleIDs()) != 0 {
		t.Error("InvalidateArticles() should empty the cache")
	}
}

func TestMemoryIndexConcurrentAccess(t *testing.T) {
	idx := NewMemoryIndex()
	idx.UpdateOutline(testOutline(domain.KindArticles, "Post"))
	id := domain.EntryID(domain.KindArticles, "Post")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			idx.IncrementViews(id)
		}()
		go func() {
			defer wg.Done()
			_ = idx.AllEntries(domain.KindArticles)
		}()
	}
	wg.Wait()

	out, _ := idx.GetOutline(domain.KindArticles)
	if out.Entries[0].Views != 50 {
		t.Errorf("Views = %v, want 50", out.Entries[0].Views)
	}
}
