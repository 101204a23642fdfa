package content

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hollowdust/pavilion/internal/domain"
	"github.com/hollowdust/pavilion/internal/markdown"
	"github.com/hollowdust/pavilion/internal/outline"
)

// ArticleMapper converts the article index outline into domain entries.
// It needs the manifest for body access: when an entry leaves the cover
// field empty, the cover is derived from the first image in the article
// body.
type ArticleMapper struct {
	manifest *Manifest
}

// NewArticleMapper creates a mapper bound to a site manifest.
func NewArticleMapper(m *Manifest) *ArticleMapper {
	return &ArticleMapper{manifest: m}
}

// MapOutline converts an article index parse result to a domain.Outline.
// Entry fields are [Title](readTime)(cover)(tags) in source order.
func (am *ArticleMapper) MapOutline(res outline.Result) (*domain.Outline, error) {
	out := &domain.Outline{
		Kind:       domain.KindArticles,
		Categories: mapCategories(res.Categories),
		Entries:    make([]domain.Entry, 0, len(res.Entries)),
		LoadedAt:   time.Now(),
	}

	for _, e := range res.Entries {
		entry := domain.Entry{
			ID:       domain.EntryID(domain.KindArticles, e.Name),
			Name:     e.Name,
			Category: e.Category,
			ReadTime: e.Fields[0],
			Cover:    e.Fields[1],
			Tags:     splitTags(e.Fields[2]),
		}

		if entry.Cover == "" {
			entry.Cover = am.deriveCover(e.Name)
		}

		out.Entries = append(out.Entries, entry)
	}

	if len(out.Entries) == 0 {
		return nil, fmt.Errorf("no valid entries found in articles outline")
	}

	return out, nil
}

// deriveCover reads the article body and returns its first image URL.
// A missing body or an imageless article simply yields no cover.
func (am *ArticleMapper) deriveCover(title string) string {
	body, err := os.ReadFile(am.manifest.ArticlePath(title))
	if err != nil {
		return ""
	}
	return markdown.FirstImage(body)
}

// splitTags splits a comma-separated tag field into trimmed tags.
func splitTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
