package content

import (
	"fmt"
	"strings"
	"time"

	"github.com/hollowdust/pavilion/internal/domain"
	"github.com/hollowdust/pavilion/internal/outline"
)

// EntryArity returns the number of parenthesized fields an entry line
// carries in the given collection: icon+description for trophies and the
// ACG zone, a bare URL for friend links, read-time+cover+tags for the
// article index.
func EntryArity(kind domain.Kind) int {
	switch kind {
	case domain.KindFriends:
		return 1
	case domain.KindArticles:
		return 3
	default:
		return 2
	}
}

// Mapper converts parsed outlines into domain outlines for the icon+desc
// collections (trophies, ACG) and for friend links. Articles have their
// own mapper because they need body access for cover derivation.
type Mapper struct{}

// NewMapper creates a new mapper instance.
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapOutline converts an outline parse result to a domain.Outline.
func (m *Mapper) MapOutline(kind domain.Kind, res outline.Result) (*domain.Outline, error) {
	out := &domain.Outline{
		Kind:       kind,
		Categories: mapCategories(res.Categories),
		Entries:    make([]domain.Entry, 0, len(res.Entries)),
		LoadedAt:   time.Now(),
	}

	for _, e := range res.Entries {
		entry := domain.Entry{
			ID:       domain.EntryID(kind, e.Name),
			Name:     e.Name,
			Category: e.Category,
		}

		switch kind {
		case domain.KindFriends:
			entry.URL = ensureScheme(e.Fields[0])
		default:
			entry.Icon = e.Fields[0]
			entry.Desc = e.Fields[1]
		}

		out.Entries = append(out.Entries, entry)
	}

	if len(out.Entries) == 0 {
		return nil, fmt.Errorf("no valid entries found in %s outline", kind)
	}

	return out, nil
}

func mapCategories(cats []outline.Category) []domain.Category {
	out := make([]domain.Category, 0, len(cats))
	for _, c := range cats {
		out = append(out, domain.Category{
			Name:  c.Name,
			Desc:  c.Desc,
			Icon:  c.Icon,
			Style: c.Style,
		})
	}
	return out
}

// ensureScheme prefixes scheme-less friend URLs with https://.
// The outline format lets collaborators write bare hostnames.
func ensureScheme(url string) string {
	if url == "" {
		return url
	}
	if strings.Contains(url, "://") {
		return url
	}
	return "https://" + url
}
