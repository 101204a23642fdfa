package content

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/hollowdust/pavilion/internal/domain"
)

// Manifest describes the site's content layout: which collections exist,
// which outline file feeds each one, and where article bodies live.
// Paths are relative to the content root directory.
type Manifest struct {
	Title       string            `yaml:"title"`
	Collections map[string]string `yaml:"collections"` // kind -> outline file
	ArticlesDir string            `yaml:"articles_dir"`

	root string
}

// knownKinds are the collection kinds the server understands.
var knownKinds = map[domain.Kind]bool{
	domain.KindTrophies: true,
	domain.KindACG:      true,
	domain.KindFriends:  true,
	domain.KindArticles: true,
}

// LoadManifest reads and validates the site manifest from
// <root>/<file>.
func LoadManifest(root, file string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(root, file))
	if err != nil {
		return nil, fmt.Errorf("failed to read site manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse site manifest: %w", err)
	}

	if len(m.Collections) == 0 {
		return nil, fmt.Errorf("site manifest declares no collections")
	}
	for kind := range m.Collections {
		if !knownKinds[domain.Kind(kind)] {
			return nil, fmt.Errorf("unknown collection kind %q in site manifest", kind)
		}
	}
	if _, ok := m.Collections[string(domain.KindArticles)]; ok && m.ArticlesDir == "" {
		return nil, fmt.Errorf("site manifest declares articles but no articles_dir")
	}

	m.root = root
	return &m, nil
}

// Kinds returns the declared collection kinds.
func (m *Manifest) Kinds() []domain.Kind {
	kinds := make([]domain.Kind, 0, len(m.Collections))
	for k := range m.Collections {
		kinds = append(kinds, domain.Kind(k))
	}
	return kinds
}

// OutlinePath returns the absolute path of a collection's outline file.
func (m *Manifest) OutlinePath(kind domain.Kind) string {
	return filepath.Join(m.root, m.Collections[string(kind)])
}

// ArticlePath returns the absolute path of an article body by title.
// Article bodies are stored as <articles_dir>/<title>.md, matching the
// titles used in the article index.
func (m *Manifest) ArticlePath(title string) string {
	return filepath.Join(m.root, m.ArticlesDir, title+".md")
}
