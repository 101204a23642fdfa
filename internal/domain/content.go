package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Kind identifies one of the site's content collections.
type Kind string

const (
	KindTrophies Kind = "trophies"
	KindACG      Kind = "acg"
	KindFriends  Kind = "friends"
	KindArticles Kind = "articles"
)

// Category is a top-level grouping node of a collection, ready for
// rendering: name, optional description, deterministic icon and the
// rotating style slot.
type Category struct {
	Name  string `json:"name"`
	Desc  string `json:"desc,omitempty"`
	Icon  string `json:"icon,omitempty"`
	Style int    `json:"style"`
}

// Entry is one leaf item of a collection. Which optional fields are set
// depends on the collection kind: trophies and ACG items carry Icon and
// Desc, friend links carry URL, articles carry ReadTime, Cover and Tags.
//
// Category is the immediate enclosing category name only; the full
// ancestor chain is not retained.
type Entry struct {
	// ID is the canonical identifier, derived from kind and name.
	// Stable across reloads so view counters survive.
	ID string `json:"id"`

	Name     string `json:"name"`
	Category string `json:"category"`

	Icon string `json:"icon,omitempty"`
	Desc string `json:"desc,omitempty"`

	URL string `json:"url,omitempty"`

	ReadTime string   `json:"readTime,omitempty"`
	Cover    string   `json:"cover,omitempty"`
	Tags     []string `json:"tags,omitempty"`

	// Views counts how often the entry was opened. Learned at runtime,
	// never sourced from content files.
	Views int64 `json:"views,omitempty"`
}

// Outline is the parsed form of one collection: its depth-0 categories in
// source order plus all entries. Replaced wholesale on every reload.
type Outline struct {
	Kind       Kind       `json:"kind"`
	Categories []Category `json:"categories"`
	Entries    []Entry    `json:"entries"`
	LoadedAt   time.Time  `json:"loadedAt"`
}

// RenderedArticle is one article body rendered to HTML, cached until the
// article list reloads or the source disappears.
type RenderedArticle struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	HTML       string    `json:"html"`
	ReadTime   string    `json:"readTime,omitempty"`
	Cover      string    `json:"cover,omitempty"`
	Tags       []string  `json:"tags,omitempty"`
	Category   string    `json:"category"`
	RenderedAt time.Time `json:"renderedAt"`
}

// EntryID derives the stable identifier for an entry. A hash of
// kind+name keeps IDs short and safe to embed in cache keys regardless
// of what characters the display name uses.
func EntryID(kind Kind, name string) string {
	sum := sha256.Sum256([]byte(string(kind) + ":" + name))
	return hex.EncodeToString(sum[:])[:16]
}
