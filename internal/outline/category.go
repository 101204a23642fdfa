package outline

import (
	"hash/fnv"
	"strings"
)

// categoryIcons is the fixed icon pool a category name hashes into.
var categoryIcons = []string{"🏆", "📚", "🎮", "🎵", "🌟", "🔗", "💡", "📦"}

// StyleCount is the number of visual styles categories rotate through.
const StyleCount = 4

// SplitCategory resolves a category line into (name, description).
//
// The split happens at the earliest `|` or full-width `｜`, whichever
// occurs first in the line, else at the first `:`, else the whole content
// is the name. Both sides are trimmed. There is no escaping: a literal
// `|` or `:` in a category name always triggers a split, which is an
// authoring constraint of the format.
func SplitCategory(content string) (name, desc string) {
	at, width := strings.Index(content, "|"), 1
	if j := strings.Index(content, "｜"); j >= 0 && (at < 0 || j < at) {
		at, width = j, len("｜")
	}
	if at < 0 {
		at, width = strings.Index(content, ":"), 1
	}
	if at < 0 {
		return strings.TrimSpace(content), ""
	}
	return strings.TrimSpace(content[:at]), strings.TrimSpace(content[at+width:])
}

// CategoryIcon picks a deterministic icon for a category name.
// The same name always maps to the same icon.
func CategoryIcon(name string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return categoryIcons[h.Sum32()%uint32(len(categoryIcons))]
}

// CategoryStyle returns the rotating style index for the i-th top-level
// category.
func CategoryStyle(i int) int {
	return i % StyleCount
}
