package domain

import (
	"strings"
	"unicode"
)

// Query represents parsed search input.
type Query struct {
	Raw       string   // Original input
	Fragments []string // Space-separated text fragments
	Tags      []string // Fragments prefixed with # (exact tag filters)
}

// ParseQuery parses user input into a structured query.
// Examples:
//   - "zelda botw" -> fragments ["zelda", "botw"]
//   - "#go tooling" -> tag filter ["go"] + fragments ["tooling"]
func ParseQuery(input string) *Query {
	input = strings.TrimSpace(strings.ToLower(input))
	q := &Query{Raw: input}
	if input == "" {
		return q
	}

	for _, part := range strings.Fields(input) {
		if strings.HasPrefix(part, "#") {
			if tag := strings.TrimPrefix(part, "#"); tag != "" {
				q.Tags = append(q.Tags, tag)
			}
			continue
		}
		q.Fragments = append(q.Fragments, part)
	}

	return q
}

// IsEmpty reports whether the query carries nothing to match on.
func (q *Query) IsEmpty() bool {
	return len(q.Fragments) == 0 && len(q.Tags) == 0
}

// NameFragments splits an entry name into lowercase words for matching.
// CJK names typically have no word boundaries, so the whole name is
// always included as one fragment as well.
func NameFragments(name string) []string {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return nil
	}

	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	out := make([]string, 0, len(words)+1)
	out = append(out, lower)
	for _, w := range words {
		if w != lower {
			out = append(out, w)
		}
	}
	return out
}
