// Package outline parses the indented, dash-prefixed list format used by
// the site's content files (trophies, ACG zone, friend links, article
// index). One line is one entry or one category; indentation forms an
// implicit category tree via a stack, and entries attach to their nearest
// enclosing category.
//
// The parse is total: no input fails. Every line that is not a full-arity
// entry is a category, even garbage. Lines that look suspicious are
// reported as Diagnostics so callers can log them, but parsing itself
// never stops.
package outline

import "strings"

// Uncategorized is the sentinel bucket for entries that appear before any
// category line.
const Uncategorized = "uncategorized"

// Category is a named grouping node. Only depth-0 categories appear in a
// Result; deeper ones affect entry attribution only.
type Category struct {
	Name  string
	Desc  string
	Icon  string
	Style int
}

// CategoryNode is a category line as encountered by the builder, at any
// depth. The depth-0 projection into []Category is a separate step, see
// TopLevel.
type CategoryNode struct {
	Depth int
	Name  string
	Desc  string
}

// Diagnostic flags a line that parsed but probably was not what the
// author meant: an empty-named category, or a bracketed line that missed
// the full entry arity.
type Diagnostic struct {
	Line int
	Text string
}

// Result is the outcome of one parse pass. It owns no shared state;
// parsing the same text twice yields structurally equal Results.
type Result struct {
	Categories  []Category
	Entries     []Entry
	Diagnostics []Diagnostic
}

// Parse runs the full pipeline: build the outline with the given entry
// arity, then project categories down to depth 0.
func Parse(text string, arity int) Result {
	nodes, entries, diags := Build(text, arity)
	return Result{
		Categories:  TopLevel(nodes),
		Entries:     entries,
		Diagnostics: diags,
	}
}

// Build walks the text line by line and returns every category node (at
// any depth, in source order), every entry, and any diagnostics.
//
// The stack invariant: depths are strictly increasing bottom-to-top. An
// incoming line pops every open category whose depth is >= its own, so a
// category at the same depth closes its sibling rather than nesting
// under it.
func Build(text string, arity int) ([]CategoryNode, []Entry, []Diagnostic) {
	var (
		nodes   []CategoryNode
		entries []Entry
		diags   []Diagnostic
		stack   []CategoryNode
	)

	for i, line := range strings.Split(text, "\n") {
		tok := Tokenize(line)
		if tok.Content == "" {
			continue
		}

		for len(stack) > 0 && stack[len(stack)-1].Depth >= tok.Depth {
			stack = stack[:len(stack)-1]
		}

		if e := ExtractEntry(tok.Content, arity); e != nil {
			e.Category = Uncategorized
			if len(stack) > 0 {
				e.Category = stack[len(stack)-1].Name
			}
			entries = append(entries, *e)
			continue
		}

		name, desc := SplitCategory(tok.Content)
		if name == "" || strings.HasPrefix(tok.Content, "[") {
			diags = append(diags, Diagnostic{Line: i + 1, Text: line})
		}

		node := CategoryNode{Depth: tok.Depth, Name: name, Desc: desc}
		nodes = append(nodes, node)
		stack = append(stack, node)
	}

	return nodes, entries, diags
}

// TopLevel projects category nodes down to the depth-0 map the renderers
// consume. Insertion order is preserved and the first occurrence of a
// name wins; later duplicates do not overwrite the description. Icons are
// deterministic per name and styles rotate by position.
func TopLevel(nodes []CategoryNode) []Category {
	var out []Category
	seen := make(map[string]bool, len(nodes))

	for _, n := range nodes {
		if n.Depth != 0 || seen[n.Name] {
			continue
		}
		seen[n.Name] = true
		out = append(out, Category{
			Name:  n.Name,
			Desc:  n.Desc,
			Icon:  CategoryIcon(n.Name),
			Style: CategoryStyle(len(out)),
		})
	}

	return out
}
