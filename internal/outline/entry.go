package outline

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// Entry is a leaf list item. Fields holds the parenthesized groups in
// source order; their meaning depends on the collection (icon+description,
// URL, or read-time+cover+tags). Category is the name of the immediate
// enclosing category only, not the full ancestor chain.
type Entry struct {
	Name     string
	Fields   []string
	Category string
}

var (
	entryExprMu sync.Mutex
	entryExprs  = map[int]*regexp.Regexp{}
)

// entryExpr returns the anchored pattern for an entry line with exactly
// arity parenthesized fields: [Name](f1)(f2)...(fN).
func entryExpr(arity int) *regexp.Regexp {
	entryExprMu.Lock()
	defer entryExprMu.Unlock()

	if re, ok := entryExprs[arity]; ok {
		return re
	}

	var b strings.Builder
	b.WriteString(`^\[([^\]]*)\]`)
	for i := 0; i < arity; i++ {
		b.WriteString(`\(([^)]*)\)`)
	}
	b.WriteString(`$`)

	re := regexp.MustCompile(b.String())
	entryExprs[arity] = re
	return re
}

// ExtractEntry matches content against the fixed-arity entry pattern.
// It returns nil when the line is not a full-arity entry; such lines are
// category lines by definition. Partial matches do not count: a line that
// opens a bracket but misses a field falls through to category handling.
func ExtractEntry(content string, arity int) *Entry {
	if arity < 1 {
		panic(fmt.Sprintf("outline: entry arity must be >= 1, got %d", arity))
	}

	m := entryExpr(arity).FindStringSubmatch(content)
	if m == nil {
		return nil
	}

	fields := make([]string, arity)
	for i := 0; i < arity; i++ {
		fields[i] = strings.TrimSpace(m[i+2])
	}

	return &Entry{
		Name:   strings.TrimSpace(m[1]),
		Fields: fields,
	}
}
