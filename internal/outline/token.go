package outline

import (
	"regexp"
	"strings"
)

// listLine matches an outline list line: optional leading whitespace,
// a dash, at least one space, then the content.
var listLine = regexp.MustCompile(`^([ \t]*)-\s+(.*)$`)

// Token is one tokenized source line: its nesting depth and its content
// with the leading dash and whitespace stripped.
type Token struct {
	Depth   int
	Content string
}

// Tokenize converts a raw line into a Token.
//
// Depth counts each tab in the leading whitespace as one level and every
// two spaces as one level. Tabs and spaces sum linearly with no
// normalization between the two, so files that mix whitespace styles can
// misindent. Content files are expected to stick to one style.
//
// A line without a leading dash is treated as depth 0 and its content is
// the trimmed line as-is.
func Tokenize(line string) Token {
	m := listLine.FindStringSubmatch(line)
	if m == nil {
		return Token{Depth: 0, Content: strings.TrimSpace(line)}
	}

	return Token{
		Depth:   indentDepth(m[1]),
		Content: strings.TrimSpace(m[2]),
	}
}

// indentDepth computes the nesting level of a leading-whitespace run.
func indentDepth(ws string) int {
	tabs := strings.Count(ws, "\t")
	spaces := strings.Count(ws, " ")
	return tabs + spaces/2
}
