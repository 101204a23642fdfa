// Package markdown renders article bodies to HTML and extracts the bits
// of article metadata that live in the body rather than the article
// index (cover image, plain-text excerpt).
package markdown

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts Markdown article bodies to HTML.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer builds a renderer with GFM, syntax highlighting and auto
// heading IDs. Raw HTML is allowed: article sources are operator-authored,
// not user input.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle("github"),
				),
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
			),
		),
	}
}

// Render converts a Markdown document to HTML.
func (r *Renderer) Render(source []byte) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(source, &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return buf.String(), nil
}

// mdImage matches a Markdown image: ![alt](url ...).
var mdImage = regexp.MustCompile(`!\[[^\]]*\]\(\s*(\S+?)(?:\s+"[^"]*")?\s*\)`)

// htmlImage matches an inline HTML <img src="...">.
var htmlImage = regexp.MustCompile(`<img[^>]+src=["']([^"']+)["']`)

// FirstImage returns the URL of the first image in a Markdown document,
// or "" when the document has none. Used to derive an article cover when
// the article index leaves the cover field empty.
func FirstImage(source []byte) string {
	if m := mdImage.FindSubmatch(source); m != nil {
		return string(m[1])
	}
	if m := htmlImage.FindSubmatch(source); m != nil {
		return string(m[1])
	}
	return ""
}

// Excerpt returns the first maxRunes runes of the document's prose with
// Markdown syntax roughly stripped. Good enough for list previews.
func Excerpt(source []byte, maxRunes int) string {
	text := string(source)

	text = mdImage.ReplaceAllString(text, "")
	// Keep link text, drop the target.
	text = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`).ReplaceAllString(text, "$1")
	text = regexp.MustCompile("(?s)```.*?```").ReplaceAllString(text, "")
	text = regexp.MustCompile(`(?m)^#{1,6}\s*`).ReplaceAllString(text, "")
	text = regexp.MustCompile("[`*_>~]").ReplaceAllString(text, "")

	fields := strings.Fields(text)
	text = strings.Join(fields, " ")

	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	return string(runes[:maxRunes]) + "…"
}
