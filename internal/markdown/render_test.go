package markdown

import (
	"strings"
	"testing"
)

func TestRendererRender(t *testing.T) {
	r := NewRenderer()

	html, err := r.Render([]byte("# Title\n\nSome **bold** text."))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !strings.Contains(html, "<h1") {
		t.Errorf("rendered HTML missing heading: %q", html)
	}
	if !strings.Contains(html, "<strong>bold</strong>") {
		t.Errorf("rendered HTML missing bold text: %q", html)
	}
}

func TestRendererRenderGFMTable(t *testing.T) {
	r := NewRenderer()

	html, err := r.Render([]byte("| a | b |\n|---|---|\n| 1 | 2 |"))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(html, "<table>") {
		t.Errorf("GFM table not rendered: %q", html)
	}
}

func TestFirstImage(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "markdown image",
			source: "intro\n\n![cover](images/cover.png)\n\nmore",
			want:   "images/cover.png",
		},
		{
			name:   "markdown image with title",
			source: `![alt](https://cdn.example.com/a.jpg "title")`,
			want:   "https://cdn.example.com/a.jpg",
		},
		{
			name:   "html image",
			source: `<img src="pic.webp" alt="">`,
			want:   "pic.webp",
		},
		{
			name:   "first of several",
			source: "![a](one.png)\n![b](two.png)",
			want:   "one.png",
		},
		{
			name:   "no image",
			source: "just text",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FirstImage([]byte(tt.source)); got != tt.want {
				t.Errorf("FirstImage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExcerpt(t *testing.T) {
	source := "# Heading\n\nSome *styled* text with a [link](https://x) and\n\n```go\ncode block\n```\n\nmore prose."

	got := Excerpt([]byte(source), 200)

	if strings.Contains(got, "#") || strings.Contains(got, "*") || strings.Contains(got, "```") {
		t.Errorf("Excerpt kept markdown syntax: %q", got)
	}
	if !strings.Contains(got, "link") {
		t.Errorf("Excerpt dropped link text: %q", got)
	}
	if strings.Contains(got, "code block") {
		t.Errorf("Excerpt kept code block: %q", got)
	}
}

func TestExcerptTruncates(t *testing.T) {
	long := strings.Repeat("字", 300)
	got := Excerpt([]byte(long), 50)

	if len([]rune(got)) != 51 { // 50 runes + ellipsis
		t.Errorf("Excerpt length = %v runes, want 51", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("Excerpt missing ellipsis: %q", got)
	}
}
