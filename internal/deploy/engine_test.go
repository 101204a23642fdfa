package deploy

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

func TestEngineRunMergesOverlay(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "md")
	mod := filepath.Join(root, "md_mod")
	out := filepath.Join(root, "articles")

	writeFile(t, filepath.Join(src, "first.md"), "converted first")
	writeFile(t, filepath.Join(src, "second.md"), "converted second")
	writeFile(t, filepath.Join(mod, "second.md"), "hand edited second")
	writeFile(t, filepath.Join(mod, "third.md"), "overlay only")
	writeFile(t, filepath.Join(src, "images", "covers", "a.png"), "png")

	engine := NewEngine(Options{
		SourceDir:  src,
		OverlayDir: mod,
		OutputDir:  out,
		SkipDocs:   true,
		Quiet:      true,
	})

	m, err := engine.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got := readFile(t, filepath.Join(out, "first.md")); got != "converted first" {
		t.Errorf("first.md = %q", got)
	}
	if got := readFile(t, filepath.Join(out, "second.md")); got != "hand edited second" {
		t.Errorf("overlay should win: second.md = %q", got)
	}
	if got := readFile(t, filepath.Join(out, "third.md")); got != "overlay only" {
		t.Errorf("third.md = %q", got)
	}
	if got := readFile(t, filepath.Join(out, "images", "covers", "a.png")); got != "png" {
		t.Errorf("image tree not copied: %q", got)
	}

	if m.MarkdownCopied != 3 {
		t.Errorf("MarkdownCopied = %d, want 3", m.MarkdownCopied)
	}
	if m.MarkdownOverwritten != 1 {
		t.Errorf("MarkdownOverwritten = %d, want 1", m.MarkdownOverwritten)
	}
	if m.ImagesCopied != 1 {
		t.Errorf("ImagesCopied = %d, want 1", m.ImagesCopied)
	}
	if m.RunID == "" {
		t.Error("manifest should carry a run id")
	}

	if _, err := os.Stat(filepath.Join(out, ManifestName)); err != nil {
		t.Errorf("deploy manifest not written: %v", err)
	}
}

func TestEngineRunCleanWipesOutput(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "md")
	out := filepath.Join(root, "articles")

	writeFile(t, filepath.Join(src, "keep.md"), "keep")
	writeFile(t, filepath.Join(out, "stale.md"), "stale")

	engine := NewEngine(Options{
		SourceDir: src,
		OutputDir: out,
		Clean:     true,
		SkipDocs:  true,
		Quiet:     true,
	})

	if _, err := engine.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(out, "stale.md")); !os.IsNotExist(err) {
		t.Error("stale file should be removed by clean deploy")
	}
	if got := readFile(t, filepath.Join(out, "keep.md")); got != "keep" {
		t.Errorf("keep.md = %q", got)
	}
}

func TestEngineRunExcludes(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "md")
	out := filepath.Join(root, "articles")

	writeFile(t, filepath.Join(src, "public.md"), "public")
	writeFile(t, filepath.Join(src, "draft-notes.md"), "draft")

	engine := NewEngine(Options{
		SourceDir: src,
		OutputDir: out,
		SkipDocs:  true,
		Quiet:     true,
		Excludes:  []string{"draft-*.md"},
	})

	m, err := engine.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(out, "draft-notes.md")); !os.IsNotExist(err) {
		t.Error("excluded file should not be deployed")
	}
	if m.MarkdownCopied != 1 {
		t.Errorf("MarkdownCopied = %d, want 1", m.MarkdownCopied)
	}
}

func TestEngineSyncDocs(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "md")
	out := filepath.Join(root, "articles")
	docsSrc := filepath.Join(root, "docs")
	docsDest := filepath.Join(root, "assets", "docs")

	writeFile(t, filepath.Join(src, "a.md"), "a")
	writeFile(t, filepath.Join(docsSrc, "guide", "setup.md"), "setup")
	writeFile(t, filepath.Join(docsDest, "old.md"), "old")

	engine := NewEngine(Options{
		SourceDir: src,
		OutputDir: out,
		DocsSrc:   docsSrc,
		DocsDest:  docsDest,
		Quiet:     true,
	})

	m, err := engine.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got := readFile(t, filepath.Join(docsDest, "guide", "setup.md")); got != "setup" {
		t.Errorf("docs not synced: %q", got)
	}
	if m.DocsCopied != 1 {
		t.Errorf("DocsCopied = %d, want 1", m.DocsCopied)
	}
	// Files already in the destination are left alone, docs sync is additive.
	if got := readFile(t, filepath.Join(docsDest, "old.md")); got != "old" {
		t.Errorf("old.md = %q", got)
	}
}
