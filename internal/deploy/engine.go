package deploy

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/schollz/progressbar/v3"

	"github.com/hollowdust/pavilion/internal/utils"
)

// Options configures one deploy run. SourceDir holds the converted
// markdown, OverlayDir hand-edited copies that win over the converted
// ones, and OutputDir is the articles directory the server reads.
type Options struct {
	SourceDir  string
	OverlayDir string
	OutputDir  string

	DocsSrc  string
	DocsDest string

	Clean    bool     // wipe OutputDir before deploying
	SkipDocs bool     // don't sync the docs tree
	OnlyDocs bool     // only sync the docs tree
	Quiet    bool     // no progress bar
	Excludes []string // doublestar patterns skipped everywhere
}

type Engine struct {
	opts Options
}

func NewEngine(opts Options) *Engine {
	return &Engine{opts: opts}
}

// Run executes the deploy and writes a manifest into the output
// directory describing what happened.
func (e *Engine) Run() (*Manifest, error) {
	m := newManifest(time.Now())

	if !e.opts.OnlyDocs {
		if err := e.deployArticles(m); err != nil {
			return nil, err
		}
	}

	if !e.opts.SkipDocs {
		if err := e.syncDocs(m); err != nil {
			return nil, err
		}
	}

	m.FinishedAt = time.Now()
	if err := m.write(e.opts.OutputDir); err != nil {
		return nil, fmt.Errorf("failed to write deploy manifest: %w", err)
	}
	return m, nil
}

func (e *Engine) deployArticles(m *Manifest) error {
	info, err := os.Stat(e.opts.SourceDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("source directory does not exist: %s", e.opts.SourceDir)
	}

	if e.opts.Clean {
		if err := os.RemoveAll(e.opts.OutputDir); err != nil {
			return fmt.Errorf("failed to clean output directory: %w", err)
		}
	}
	if err := os.MkdirAll(e.opts.OutputDir, 0o755); err != nil {
		return err
	}

	// Converted markdown first, then the overlay wins on name clashes.
	sources, err := filepath.Glob(filepath.Join(e.opts.SourceDir, "*.md"))
	if err != nil {
		return err
	}
	var overlays []string
	if e.opts.OverlayDir != "" {
		overlays, _ = filepath.Glob(filepath.Join(e.opts.OverlayDir, "*.md"))
	}

	bar := e.newBar(len(sources)+len(overlays), "Deploying articles")

	for _, src := range sources {
		if e.excluded(filepath.Base(src)) {
			_ = bar.Add(1)
			continue
		}
		if err := copyFile(src, filepath.Join(e.opts.OutputDir, filepath.Base(src))); err != nil {
			return err
		}
		m.MarkdownCopied++
		_ = bar.Add(1)
	}

	for _, src := range overlays {
		if e.excluded(filepath.Base(src)) {
			_ = bar.Add(1)
			continue
		}
		dest := filepath.Join(e.opts.OutputDir, filepath.Base(src))
		if _, err := os.Stat(dest); err == nil {
			m.MarkdownOverwritten++
		} else {
			m.MarkdownCopied++
		}
		if err := copyFile(src, dest); err != nil {
			return err
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	// Image tree is replaced wholesale, stale images must not linger.
	imagesSrc := filepath.Join(e.opts.SourceDir, "images")
	if info, err := os.Stat(imagesSrc); err == nil && info.IsDir() {
		imagesDest := filepath.Join(e.opts.OutputDir, "images")
		if err := os.RemoveAll(imagesDest); err != nil {
			return err
		}
		copied, err := e.copyTree(imagesSrc, imagesDest, nil)
		if err != nil {
			return err
		}
		m.ImagesCopied = copied
	}

	return nil
}

// syncDocs mirrors the docs tree into the assets dir, copying only new
// files and files whose source is newer than the deployed copy.
func (e *Engine) syncDocs(m *Manifest) error {
	info, err := os.Stat(e.opts.DocsSrc)
	if err != nil || !info.IsDir() {
		// Docs are optional, a missing tree is not a failed deploy.
		return nil
	}

	return filepath.WalkDir(e.opts.DocsSrc, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		rel, err := filepath.Rel(e.opts.DocsSrc, path)
		if err != nil {
			return err
		}
		if e.excluded(rel) {
			return nil
		}

		dest := filepath.Join(e.opts.DocsDest, rel)
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return err
		}

		destInfo, err := os.Stat(dest)
		if err == nil {
			srcInfo, err := d.Info()
			if err != nil {
				return err
			}
			if !srcInfo.ModTime().After(destInfo.ModTime()) {
				return nil
			}
			if err := copyFile(path, dest); err != nil {
				return err
			}
			m.DocsUpdated++
			return nil
		}

		if err := copyFile(path, dest); err != nil {
			return err
		}
		m.DocsCopied++
		return nil
	})
}

// copyTree copies src into dest recursively, returning how many files
// were written.
func (e *Engine) copyTree(src, dest string, bar *progressbar.ProgressBar) (int, error) {
	copied := 0
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if d.IsDir() {
			return os.MkdirAll(filepath.Join(dest, rel), 0o755)
		}
		if e.excluded(rel) {
			return nil
		}
		if err := copyFile(path, filepath.Join(dest, rel)); err != nil {
			return err
		}
		copied++
		if bar != nil {
			_ = bar.Add(1)
		}
		return nil
	})
	return copied, err
}

func (e *Engine) excluded(relPath string) bool {
	normalized := filepath.ToSlash(relPath)
	for _, pattern := range e.opts.Excludes {
		pattern = filepath.ToSlash(strings.TrimSpace(pattern))
		if pattern == "" {
			continue
		}
		if matched, err := doublestar.PathMatch(pattern, normalized); err == nil && matched {
			return true
		}
		if matched, err := doublestar.PathMatch(pattern, filepath.Base(normalized)); err == nil && matched {
			return true
		}
	}
	return false
}

func (e *Engine) newBar(total int, desc string) *progressbar.ProgressBar {
	if e.opts.Quiet {
		return progressbar.DefaultSilent(int64(total))
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(desc),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer utils.Close(in)

	out, err := os.Create(dest)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		utils.Close(out)
		return err
	}
	return out.Close()
}
