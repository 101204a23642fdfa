package deploy

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// ManifestName is the file written into the output directory after every run.
const ManifestName = "deploy-manifest.json"

// Manifest records what one deploy run did. The server never reads it;
// it exists so a broken deploy can be diagnosed after the fact.
type Manifest struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	MarkdownCopied      int `json:"markdown_copied"`
	MarkdownOverwritten int `json:"markdown_overwritten"`
	ImagesCopied        int `json:"images_copied"`
	DocsCopied          int `json:"docs_copied"`
	DocsUpdated         int `json:"docs_updated"`
}

func newManifest(now time.Time) *Manifest {
	return &Manifest{
		RunID:     uuid.NewString(),
		StartedAt: now,
	}
}

func (m *Manifest) write(outputDir string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outputDir, ManifestName), data, 0o644)
}
