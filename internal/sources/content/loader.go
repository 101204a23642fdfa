package content

import (
	"fmt"
	"os"
	"strings"
)

// Loader reads one collection's outline file.
type Loader struct {
	filePath string
}

// NewLoader creates a loader for the given outline file.
func NewLoader(filePath string) *Loader {
	return &Loader{filePath: filePath}
}

// Load reads the outline file and normalizes it for parsing: the UTF-8
// BOM is stripped and CRLF line endings become LF. Content files are
// edited by hand on whatever OS the operator uses.
func (l *Loader) Load() (string, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read outline file: %w", err)
	}

	text := string(data)
	text = strings.TrimPrefix(text, "\uFEFF")
	text = strings.ReplaceAll(text, "\r\n", "\n")

	return text, nil
}
