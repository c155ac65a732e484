package templates

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteGeneratedFile writes content to relativePath under dir, replacing any
// existing file of that name.
//
// The function ensures:
//   - The output path is relative to dir (no path traversal)
//   - Parent directories are created if needed
//   - Existing files are truncated and overwritten
//
// It returns the full path of the written file.
func WriteGeneratedFile(dir, relativePath, content string) (string, error) {
	if dir == "" {
		return "", errors.New("output directory is required")
	}
	if relativePath == "" {
		return "", errors.New("output path is required")
	}

	cleanRel := filepath.Clean(relativePath)
	if filepath.IsAbs(cleanRel) || cleanRel == ".." || strings.HasPrefix(cleanRel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("output path must be relative to %s", dir)
	}

	fullPath := filepath.Join(dir, cleanRel)
	rel, err := filepath.Rel(dir, fullPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("output path escapes %s", dir)
	}

	if err = os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	// #nosec G306 -- generated pages are site content and must stay world-readable.
	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write output file: %w", err)
	}

	return fullPath, nil
}
