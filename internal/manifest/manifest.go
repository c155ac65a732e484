// Package manifest records the pages a build generated.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/doctags/internal/docs"
	"git.home.luguber.info/inful/doctags/internal/frontmatter"
)

// BuildManifest is the record of one build's outputs.
type BuildManifest struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Status     string    `json:"status"`
	Duration   int64     `json:"duration_ms"`
	Categories []string  `json:"categories"`
	Documents  int       `json:"documents"`
	Pages      []Page    `json:"pages"`
}

// Page describes one generated tag page.
type Page struct {
	Category         string   `json:"category"`
	SrcPath          string   `json:"src_path"`
	SrcDir           string   `json:"src_dir"`
	DestDir          string   `json:"dest_dir"`
	UseDirectoryURLs bool     `json:"use_directory_urls"`
	Fingerprint      string   `json:"fingerprint"`
	Links            int      `json:"links"`
	Unresolved       []string `json:"unresolved,omitempty"`
}

// New returns an empty manifest for a build.
func New(id string, started time.Time) *BuildManifest {
	return &BuildManifest{ID: id, Timestamp: started.UTC(), Categories: []string{}, Pages: []Page{}}
}

// NewPage describes a generated page and fingerprints its content.
func NewPage(category string, f docs.File, content string) Page {
	return Page{
		Category:         category,
		SrcPath:          f.SrcPath,
		SrcDir:           f.SrcDir,
		DestDir:          f.DestDir,
		UseDirectoryURLs: f.UseDirectoryURLs,
		Fingerprint:      Fingerprint(content),
	}
}

// AddPage records a generated page.
func (m *BuildManifest) AddPage(p Page) {
	m.Categories = append(m.Categories, p.Category)
	m.Pages = append(m.Pages, p)
}

// Finish stamps status and duration.
func (m *BuildManifest) Finish(status string, d time.Duration) {
	m.Status = status
	m.Duration = d.Milliseconds()
}

// Fingerprint returns the mdfp fingerprint of a markdown page, hashing the
// front matter and body separately.
func Fingerprint(content string) string {
	raw, body, ok := frontmatter.Split(content)
	if !ok {
		return mdfp.CalculateFingerprintFromParts("", body)
	}
	return mdfp.CalculateFingerprintFromParts(strings.TrimSuffix(raw, "\n"), body)
}

// ToJSON serializes the manifest to JSON.
func (m *BuildManifest) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return data, nil
}

// FromJSON deserializes a manifest from JSON.
func FromJSON(data []byte) (*BuildManifest, error) {
	var m BuildManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	return &m, nil
}

// WriteFile writes the manifest as indented JSON.
func (m *BuildManifest) WriteFile(path string) error {
	data, err := m.ToJSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write manifest %s: %w", path, err)
	}
	return nil
}
