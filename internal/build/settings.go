package build

import (
	"os"
	"path/filepath"
	"slices"

	"git.home.luguber.info/inful/doctags/internal/config"
	"git.home.luguber.info/inful/doctags/internal/foundation/errors"
	"git.home.luguber.info/inful/doctags/internal/textenc"
)

// Default tag options.
const (
	DefaultFolder   = config.DefaultTagsFolder
	DefaultEncoding = textenc.Default
)

// Settings is the resolved, immutable configuration of a build.
type Settings struct {
	DocsDir          string
	SiteDir          string
	Folder           string   // Output folder for generated pages
	Template         string   // Custom template path, empty for the bundled one
	Encoding         string   // Codec used to read documents
	Names            []string // Tag categories in generation order
	UseDirectoryURLs bool
}

// Resolve applies tag defaults to cfg, resolves a relative output folder
// against the parent of the docs directory and creates it.
func Resolve(cfg *config.Config) (Settings, error) {
	if cfg == nil {
		return Settings{}, errors.ConfigError("config required").Build()
	}

	s := Settings{
		DocsDir:          cfg.DocsDir,
		SiteDir:          cfg.SiteDir,
		Folder:           cfg.Tags.Folder,
		Template:         cfg.Tags.Template,
		Encoding:         cfg.Tags.Encoding,
		Names:            slices.Clone(cfg.Tags.Names),
		UseDirectoryURLs: cfg.DirectoryURLs(),
	}
	if s.Folder == "" {
		s.Folder = DefaultFolder
	}
	if s.Encoding == "" {
		s.Encoding = DefaultEncoding
	}
	if !filepath.IsAbs(s.Folder) {
		s.Folder = filepath.Join(s.DocsDir, "..", s.Folder)
	}

	if _, err := textenc.Lookup(s.Encoding); err != nil {
		return Settings{}, errors.WrapError(err, errors.CategoryConfig, "unsupported encoding").
			WithContext("encoding", s.Encoding).Build()
	}
	if err := os.MkdirAll(s.Folder, 0o750); err != nil {
		return Settings{}, errors.WrapError(err, errors.CategoryConfig, "cannot create tags folder").
			WithContext("path", s.Folder).Build()
	}
	return s, nil
}
