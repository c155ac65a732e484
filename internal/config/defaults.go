package config

// Default values applied when the configuration leaves a field empty.
const (
	DefaultDocsDir    = "docs"
	DefaultSiteDir    = "site"
	DefaultTagsFolder = "tags"
	DefaultEncoding   = "cp1252"
)

// applyDefaults sets the directory defaults. Tag options are defaulted when
// build settings are resolved so that hand-built configs get them too.
func applyDefaults(cfg *Config) {
	if cfg.DocsDir == "" {
		cfg.DocsDir = DefaultDocsDir
	}
	if cfg.SiteDir == "" {
		cfg.SiteDir = DefaultSiteDir
	}
}
