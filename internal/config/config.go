package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/doctags/internal/foundation/errors"
)

// Config represents the site configuration consumed by doctags.
type Config struct {
	DocsDir          string     `yaml:"docs_dir"`
	SiteDir          string     `yaml:"site_dir"`
	UseDirectoryURLs *bool      `yaml:"use_directory_urls,omitempty"`
	Tags             TagsConfig `yaml:"tags"`

	// Flat keys accepted for configurations written against the original plugin.
	LegacyFolder   string   `yaml:"tags_folder,omitempty"`
	LegacyTemplate string   `yaml:"tags_template,omitempty"`
	LegacyEncoding string   `yaml:"tags_encoding,omitempty"`
	LegacyNames    []string `yaml:"tags_names,omitempty"`

	// Directory of the loaded file; relative paths are resolved against it.
	baseDir string
}

// TagsConfig holds the tag page generation options.
type TagsConfig struct {
	Folder   string   `yaml:"folder,omitempty"`   // Output folder for generated pages
	Template string   `yaml:"template,omitempty"` // Custom template file
	Encoding string   `yaml:"encoding,omitempty"` // Codec used to read documents
	Names    []string `yaml:"names,omitempty"`    // Tag categories, one page each
}

// Default returns a configuration with defaults applied and no tag categories.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load loads configuration from the specified file.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigError("configuration file not found").
				WithContext("path", configPath).Build()
		}
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			WithContext("path", configPath).Build()
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").
			WithContext("path", configPath).Build()
	}

	if abs, err := filepath.Abs(filepath.Dir(configPath)); err == nil {
		cfg.baseDir = abs
	}
	cfg.mergeLegacy()
	applyDefaults(&cfg)
	cfg.resolvePaths()

	if err := cfg.Validate(); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "invalid configuration").
			WithContext("path", configPath).Build()
	}
	return &cfg, nil
}

// BaseDir returns the directory relative paths are resolved against.
func (c *Config) BaseDir() string { return c.baseDir }

// DirectoryURLs reports whether pages are built as directories.
func (c *Config) DirectoryURLs() bool {
	return c.UseDirectoryURLs == nil || *c.UseDirectoryURLs
}

// mergeLegacy fills empty tags options from the flat tags_* keys.
func (c *Config) mergeLegacy() {
	if c.Tags.Folder == "" {
		c.Tags.Folder = c.LegacyFolder
	}
	if c.Tags.Template == "" {
		c.Tags.Template = c.LegacyTemplate
	}
	if c.Tags.Encoding == "" {
		c.Tags.Encoding = c.LegacyEncoding
	}
	if len(c.Tags.Names) == 0 {
		c.Tags.Names = c.LegacyNames
	}
}

func (c *Config) resolvePaths() {
	if c.baseDir == "" {
		return
	}
	c.DocsDir = c.resolve(c.DocsDir)
	c.SiteDir = c.resolve(c.SiteDir)
	if c.Tags.Template != "" {
		c.Tags.Template = c.resolve(c.Tags.Template)
	}
}

func (c *Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.baseDir, p)
}

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).Build()
	}

	example := Config{
		DocsDir: DefaultDocsDir,
		SiteDir: DefaultSiteDir,
		Tags: TagsConfig{
			Folder:   DefaultTagsFolder,
			Encoding: DefaultEncoding,
			Names:    []string{"tags", "authors"},
		},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal example config").Build()
	}

	header := "# doctags configuration\n# Documents list their tags in YAML front matter, e.g.\n#   ---\n#   title: Release notes\n#   year: 2023\n#   tags: [release, changelog]\n#   ---\n"
	if err := os.WriteFile(configPath, append([]byte(header), data...), 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryWrite, "failed to write config file").
			WithContext("path", configPath).Build()
	}

	fmt.Fprintf(os.Stderr, "Configuration file created at %s\n", configPath)
	return nil
}
