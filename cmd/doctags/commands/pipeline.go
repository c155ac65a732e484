package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/doctags/internal/build"
	"git.home.luguber.info/inful/doctags/internal/config"
	"git.home.luguber.info/inful/doctags/internal/docs"
	"git.home.luguber.info/inful/doctags/internal/foundation/errors"
	"git.home.luguber.info/inful/doctags/internal/logfields"
	"git.home.luguber.info/inful/doctags/internal/metrics"
)

// BuildFlags override configuration values for a build.
type BuildFlags struct {
	DocsDir     string   `name:"docs-dir" short:"d" help:"Documentation directory (overrides docs_dir)"`
	SiteDir     string   `name:"site-dir" help:"Site output directory (overrides site_dir)"`
	Folder      string   `name:"folder" help:"Folder tag pages are written to (overrides tags.folder)"`
	Template    string   `name:"template" help:"Custom tag page template (overrides tags.template)"`
	Encoding    string   `name:"encoding" help:"Encoding used to read documents (overrides tags.encoding)"`
	Names       []string `name:"name" short:"n" help:"Tag category to generate a page for; repeatable (overrides tags.names)"`
	Manifest    string   `name:"manifest" help:"Write a JSON manifest of generated pages to this path"`
	MetricsFile string   `name:"metrics-file" help:"Write build metrics in Prometheus textfile format to this path"`
}

// loadConfig loads the config file, falling back to defaults when the
// default file is absent, then applies flag overrides.
func loadConfig(configPath string, flags BuildFlags, logger *slog.Logger) (*config.Config, error) {
	var cfg *config.Config
	if _, err := os.Stat(configPath); os.IsNotExist(err) && configPath == DefaultConfigFile {
		logger.Debug("No configuration file; using defaults", logfields.Path(configPath))
		cfg = config.Default()
	} else {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if flags.DocsDir != "" {
		cfg.DocsDir = flags.DocsDir
	}
	if flags.SiteDir != "" {
		cfg.SiteDir = flags.SiteDir
	}
	if flags.Folder != "" {
		cfg.Tags.Folder = flags.Folder
	}
	if flags.Template != "" {
		cfg.Tags.Template = flags.Template
	}
	if flags.Encoding != "" {
		cfg.Tags.Encoding = flags.Encoding
	}
	if len(flags.Names) > 0 {
		cfg.Tags.Names = flags.Names
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "invalid configuration").Build()
	}
	return cfg, nil
}

// runBuild performs one full build: discover, scan, generate, report.
func runBuild(ctx context.Context, cfg *config.Config, flags BuildFlags, logger *slog.Logger, out io.Writer) (*build.Result, error) {
	settings, err := build.Resolve(cfg)
	if err != nil {
		return nil, err
	}

	files, err := docs.Discover(settings.DocsDir, settings.SiteDir, settings.UseDirectoryURLs)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "cannot collect documentation files").
			WithContext("path", settings.DocsDir).Build()
	}

	var reg *prom.Registry
	opts := []build.Option{build.WithLogger(logger)}
	if flags.MetricsFile != "" {
		reg = prom.NewRegistry()
		opts = append(opts, build.WithRecorder(metrics.NewPrometheusRecorder(reg)))
	}

	builder, err := build.NewBuilder(settings, opts...)
	if err != nil {
		return nil, err
	}

	result, runErr := builder.Run(ctx, files)

	if flags.Manifest != "" {
		if err := builder.Manifest().WriteFile(flags.Manifest); err != nil {
			logger.Warn("Failed to write manifest", logfields.Path(flags.Manifest), logfields.Error(err))
		}
	}
	if reg != nil {
		if err := metrics.WriteTextfile(reg, flags.MetricsFile); err != nil {
			logger.Warn("Failed to write metrics", logfields.Path(flags.MetricsFile), logfields.Error(err))
		}
	}
	if runErr != nil {
		return result, runErr
	}

	for _, f := range result.Generated {
		_, _ = fmt.Fprintf(out, "%s -> %s\n", filepath.Join(f.SrcDir, filepath.FromSlash(f.SrcPath)), f.URL())
	}
	return result, nil
}
