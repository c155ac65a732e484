package build

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/doctags/internal/docs"
	"git.home.luguber.info/inful/doctags/internal/foundation/errors"
	"git.home.luguber.info/inful/doctags/internal/frontmatter"
	"git.home.luguber.info/inful/doctags/internal/logfields"
	"git.home.luguber.info/inful/doctags/internal/manifest"
	"git.home.luguber.info/inful/doctags/internal/markdown"
	"git.home.luguber.info/inful/doctags/internal/metadata"
	"git.home.luguber.info/inful/doctags/internal/metrics"
	"git.home.luguber.info/inful/doctags/internal/taxonomy"
	"git.home.luguber.info/inful/doctags/internal/templates"
	"git.home.luguber.info/inful/doctags/internal/textenc"
)

// Stage names used for logging and metrics.
const (
	StageScan     = "scan"
	StageGenerate = "generate"
)

// Builder collects document metadata and generates tag pages.
//
// A Builder is not safe for concurrent use; one build runs at a time.
type Builder struct {
	settings Settings
	decoder  *textenc.Decoder
	renderer *templates.Renderer
	recorder metrics.Recorder
	logger   *slog.Logger
	buildID  string

	records  []*metadata.Record
	manifest *manifest.BuildManifest
}

// Option configures a Builder.
type Option func(*Builder)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(b *Builder) {
		if r != nil {
			b.recorder = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithRenderer replaces the renderer derived from Settings.Template.
func WithRenderer(r *templates.Renderer) Option {
	return func(b *Builder) {
		if r != nil {
			b.renderer = r
		}
	}
}

// WithBuildID fixes the build id instead of generating one.
func WithBuildID(id string) Option {
	return func(b *Builder) { b.buildID = id }
}

// NewBuilder returns a Builder for s.
func NewBuilder(s Settings, opts ...Option) (*Builder, error) {
	encoding := s.Encoding
	if encoding == "" {
		encoding = DefaultEncoding
	}
	decoder, err := textenc.Lookup(encoding)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "unsupported encoding").
			WithContext("encoding", encoding).Build()
	}

	b := &Builder{
		settings: s,
		decoder:  decoder,
		renderer: templates.NewRenderer(s.Template),
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
		buildID:  uuid.NewString(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.With(logfields.BuildID(b.buildID))
	b.warnRepeatedNames()
	b.manifest = manifest.New(b.buildID, time.Now())
	return b, nil
}

func (b *Builder) warnRepeatedNames() {
	seen := make(map[string]bool, len(b.settings.Names))
	for _, name := range b.settings.Names {
		if seen[name] {
			b.logger.Warn("Tag category listed more than once; its page is regenerated", logfields.Category(name))
		}
		seen[name] = true
	}
}

// Settings returns the settings the builder was created with.
func (b *Builder) Settings() Settings { return b.settings }

// BuildID returns the id attached to logs and the manifest.
func (b *Builder) BuildID() string { return b.buildID }

// Records returns the scanned metadata, one entry per markdown document.
// Documents without metadata are nil entries.
func (b *Builder) Records() []*metadata.Record { return b.records }

// Manifest returns the manifest of the pages generated so far.
func (b *Builder) Manifest() *manifest.BuildManifest { return b.manifest }

// Scan reads every markdown document of files, in collection order, and
// collects its metadata. Previously scanned metadata is discarded.
func (b *Builder) Scan(files *docs.Files) error {
	return b.scan(context.Background(), files)
}

func (b *Builder) scan(ctx context.Context, files *docs.Files) error {
	b.records = nil
	for _, f := range files.Markdown() {
		if err := ctx.Err(); err != nil {
			return err
		}

		text, err := b.decoder.ReadFile(f.AbsSrcPath())
		if err != nil {
			return errors.WrapError(err, errors.CategoryRead, "cannot read document").
				WithContext("file", f.SrcPath).
				WithContext("encoding", b.decoder.Name()).
				Build()
		}

		rec, err := frontmatter.Read(text, f.SrcPath)
		if err != nil {
			return err
		}
		b.records = append(b.records, rec)
		b.recorder.IncDocumentsScanned(rec != nil)
		b.logger.Debug("Scanned document", logfields.File(f.SrcPath), slog.Bool("metadata", rec != nil))
	}
	b.manifest.Documents = len(b.records)
	return nil
}

// Generate writes one page per tag category and appends each to files.
// It returns the files it registered, in category order.
func (b *Builder) Generate(files *docs.Files) ([]docs.File, error) {
	return b.generate(context.Background(), files)
}

func (b *Builder) generate(ctx context.Context, files *docs.Files) ([]docs.File, error) {
	known := make(map[string]bool, files.Len())
	for _, f := range files.All() {
		known[f.SrcPath] = true
	}

	generated := make([]docs.File, 0, len(b.settings.Names))
	for _, category := range b.settings.Names {
		if err := ctx.Err(); err != nil {
			return generated, err
		}

		f, err := b.generateCategory(category, known)
		if err != nil {
			return generated, err
		}
		files.Append(f)
		known[f.SrcPath] = true
		generated = append(generated, f)
	}
	return generated, nil
}

func (b *Builder) generateCategory(category string, known map[string]bool) (docs.File, error) {
	grouping, err := taxonomy.Aggregate(b.records, category)
	if err != nil {
		return docs.File{}, err
	}
	b.recorder.SetTagCount(category, grouping.Len())

	content, err := b.renderer.Render(grouping, category)
	if err != nil {
		return docs.File{}, err
	}

	name := category + docs.MarkdownExt
	path, err := templates.WriteGeneratedFile(b.settings.Folder, name, content)
	if err != nil {
		return docs.File{}, errors.WrapError(err, errors.CategoryWrite, "cannot write tag page").
			WithContext("category", category).
			WithContext("path", filepath.Join(b.settings.Folder, name)).
			Build()
	}
	b.logger.Info(fmt.Sprintf("tags file is %s", path), logfields.Category(category), logfields.Count(grouping.Len()))

	f := docs.File{
		SrcPath:          name,
		SrcDir:           b.settings.Folder,
		DestDir:          b.settings.SiteDir,
		UseDirectoryURLs: false,
	}
	page := manifest.NewPage(category, f, content)
	b.checkLinks(&page, content, known)
	b.manifest.AddPage(page)
	b.recorder.IncPagesGenerated(category)
	return f, nil
}

// checkLinks records the page's links and warns about local links to
// documents missing from the collection.
func (b *Builder) checkLinks(page *manifest.Page, content string, known map[string]bool) {
	_, body, _ := frontmatter.Split(content)
	links := markdown.ExtractLinks([]byte(body))
	page.Links = len(links)
	page.Unresolved = markdown.Unresolved(links, ".", func(p string) bool { return known[p] })
	for _, dest := range page.Unresolved {
		b.logger.Warn("Tag page links to unknown document",
			logfields.Category(page.Category), logfields.File(page.SrcPath), slog.String("link", dest))
	}
}
