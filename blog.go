// Package blog turns a directory of Markdown posts with YAML front matter
// into a static site: one HTML page per post, a date-ordered listing page,
// tag archives, feeds, and crawl artifacts.
package blog

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-blog/internal/catalog"
	"github.com/goliatone/go-blog/internal/commands"
	"github.com/goliatone/go-blog/internal/generator"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/logging/gologger"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/render"
	"github.com/goliatone/go-blog/internal/runtimeconfig"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Re-exported contracts so consumers rarely need the internal packages.
type (
	FrontMatter = interfaces.FrontMatter
	RawPost     = interfaces.RawPost
	Post        = catalog.Post
	Catalog     = catalog.Catalog
	BuildResult = generator.BuildResult

	MalformedFrontMatterError = markdown.MalformedFrontMatterError
	DuplicatePathError        = catalog.DuplicatePathError
	RenderError               = generator.RenderError
)

var (
	ErrMalformedFrontMatter = markdown.ErrMalformedFrontMatter
	ErrDuplicatePath        = catalog.ErrDuplicatePath
	ErrRenderFailed         = generator.ErrRenderFailed
)

// BuildOptions adjusts a single build without mutating the module config.
// Empty string fields fall back to the configured values.
type BuildOptions struct {
	ContentDir    string
	OutputDir     string
	BaseURL       string
	IncludeDrafts bool
	DryRun        bool
}

// Option overrides a module collaborator during construction.
type Option func(*Module)

// WithLoggerProvider injects a logger provider, replacing the one derived
// from the logging configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(m *Module) {
		m.provider = provider
	}
}

// WithParser injects a Markdown parser, replacing the default goldmark one.
func WithParser(parser interfaces.MarkdownParser) Option {
	return func(m *Module) {
		m.parser = parser
	}
}

// WithRenderer injects a template renderer, replacing the embedded templates.
func WithRenderer(renderer interfaces.TemplateRenderer) Option {
	return func(m *Module) {
		m.renderer = renderer
	}
}

// WithClock injects the time source used for build timestamps. Tests use
// this to make generated artifacts reproducible.
func WithClock(now func() time.Time) Option {
	return func(m *Module) {
		m.now = now
	}
}

// Module is the top level blog runtime facade.
type Module struct {
	cfg      Config
	provider interfaces.LoggerProvider
	parser   interfaces.MarkdownParser
	renderer interfaces.TemplateRenderer
	now      func() time.Time
}

// New constructs a blog module from the provided configuration.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Module{
		cfg: cfg,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.provider == nil {
		provider, err := newLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		m.provider = provider
	}

	if m.parser == nil {
		m.parser = markdown.NewGoldmarkParser(parseOptions(cfg.Markdown))
	}

	if m.renderer == nil {
		if dir := strings.TrimSpace(cfg.Generator.TemplatesDir); dir != "" {
			m.renderer = render.NewDirRenderer(dir)
		} else {
			m.renderer = render.NewHTMLRenderer()
		}
	}

	return m, nil
}

// Load reads every Markdown post under the configured (or overridden)
// content directory, parsing and validating front matter along the way.
func (m *Module) Load(ctx context.Context, contentDir string) ([]*RawPost, error) {
	dir := strings.TrimSpace(contentDir)
	if dir == "" {
		dir = m.cfg.Content.Dir
	}

	log := logging.LoaderLogger(m.provider)
	svc, err := m.contentService(dir)
	if err != nil {
		log.Error("content directory unavailable", "dir", dir, "error", err)
		return nil, err
	}

	raws, err := svc.LoadDirectory(ctx, ".")
	if err != nil {
		return nil, err
	}
	log.Info("posts loaded", "dir", dir, "count", len(raws))
	return raws, nil
}

// Catalog loads posts and aggregates them into a date-ordered catalog.
func (m *Module) Catalog(ctx context.Context, opts BuildOptions) (*Catalog, error) {
	raws, err := m.Load(ctx, opts.ContentDir)
	if err != nil {
		return nil, err
	}

	cat, err := catalog.Build(raws, catalog.Options{
		WordsPerMinute: m.cfg.Catalog.WordsPerMinute,
		IncludeDrafts:  opts.IncludeDrafts || m.cfg.Content.IncludeDrafts,
	})
	if err != nil {
		return nil, err
	}

	logging.CatalogLogger(m.provider).Info("catalog built",
		"posts", cat.Len(),
		"tags", len(cat.Tags()),
	)
	return cat, nil
}

// Build runs the full pipeline: load posts, build the catalog, and render
// the site into the output directory.
func (m *Module) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	cat, err := m.Catalog(ctx, opts)
	if err != nil {
		return nil, err
	}

	gen := m.generatorService(cat, opts)
	return gen.Build(ctx, generator.BuildOptions{DryRun: opts.DryRun})
}

// BuildHandler returns a command handler that executes builds through the
// shared command foundation (validation, timeout, structured logging).
func (m *Module) BuildHandler(opts ...commands.HandlerOption[commands.BuildSiteCommand]) *commands.BuildSiteHandler {
	build := func(ctx context.Context, msg commands.BuildSiteCommand) (*BuildResult, error) {
		return m.Build(ctx, BuildOptions{
			ContentDir:    msg.ContentDir,
			OutputDir:     msg.OutputDir,
			BaseURL:       msg.BaseURL,
			IncludeDrafts: msg.IncludeDrafts,
			DryRun:        msg.DryRun,
		})
	}
	return commands.NewBuildSiteHandler(build, logging.CommandsLogger(m.provider), opts...)
}

// Logger returns a module-scoped logger backed by the configured provider.
func (m *Module) Logger(name string) interfaces.Logger {
	return logging.ModuleLogger(m.provider, name)
}

func (m *Module) contentService(contentDir string) (*markdown.Service, error) {
	dir := strings.TrimSpace(contentDir)
	if dir == "" {
		dir = m.cfg.Content.Dir
	}
	return markdown.NewService(markdown.Config{
		BasePath:  dir,
		Pattern:   m.cfg.Content.Pattern,
		Recursive: m.cfg.Content.Recursive,
	})
}

func (m *Module) generatorService(cat *Catalog, opts BuildOptions) generator.Service {
	outputDir := strings.TrimSpace(opts.OutputDir)
	if outputDir == "" {
		outputDir = m.cfg.Generator.OutputDir
	}
	baseURL := strings.TrimSpace(opts.BaseURL)
	if baseURL == "" {
		baseURL = m.cfg.Site.BaseURL
	}

	return generator.NewService(generator.Config{
		OutputDir:       outputDir,
		BaseURL:         baseURL,
		SiteTitle:       m.cfg.Site.Title,
		SiteDescription: m.cfg.Site.Description,
		StaticDir:       m.cfg.Generator.StaticDir,
		GenerateSitemap: m.cfg.Generator.GenerateSitemap,
		GenerateRobots:  m.cfg.Generator.GenerateRobots,
		GenerateFeeds:   m.cfg.Generator.GenerateFeeds,
		TagPages:        m.cfg.Generator.TagPages,
		ShowReadingTime: m.cfg.Generator.ShowReadingTime,
		Workers:         m.cfg.Generator.Workers,
	}, generator.Dependencies{
		Catalog:  cat,
		Parser:   m.parser,
		Renderer: m.renderer,
		Logger:   logging.GeneratorLogger(m.provider),
		Now:      m.now,
	})
}

func parseOptions(cfg runtimeconfig.MarkdownConfig) interfaces.ParseOptions {
	return interfaces.ParseOptions{
		Extensions:         append([]string(nil), cfg.Extensions...),
		HardWraps:          cfg.HardWraps,
		SafeMode:           cfg.SafeMode,
		Sanitize:           cfg.Sanitize,
		ExternalLinkTarget: cfg.ExternalLinkTarget,
	}
}

func newLoggerProvider(cfg runtimeconfig.LoggingConfig) (interfaces.LoggerProvider, error) {
	format := cfg.Format
	if strings.EqualFold(strings.TrimSpace(cfg.Provider), "console") && strings.TrimSpace(format) == "" {
		format = "console"
	}
	return gologger.NewProvider(gologger.Config{
		Level:     cfg.Level,
		Format:    format,
		AddSource: cfg.AddSource,
		Focus:     append([]string(nil), cfg.Focus...),
	})
}
