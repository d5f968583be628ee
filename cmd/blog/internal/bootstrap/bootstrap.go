package bootstrap

import (
	"fmt"
	"strings"

	blog "github.com/goliatone/go-blog"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Options captures configuration for the blog CLI bootstrap.
type Options struct {
	ContentDir      string
	OutputDir       string
	BaseURL         string
	SiteTitle       string
	SiteDescription string
	StaticDir       string
	TemplatesDir    string
	Pattern         string
	Recursive       bool
	IncludeDrafts   bool
	Workers         int
	LogLevel        string
	LogFormat       string
	LoggerProvider  interfaces.LoggerProvider
}

// Module wraps the blog module and its CLI logger.
type Module struct {
	Module *blog.Module
	Logger interfaces.Logger
}

// BuildModule constructs a blog module configured for CLI builds.
func BuildModule(opts Options) (*Module, error) {
	cfg := blog.DefaultConfig()

	if trimmed := strings.TrimSpace(opts.ContentDir); trimmed != "" {
		cfg.Content.Dir = trimmed
	}
	if trimmed := strings.TrimSpace(opts.Pattern); trimmed != "" {
		cfg.Content.Pattern = trimmed
	}
	cfg.Content.Recursive = opts.Recursive
	cfg.Content.IncludeDrafts = opts.IncludeDrafts

	if trimmed := strings.TrimSpace(opts.OutputDir); trimmed != "" {
		cfg.Generator.OutputDir = trimmed
	}
	cfg.Generator.StaticDir = strings.TrimSpace(opts.StaticDir)
	cfg.Generator.TemplatesDir = strings.TrimSpace(opts.TemplatesDir)
	if opts.Workers > 0 {
		cfg.Generator.Workers = opts.Workers
	}

	cfg.Site.BaseURL = strings.TrimSpace(opts.BaseURL)
	cfg.Site.Title = strings.TrimSpace(opts.SiteTitle)
	cfg.Site.Description = strings.TrimSpace(opts.SiteDescription)

	if trimmed := strings.TrimSpace(opts.LogLevel); trimmed != "" {
		cfg.Logging.Level = trimmed
	}
	if trimmed := strings.TrimSpace(opts.LogFormat); trimmed != "" {
		cfg.Logging.Provider = "gologger"
		cfg.Logging.Format = trimmed
	}

	blogOpts := []blog.Option{}
	if opts.LoggerProvider != nil {
		blogOpts = append(blogOpts, blog.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := blog.New(cfg, blogOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise blog module: %w", err)
	}

	return &Module{
		Module: module,
		Logger: module.Logger("blog.cli"),
	}, nil
}
