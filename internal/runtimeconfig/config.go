package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
)

var ErrContentDirRequired = errors.New("blog config: content directory is required")
var ErrOutputDirRequired = errors.New("blog config: generator output directory is required")
var ErrWordsPerMinuteInvalid = errors.New("blog config: words per minute must be zero or positive")
var ErrWorkersInvalid = errors.New("blog config: generator workers must be zero or positive")
var ErrLoggingProviderRequired = errors.New("blog config: logging provider is required")
var ErrLoggingProviderUnknown = errors.New("blog config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("blog config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("blog config: logging format is invalid")

// Config aggregates runtime bindings for the blog module. Fields use simple
// types so host applications can populate them from flags or their own
// configuration files.
type Config struct {
	Site      SiteConfig
	Content   ContentConfig
	Catalog   CatalogConfig
	Markdown  MarkdownConfig
	Generator GeneratorConfig
	Logging   LoggingConfig
}

// SiteConfig carries site-wide presentation metadata.
type SiteConfig struct {
	Title       string
	Description string
	BaseURL     string
}

// ContentConfig captures filesystem behaviour for Markdown ingestion.
type ContentConfig struct {
	Dir           string
	Pattern       string
	Recursive     bool
	IncludeDrafts bool
}

// CatalogConfig captures post indexing behaviour.
type CatalogConfig struct {
	// WordsPerMinute tunes reading time estimates. Zero selects the default.
	WordsPerMinute int
}

// MarkdownConfig mirrors the parser options for runtime configuration.
type MarkdownConfig struct {
	Extensions         []string
	HardWraps          bool
	SafeMode           bool
	Sanitize           bool
	ExternalLinkTarget string
}

// GeneratorConfig captures behaviour for the static site generator.
type GeneratorConfig struct {
	OutputDir       string
	StaticDir       string
	TemplatesDir    string
	GenerateSitemap bool
	GenerateRobots  bool
	GenerateFeeds   bool
	TagPages        bool
	ShowReadingTime bool
	Workers         int
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns opinionated defaults for a conventional blog layout.
func DefaultConfig() Config {
	return Config{
		Content: ContentConfig{
			Dir:       "content",
			Pattern:   "*.md",
			Recursive: true,
		},
		Catalog: CatalogConfig{
			WordsPerMinute: 0,
		},
		Markdown: MarkdownConfig{
			ExternalLinkTarget: "_blank",
		},
		Generator: GeneratorConfig{
			OutputDir:       "public",
			GenerateSitemap: true,
			GenerateRobots:  true,
			GenerateFeeds:   true,
			TagPages:        true,
			ShowReadingTime: true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Content.Dir) == "" {
		return ErrContentDirRequired
	}
	if strings.TrimSpace(cfg.Generator.OutputDir) == "" {
		return ErrOutputDirRequired
	}
	if cfg.Catalog.WordsPerMinute < 0 {
		return ErrWordsPerMinuteInvalid
	}
	if cfg.Generator.Workers < 0 {
		return ErrWorkersInvalid
	}

	provider := normalizeProvider(cfg.Logging.Provider)
	if provider == "" {
		return ErrLoggingProviderRequired
	}
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
