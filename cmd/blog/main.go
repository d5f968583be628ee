package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-blog/cmd/blog/internal/bootstrap"
	"github.com/goliatone/go-blog/internal/commands"
	"github.com/goliatone/go-blog/internal/generator"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runBuild(os.Args[1:]); err != nil {
		log.Fatalf("blog build: %v", err)
	}
}

func runBuild(args []string) error {
	fs := flag.NewFlagSet("blog-build", flag.ExitOnError)
	contentDir := fs.String("content-dir", "content", "Path to the markdown content root")
	outputDir := fs.String("output-dir", "public", "Directory receiving generated HTML")
	baseURL := fs.String("base-url", "", "Absolute site URL used for permalinks and feeds")
	title := fs.String("title", "", "Site title shown on generated pages")
	description := fs.String("description", "", "Site description used in feeds")
	staticDir := fs.String("static-dir", "", "Directory of static assets copied verbatim")
	templatesDir := fs.String("templates-dir", "", "Directory of templates overriding the built-in set")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering markdown files")
	drafts := fs.Bool("drafts", false, "Include posts flagged draft")
	dryRun := fs.Bool("dry-run", false, "Render pages without writing artifacts")
	workers := fs.Int("workers", 0, "Render worker count (0 selects the CPU count)")
	logLevel := fs.String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	logFormat := fs.String("log-format", "", "Log format (json, console, pretty)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir:      *contentDir,
		OutputDir:       *outputDir,
		BaseURL:         *baseURL,
		SiteTitle:       *title,
		SiteDescription: *description,
		StaticDir:       *staticDir,
		TemplatesDir:    *templatesDir,
		Pattern:         *pattern,
		Recursive:       true,
		IncludeDrafts:   *drafts,
		Workers:         *workers,
		LogLevel:        *logLevel,
		LogFormat:       *logFormat,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	var result *generator.BuildResult
	cmd := commands.BuildSiteCommand{
		ContentDir:    *contentDir,
		OutputDir:     *outputDir,
		BaseURL:       *baseURL,
		IncludeDrafts: *drafts,
		DryRun:        *dryRun,
		ResultCallback: func(envelope commands.ResultEnvelope) {
			result = envelope.Result
		},
	}

	handler := module.Module.BuildHandler()
	if err := handler.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute build command: %w", err)
	}

	if result != nil {
		fmt.Fprintf(os.Stdout, "built %d pages (%d failed, %d assets) in %s\n",
			result.PagesBuilt, result.PagesFailed, result.AssetsBuilt, result.Duration)
		for _, buildErr := range result.Errors {
			fmt.Fprintf(os.Stderr, "  page error: %v\n", buildErr)
		}
	}
	return nil
}
