package generator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-blog/internal/catalog"
	"github.com/goliatone/go-blog/internal/identity"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Service describes the static site generator contract.
type Service interface {
	Build(ctx context.Context, opts BuildOptions) (*BuildResult, error)
}

// Config captures runtime behaviour toggles for the generator.
type Config struct {
	OutputDir       string
	BaseURL         string
	SiteTitle       string
	SiteDescription string
	StaticDir       string
	GenerateSitemap bool
	GenerateRobots  bool
	GenerateFeeds   bool
	TagPages        bool
	ShowReadingTime bool
	Workers         int
}

// BuildOptions narrows the scope of a generator run.
type BuildOptions struct {
	DryRun bool
}

// BuildResult reports aggregated build metadata. Page level render failures
// live in Errors and Diagnostics; they do not abort the run.
type BuildResult struct {
	PagesBuilt  int
	PagesFailed int
	AssetsBuilt int
	FeedsBuilt  int
	GeneratedAt time.Time
	Duration    time.Duration
	Rendered    []RenderedPage
	Diagnostics []RenderDiagnostic
	Errors      []error
	DryRun      bool
}

// Dependencies lists the collaborators required by the generator.
type Dependencies struct {
	Catalog  *catalog.Catalog
	Parser   interfaces.MarkdownParser
	Renderer interfaces.TemplateRenderer
	Routes   *Routes
	Logger   interfaces.Logger
	Now      func() time.Time
}

// NewService wires a generator implementation with the provided configuration
// and dependencies.
func NewService(cfg Config, deps Dependencies) Service {
	if deps.Routes == nil {
		deps.Routes = NewRoutes(cfg.BaseURL)
	}
	if deps.Logger == nil {
		deps.Logger = logging.NoOp()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	svc := &service{
		cfg:  cfg,
		deps: deps,
		log:  deps.Logger,
		now:  now,
	}
	svc.newWriter = func(dryRun bool) artifactWriter {
		if dryRun {
			return noopWriter{}
		}
		return newFilesystemWriter(cfg.OutputDir)
	}
	return svc
}

type service struct {
	cfg  Config
	deps Dependencies
	log  interfaces.Logger
	now  func() time.Time

	// newWriter is swappable so tests can capture writes.
	newWriter func(dryRun bool) artifactWriter
}

func (s *service) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.deps.Renderer == nil {
		return nil, errRendererRequired
	}
	if s.deps.Parser == nil {
		return nil, errParserRequired
	}
	if s.deps.Catalog == nil {
		return nil, errCatalogRequired
	}

	start := time.Now()
	generatedAt := s.now().UTC()
	posts := s.deps.Catalog.All()

	siteMeta := SiteMetadata{
		Title:       s.cfg.SiteTitle,
		Description: s.cfg.SiteDescription,
		BaseURL:     strings.TrimRight(strings.TrimSpace(s.cfg.BaseURL), "/"),
	}
	buildMeta := BuildMetadata{GeneratedAt: generatedAt}

	result := &BuildResult{
		GeneratedAt: generatedAt,
		DryRun:      opts.DryRun,
		Diagnostics: make([]RenderDiagnostic, 0, len(posts)+2),
	}

	var (
		mu       sync.Mutex
		rendered = make([]RenderedPage, 0, len(posts)+2)
	)
	collect := func(outcome renderOutcome) {
		mu.Lock()
		defer mu.Unlock()
		result.Diagnostics = append(result.Diagnostics, outcome.diagnostic)
		if outcome.err != nil {
			result.Errors = append(result.Errors, outcome.err)
			result.PagesFailed++
			return
		}
		result.PagesBuilt++
		rendered = append(rendered, outcome.page)
	}

	s.log.Info("build started",
		"posts", len(posts),
		"dry_run", opts.DryRun,
		"output_dir", s.cfg.OutputDir,
	)

	if err := s.renderPosts(ctx, siteMeta, buildMeta, posts, collect); err != nil {
		result.Duration = time.Since(start)
		return result, err
	}

	listing, err := s.renderListing(siteMeta, buildMeta, posts)
	if err != nil {
		result.Duration = time.Since(start)
		return result, err
	}
	collect(listing)

	if s.cfg.TagPages {
		for _, tag := range s.deps.Catalog.Tags() {
			if err := ctx.Err(); err != nil {
				result.Duration = time.Since(start)
				return result, err
			}
			collect(s.renderTagPage(siteMeta, buildMeta, tag))
		}
	}

	writer := s.newWriter(opts.DryRun)
	if err := writer.EnsureDir(ctx, "."); err != nil {
		result.Duration = time.Since(start)
		return result, err
	}

	if err := s.persistPages(ctx, writer, rendered); err != nil {
		result.Rendered = rendered
		result.Duration = time.Since(start)
		return result, err
	}

	assetSummary, err := s.copyStaticAssets(ctx, writer)
	if err != nil {
		result.Rendered = rendered
		result.Duration = time.Since(start)
		return result, err
	}
	result.AssetsBuilt = assetSummary.Built

	if s.cfg.GenerateSitemap {
		if err := s.writeSitemap(ctx, writer, siteMeta, rendered, generatedAt); err != nil {
			result.Rendered = rendered
			result.Duration = time.Since(start)
			return result, err
		}
	}
	if s.cfg.GenerateRobots {
		if err := s.writeRobots(ctx, writer, siteMeta, generatedAt); err != nil {
			result.Rendered = rendered
			result.Duration = time.Since(start)
			return result, err
		}
	}
	if s.cfg.GenerateFeeds {
		items := s.buildFeedItems(posts)
		feedsBuilt, err := s.writeFeeds(ctx, writer, siteMeta, items, generatedAt)
		result.FeedsBuilt = feedsBuilt
		if err != nil {
			result.Rendered = rendered
			result.Duration = time.Since(start)
			return result, err
		}
	}

	result.Rendered = rendered
	result.Duration = time.Since(start)

	s.log.Info("build finished",
		"pages_built", result.PagesBuilt,
		"pages_failed", result.PagesFailed,
		"assets_built", result.AssetsBuilt,
		"duration", result.Duration.String(),
	)
	return result, nil
}

func (s *service) renderPosts(
	ctx context.Context,
	siteMeta SiteMetadata,
	buildMeta BuildMetadata,
	posts []*catalog.Post,
	collect func(renderOutcome),
) error {
	workers := s.effectiveWorkerCount(len(posts))
	if workers <= 1 || len(posts) <= 1 {
		for _, post := range posts {
			if err := ctx.Err(); err != nil {
				return err
			}
			collect(s.renderPost(ctx, siteMeta, buildMeta, post))
		}
		return nil
	}

	jobs := make(chan *catalog.Post)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for post := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
					collect(s.renderPost(ctx, siteMeta, buildMeta, post))
				}
			}
		}()
	}

	var sendErr error
	for _, post := range posts {
		select {
		case <-ctx.Done():
			sendErr = ctx.Err()
		case jobs <- post:
			continue
		}
		break
	}
	close(jobs)
	wg.Wait()
	return sendErr
}

func (s *service) renderPost(
	ctx context.Context,
	siteMeta SiteMetadata,
	buildMeta BuildMetadata,
	post *catalog.Post,
) renderOutcome {
	outcome := renderOutcome{
		diagnostic: RenderDiagnostic{
			ID:       post.ID,
			Route:    post.Path,
			Template: templatePost,
		},
	}

	select {
	case <-ctx.Done():
		outcome.err = ctx.Err()
		outcome.diagnostic.Err = ctx.Err()
		return outcome
	default:
	}

	start := time.Now()
	body, err := s.deps.Parser.Parse(post.Body)
	if err != nil {
		wrapped := &RenderError{
			Route: post.Path,
			File:  post.SourceFile,
			Err:   fmt.Errorf("markdown conversion: %w", err),
		}
		outcome.err = wrapped
		outcome.diagnostic.Err = wrapped
		outcome.diagnostic.Duration = time.Since(start)
		logging.WithPostContext(s.log, post.SourceFile, post.Path).Error("post render failed", "error", err)
		return outcome
	}

	pageCtx := PostContext{
		Site:        siteMeta,
		Build:       buildMeta,
		Title:       post.Title,
		Author:      post.Author,
		Summary:     post.Summary,
		Route:       post.Path,
		Permalink:   s.deps.Routes.Post(post.Path),
		Date:        post.Date,
		ReadingTime: s.readingTimeDisplay(post),
		Tags:        s.tagRefs(post.Tags),
		Resources:   append([]string(nil), post.Resources...),
		Body:        string(body),
	}

	html, err := s.deps.Renderer.RenderTemplate(templatePost, pageCtx)
	duration := time.Since(start)
	outcome.diagnostic.Duration = duration
	if err != nil {
		wrapped := &RenderError{
			Route: post.Path,
			File:  post.SourceFile,
			Err:   fmt.Errorf("template %q: %w", templatePost, err),
		}
		outcome.err = wrapped
		outcome.diagnostic.Err = wrapped
		logging.WithPostContext(s.log, post.SourceFile, post.Path).Error("post render failed", "error", err)
		return outcome
	}

	outcome.page = RenderedPage{
		ID:           post.ID,
		Route:        post.Path,
		Output:       buildOutputPath(post.Path),
		Template:     templatePost,
		HTML:         html,
		LastModified: post.LastModified,
		Duration:     duration,
		Checksum:     computeHashFromString(html),
	}
	return outcome
}

// renderListing produces the index page. Every catalog post is listed, even
// when its own page failed to render, so the failure stays visible instead of
// silently vanishing from the site.
func (s *service) renderListing(
	siteMeta SiteMetadata,
	buildMeta BuildMetadata,
	posts []*catalog.Post,
) (renderOutcome, error) {
	listingCtx := ListingContext{
		Site:  siteMeta,
		Build: buildMeta,
		Posts: s.postEntries(posts),
	}

	start := time.Now()
	html, err := s.deps.Renderer.RenderTemplate(templateListing, listingCtx)
	duration := time.Since(start)
	if err != nil {
		return renderOutcome{}, fmt.Errorf("generator: render listing page: %w", err)
	}

	id := identity.PageUUID("/")
	return renderOutcome{
		page: RenderedPage{
			ID:           id,
			Route:        "/",
			Output:       buildOutputPath("/"),
			Template:     templateListing,
			HTML:         html,
			LastModified: buildMeta.GeneratedAt,
			Duration:     duration,
			Checksum:     computeHashFromString(html),
		},
		diagnostic: RenderDiagnostic{
			ID:       id,
			Route:    "/",
			Template: templateListing,
			Duration: duration,
		},
	}, nil
}

func (s *service) renderTagPage(
	siteMeta SiteMetadata,
	buildMeta BuildMetadata,
	tag string,
) renderOutcome {
	slugged := catalog.TagSlug(tag)
	route := s.deps.Routes.TagRoute(slugged)
	id := identity.TagUUID(slugged)
	outcome := renderOutcome{
		diagnostic: RenderDiagnostic{
			ID:       id,
			Route:    route,
			Template: templateTag,
		},
	}

	tagCtx := TagContext{
		Site:  siteMeta,
		Build: buildMeta,
		Tag:   tag,
		Slug:  slugged,
		Posts: s.postEntries(s.deps.Catalog.WithTag(tag)),
	}

	start := time.Now()
	html, err := s.deps.Renderer.RenderTemplate(templateTag, tagCtx)
	duration := time.Since(start)
	outcome.diagnostic.Duration = duration
	if err != nil {
		wrapped := &RenderError{
			Route: route,
			Err:   fmt.Errorf("template %q: %w", templateTag, err),
		}
		outcome.err = wrapped
		outcome.diagnostic.Err = wrapped
		s.log.Error("tag page render failed", "route", route, "error", err)
		return outcome
	}

	outcome.page = RenderedPage{
		ID:           id,
		Route:        route,
		Output:       buildOutputPath(route),
		Template:     templateTag,
		HTML:         html,
		LastModified: buildMeta.GeneratedAt,
		Duration:     duration,
		Checksum:     computeHashFromString(html),
	}
	return outcome
}

func (s *service) persistPages(
	ctx context.Context,
	writer artifactWriter,
	pages []RenderedPage,
) error {
	for i := range pages {
		req := writeFileRequest{
			Path:        pages[i].Output,
			Content:     strings.NewReader(pages[i].HTML),
			Size:        int64(len(pages[i].HTML)),
			Category:    categoryPage,
			ContentType: "text/html; charset=utf-8",
			Checksum:    pages[i].Checksum,
			Metadata: map[string]string{
				"page_id":  pages[i].ID.String(),
				"route":    pages[i].Route,
				"template": pages[i].Template,
			},
		}
		if err := writer.WriteFile(ctx, req); err != nil {
			return err
		}
		s.log.Debug("page written", "route", pages[i].Route, "output", pages[i].Output)
	}
	return nil
}

func (s *service) writeSitemap(
	ctx context.Context,
	writer artifactWriter,
	siteMeta SiteMetadata,
	pages []RenderedPage,
	generatedAt time.Time,
) error {
	content := buildSitemap(siteMeta.BaseURL, pages, generatedAt)
	req := writeFileRequest{
		Path:        "sitemap.xml",
		Content:     strings.NewReader(content),
		Size:        int64(len(content)),
		Category:    categorySitemap,
		ContentType: "application/xml",
		Checksum:    computeHashFromString(content),
		Metadata: map[string]string{
			"generated_at": generatedAt.UTC().Format(time.RFC3339),
		},
	}
	return writer.WriteFile(ctx, req)
}

func (s *service) writeRobots(
	ctx context.Context,
	writer artifactWriter,
	siteMeta SiteMetadata,
	generatedAt time.Time,
) error {
	content := buildRobots(absoluteLink(s.deps.Routes.Sitemap(), siteMeta.BaseURL), s.cfg.GenerateSitemap)
	req := writeFileRequest{
		Path:        "robots.txt",
		Content:     strings.NewReader(content),
		Size:        int64(len(content)),
		Category:    categoryRobots,
		ContentType: "text/plain; charset=utf-8",
		Checksum:    computeHashFromString(content),
		Metadata: map[string]string{
			"generated_at": generatedAt.UTC().Format(time.RFC3339),
		},
	}
	return writer.WriteFile(ctx, req)
}

func (s *service) postEntries(posts []*catalog.Post) []PostEntry {
	entries := make([]PostEntry, 0, len(posts))
	for _, post := range posts {
		if post == nil {
			continue
		}
		entries = append(entries, PostEntry{
			Title:       post.Title,
			Summary:     post.Summary,
			Route:       post.Path,
			Permalink:   s.deps.Routes.Post(post.Path),
			Date:        post.Date,
			ReadingTime: s.readingTimeDisplay(post),
		})
	}
	return entries
}

func (s *service) tagRefs(tags []string) []TagRef {
	refs := make([]TagRef, 0, len(tags))
	seen := map[string]struct{}{}
	for _, tag := range tags {
		slugged := catalog.TagSlug(tag)
		if slugged == "" {
			continue
		}
		if _, ok := seen[slugged]; ok {
			continue
		}
		seen[slugged] = struct{}{}
		refs = append(refs, TagRef{
			Name:  tag,
			Slug:  slugged,
			Route: s.deps.Routes.TagRoute(slugged),
		})
	}
	return refs
}

func (s *service) readingTimeDisplay(post *catalog.Post) string {
	if !s.cfg.ShowReadingTime {
		return ""
	}
	return post.ReadingTime.Display
}

func (s *service) effectiveWorkerCount(jobCount int) int {
	workers := s.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers < 1 {
		workers = 1
	}
	if jobCount > 0 && workers > jobCount {
		return jobCount
	}
	return workers
}

func computeHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func computeHashFromString(content string) string {
	return computeHash([]byte(content))
}
