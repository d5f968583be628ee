package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-blog/internal/catalog"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

type memWriter struct {
	mu    sync.Mutex
	files map[string][]byte
	dirs  []string
}

func newMemWriter() *memWriter {
	return &memWriter{files: map[string][]byte{}}
}

func (w *memWriter) EnsureDir(_ context.Context, path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.dirs = append(w.dirs, path)
	return nil
}

func (w *memWriter) WriteFile(_ context.Context, req writeFileRequest) error {
	data, err := io.ReadAll(req.Content)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[req.Path] = data
	return nil
}

type stubParser struct {
	failOn string
}

func (p *stubParser) Parse(markdown []byte) ([]byte, error) {
	if p.failOn != "" && bytes.Contains(markdown, []byte(p.failOn)) {
		return nil, errors.New("boom")
	}
	return []byte("<p>" + strings.TrimSpace(string(markdown)) + "</p>"), nil
}

func (p *stubParser) ParseWithOptions(markdown []byte, _ interfaces.ParseOptions) ([]byte, error) {
	return p.Parse(markdown)
}

type stubRenderer struct{}

func (stubRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	return stubRenderer{}.RenderTemplate(name, data, out...)
}

func (stubRenderer) RenderTemplate(name string, data any, _ ...io.Writer) (string, error) {
	switch ctx := data.(type) {
	case PostContext:
		return fmt.Sprintf("post:%s:%s", ctx.Route, ctx.Body), nil
	case ListingContext:
		routes := make([]string, 0, len(ctx.Posts))
		for _, entry := range ctx.Posts {
			routes = append(routes, entry.Route)
		}
		return "listing:" + strings.Join(routes, ","), nil
	case TagContext:
		return fmt.Sprintf("tag:%s:%d", ctx.Slug, len(ctx.Posts)), nil
	default:
		return "", fmt.Errorf("unexpected context %T", data)
	}
}

func (stubRenderer) RenderString(templateContent string, _ any, _ ...io.Writer) (string, error) {
	return templateContent, nil
}

func buildTestCatalog(t *testing.T, raws ...*interfaces.RawPost) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Build(raws, catalog.Options{})
	if err != nil {
		t.Fatalf("catalog.Build: %v", err)
	}
	return cat
}

func testRaw(title, path, body string, date time.Time, tags ...string) *interfaces.RawPost {
	return &interfaces.RawPost{
		FilePath: strings.TrimPrefix(path, "/") + ".md",
		FrontMatter: interfaces.FrontMatter{
			Title: title,
			Date:  date,
			Path:  path,
			Tags:  tags,
		},
		Body:         []byte(body),
		LastModified: date,
	}
}

func newTestService(t *testing.T, cfg Config, cat *catalog.Catalog, parser interfaces.MarkdownParser) (*service, *memWriter) {
	t.Helper()
	if parser == nil {
		parser = &stubParser{}
	}
	fixed := time.Date(2021, 7, 1, 12, 0, 0, 0, time.UTC)
	svc, ok := NewService(cfg, Dependencies{
		Catalog:  cat,
		Parser:   parser,
		Renderer: stubRenderer{},
		Now:      func() time.Time { return fixed },
	}).(*service)
	if !ok {
		t.Fatalf("expected *service implementation")
	}
	writer := newMemWriter()
	svc.newWriter = func(dryRun bool) artifactWriter {
		if dryRun {
			return noopWriter{}
		}
		return writer
	}
	return svc, writer
}

func TestBuildWritesPagesAndListing(t *testing.T) {
	cat := buildTestCatalog(t,
		testRaw("A", "/a", "alpha", time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)),
		testRaw("B", "/b", "beta", time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)),
	)
	svc, writer := newTestService(t, Config{OutputDir: "out", BaseURL: "https://blog.test"}, cat, nil)

	result, err := svc.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if result.PagesBuilt != 3 {
		t.Fatalf("expected 2 posts + listing, got %d", result.PagesBuilt)
	}
	if result.PagesFailed != 0 || len(result.Errors) != 0 {
		t.Fatalf("unexpected failures: %v", result.Errors)
	}

	if got := string(writer.files["a/index.html"]); got != "post:/a:<p>alpha</p>" {
		t.Fatalf("unexpected post output: %q", got)
	}
	if _, ok := writer.files["b/index.html"]; !ok {
		t.Fatalf("expected b/index.html to be written: %v", keys(writer.files))
	}
	listing := string(writer.files["index.html"])
	// Listing follows catalog order: newest first.
	if listing != "listing:/b,/a" {
		t.Fatalf("unexpected listing output: %q", listing)
	}
}

func TestBuildIsolatesPageFailures(t *testing.T) {
	cat := buildTestCatalog(t,
		testRaw("A", "/a", "alpha", time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)),
		testRaw("Bad", "/bad", "explode", time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)),
		testRaw("B", "/b", "beta", time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)),
	)
	svc, writer := newTestService(t, Config{OutputDir: "out", GenerateSitemap: true}, cat, &stubParser{failOn: "explode"})

	result, err := svc.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("Build should tolerate page failures: %v", err)
	}

	if result.PagesBuilt != 3 {
		t.Fatalf("expected 2 posts + listing built, got %d", result.PagesBuilt)
	}
	if result.PagesFailed != 1 {
		t.Fatalf("expected 1 failed page, got %d", result.PagesFailed)
	}
	if len(result.Errors) != 1 || !errors.Is(result.Errors[0], ErrRenderFailed) {
		t.Fatalf("expected one RenderError, got %v", result.Errors)
	}

	var renderErr *RenderError
	if !errors.As(result.Errors[0], &renderErr) {
		t.Fatalf("expected *RenderError, got %T", result.Errors[0])
	}
	if renderErr.Route != "/bad" || renderErr.File != "bad.md" {
		t.Fatalf("expected route and file in error, got %+v", renderErr)
	}

	if _, ok := writer.files["bad/index.html"]; ok {
		t.Fatalf("failed page must not be written")
	}
	// The listing still links every post, including the failed one.
	if listing := string(writer.files["index.html"]); listing != "listing:/b,/bad,/a" {
		t.Fatalf("unexpected listing output: %q", listing)
	}
	// The sitemap only advertises pages that rendered.
	sitemap := string(writer.files["sitemap.xml"])
	if strings.Contains(sitemap, "/bad") {
		t.Fatalf("sitemap must omit failed pages: %q", sitemap)
	}
	if !strings.Contains(sitemap, "/a") || !strings.Contains(sitemap, "/b") {
		t.Fatalf("sitemap missing rendered pages: %q", sitemap)
	}
}

func TestBuildDryRunSkipsWrites(t *testing.T) {
	cat := buildTestCatalog(t,
		testRaw("A", "/a", "alpha", time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)),
	)
	svc, writer := newTestService(t, Config{OutputDir: "out"}, cat, nil)

	result, err := svc.Build(context.Background(), BuildOptions{DryRun: true})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !result.DryRun {
		t.Fatalf("expected DryRun flag on result")
	}
	if result.PagesBuilt != 2 {
		t.Fatalf("expected pages rendered during dry run, got %d", result.PagesBuilt)
	}
	if len(writer.files) != 0 {
		t.Fatalf("dry run must not write artifacts: %v", keys(writer.files))
	}
}

func TestBuildTagPages(t *testing.T) {
	cat := buildTestCatalog(t,
		testRaw("A", "/a", "alpha", time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), "Go Modules"),
		testRaw("B", "/b", "beta", time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC), "Go Modules", "tooling"),
	)
	svc, writer := newTestService(t, Config{OutputDir: "out", TagPages: true}, cat, nil)

	result, err := svc.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	// 2 posts + listing + 2 tag archives.
	if result.PagesBuilt != 5 {
		t.Fatalf("expected 5 pages, got %d", result.PagesBuilt)
	}
	if got := string(writer.files["tags/go-modules/index.html"]); got != "tag:go-modules:2" {
		t.Fatalf("unexpected tag archive output: %q", got)
	}
	if got := string(writer.files["tags/tooling/index.html"]); got != "tag:tooling:1" {
		t.Fatalf("unexpected tag archive output: %q", got)
	}
}

func TestBuildFeedsAndRobots(t *testing.T) {
	cat := buildTestCatalog(t,
		testRaw("A", "/a", "alpha", time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)),
	)
	svc, writer := newTestService(t, Config{
		OutputDir:       "out",
		BaseURL:         "https://blog.test",
		GenerateSitemap: true,
		GenerateRobots:  true,
		GenerateFeeds:   true,
	}, cat, nil)

	result, err := svc.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if result.FeedsBuilt != 2 {
		t.Fatalf("expected rss and atom feeds, got %d", result.FeedsBuilt)
	}

	rss := string(writer.files["feed.xml"])
	if !strings.Contains(rss, `<rss version="2.0"`) || !strings.Contains(rss, "https://blog.test/a") {
		t.Fatalf("unexpected rss feed: %q", rss)
	}
	atom := string(writer.files["feed.atom.xml"])
	if !strings.Contains(atom, "http://www.w3.org/2005/Atom") {
		t.Fatalf("unexpected atom feed: %q", atom)
	}
	if !strings.Contains(atom, `<link rel="self" href="https://blog.test/feed.atom.xml" />`) {
		t.Fatalf("atom feed missing self link: %q", atom)
	}
	if !strings.Contains(rss, `<atom:link href="https://blog.test/feed.xml" rel="self"`) {
		t.Fatalf("rss feed missing self link: %q", rss)
	}
	robots := string(writer.files["robots.txt"])
	if !strings.Contains(robots, "Sitemap: https://blog.test/sitemap.xml") {
		t.Fatalf("robots should reference sitemap: %q", robots)
	}
}

// Artifact links must come from the injected route table, not from ad hoc
// concatenation against the configured base URL.
func TestBuildArtifactLinksFollowRouteTable(t *testing.T) {
	cat := buildTestCatalog(t,
		testRaw("A", "/a", "alpha", time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), "golang"),
	)
	fixed := time.Date(2021, 7, 1, 12, 0, 0, 0, time.UTC)
	svc, ok := NewService(Config{
		OutputDir:       "out",
		BaseURL:         "https://blog.test",
		GenerateSitemap: true,
		GenerateRobots:  true,
		GenerateFeeds:   true,
		TagPages:        true,
	}, Dependencies{
		Catalog:  cat,
		Parser:   &stubParser{},
		Renderer: stubRenderer{},
		Routes:   NewRoutes("https://links.test"),
		Now:      func() time.Time { return fixed },
	}).(*service)
	if !ok {
		t.Fatalf("expected *service implementation")
	}
	writer := newMemWriter()
	svc.newWriter = func(bool) artifactWriter { return writer }

	if _, err := svc.Build(context.Background(), BuildOptions{}); err != nil {
		t.Fatalf("Build: %v", err)
	}

	robots := string(writer.files["robots.txt"])
	if !strings.Contains(robots, "Sitemap: https://links.test/sitemap.xml") {
		t.Fatalf("robots ignored the route table: %q", robots)
	}
	atom := string(writer.files["feed.atom.xml"])
	if !strings.Contains(atom, `href="https://links.test/feed.atom.xml"`) {
		t.Fatalf("atom self link ignored the route table: %q", atom)
	}
	if !strings.Contains(atom, `<link rel="alternate" href="https://links.test/" />`) {
		t.Fatalf("atom alternate link ignored the route table: %q", atom)
	}
	rss := string(writer.files["feed.xml"])
	if !strings.Contains(rss, `<atom:link href="https://links.test/feed.xml"`) {
		t.Fatalf("rss self link ignored the route table: %q", rss)
	}
	if !strings.Contains(rss, "<link>https://links.test/a</link>") {
		t.Fatalf("rss item link ignored the route table: %q", rss)
	}
	if _, ok := writer.files["tags/golang/index.html"]; !ok {
		t.Fatalf("expected tag archive from route table, wrote %v", keys(writer.files))
	}
}

func TestBuildDeterministicAcrossRuns(t *testing.T) {
	newCatalog := func() *catalog.Catalog {
		return buildTestCatalog(t,
			testRaw("A", "/a", "alpha", time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)),
			testRaw("B", "/b", "beta", time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)),
		)
	}
	cfg := Config{OutputDir: "out", BaseURL: "https://blog.test", GenerateSitemap: true, GenerateFeeds: true}

	first, firstWriter := newTestService(t, cfg, newCatalog(), nil)
	if _, err := first.Build(context.Background(), BuildOptions{}); err != nil {
		t.Fatalf("first Build: %v", err)
	}
	second, secondWriter := newTestService(t, cfg, newCatalog(), nil)
	if _, err := second.Build(context.Background(), BuildOptions{}); err != nil {
		t.Fatalf("second Build: %v", err)
	}

	if len(firstWriter.files) != len(secondWriter.files) {
		t.Fatalf("artifact sets differ: %d vs %d", len(firstWriter.files), len(secondWriter.files))
	}
	for path, content := range firstWriter.files {
		if !bytes.Equal(content, secondWriter.files[path]) {
			t.Fatalf("artifact %s differs across runs", path)
		}
	}
}

func TestBuildMissingDependencies(t *testing.T) {
	cat := buildTestCatalog(t)

	if _, err := NewService(Config{}, Dependencies{Parser: &stubParser{}, Renderer: stubRenderer{}}).Build(context.Background(), BuildOptions{}); !errors.Is(err, errCatalogRequired) {
		t.Fatalf("expected errCatalogRequired, got %v", err)
	}
	if _, err := NewService(Config{}, Dependencies{Catalog: cat, Renderer: stubRenderer{}}).Build(context.Background(), BuildOptions{}); !errors.Is(err, errParserRequired) {
		t.Fatalf("expected errParserRequired, got %v", err)
	}
	if _, err := NewService(Config{}, Dependencies{Catalog: cat, Parser: &stubParser{}}).Build(context.Background(), BuildOptions{}); !errors.Is(err, errRendererRequired) {
		t.Fatalf("expected errRendererRequired, got %v", err)
	}
}

func TestBuildOutputPath(t *testing.T) {
	cases := map[string]string{
		"/":            "index.html",
		"":             "index.html",
		"/hello":       "hello/index.html",
		"/a/b/c":       "a/b/c/index.html",
		"no-slash":     "no-slash/index.html",
		"/trailing/":   "trailing/index.html",
		"/tags/golang": "tags/golang/index.html",
	}
	for route, want := range cases {
		if got := buildOutputPath(route); got != want {
			t.Fatalf("buildOutputPath(%q) = %q, want %q", route, got, want)
		}
	}
}

func keys(files map[string][]byte) []string {
	out := make([]string, 0, len(files))
	for key := range files {
		out = append(out, key)
	}
	return out
}
