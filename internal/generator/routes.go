package generator

import (
	"strings"

	urlkit "github.com/goliatone/go-urlkit"
)

const routeGroup = "site"

// Routes builds the public URLs for non-post pages through a go-urlkit
// route group; post permalinks are base URL plus the post path, since post
// routes are free-form multi-segment paths authored in front matter.
type Routes struct {
	manager *urlkit.RouteManager
	baseURL string
}

// NewRoutes constructs the route table for the supplied site base URL. An
// empty base URL yields site-relative links.
func NewRoutes(baseURL string) *Routes {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	manager := urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    routeGroup,
				BaseURL: base,
				Paths: map[string]string{
					"home":    "/",
					"tag":     "/tags/:slug",
					"feed":    "/feed.xml",
					"atom":    "/feed.atom.xml",
					"sitemap": "/sitemap.xml",
				},
			},
		},
	})

	return &Routes{
		manager: manager,
		baseURL: base,
	}
}

// Home returns the absolute URL of the listing page.
func (r *Routes) Home() string {
	return r.build("home", nil)
}

// Tag returns the absolute URL of a tag archive.
func (r *Routes) Tag(slug string) string {
	return r.build("tag", map[string]any{"slug": slug})
}

// Feed returns the absolute URL of the RSS feed.
func (r *Routes) Feed() string {
	return r.build("feed", nil)
}

// Atom returns the absolute URL of the Atom feed.
func (r *Routes) Atom() string {
	return r.build("atom", nil)
}

// Sitemap returns the absolute URL of the sitemap.
func (r *Routes) Sitemap() string {
	return r.build("sitemap", nil)
}

// Post returns the absolute URL of a post route.
func (r *Routes) Post(path string) string {
	normalized := strings.TrimSpace(path)
	if normalized == "" {
		normalized = "/"
	}
	if !strings.HasPrefix(normalized, "/") {
		normalized = "/" + normalized
	}
	return r.baseURL + normalized
}

// TagRoute returns the site-relative route of a tag archive, used for
// hrefs and output paths. The route comes from the same table as Tag, with
// the base URL stripped.
func (r *Routes) TagRoute(slug string) string {
	return r.relative(r.Tag(slug))
}

func (r *Routes) relative(url string) string {
	if r != nil && r.baseURL != "" {
		url = strings.TrimPrefix(url, r.baseURL)
	}
	if url == "" {
		return "/"
	}
	if !strings.HasPrefix(url, "/") {
		url = "/" + url
	}
	return url
}

func (r *Routes) build(route string, params map[string]any) string {
	if r == nil || r.manager == nil {
		return ""
	}
	group := r.manager.Group(routeGroup)
	if group == nil {
		return r.baseURL
	}
	builder := group.Builder(route)
	for key, value := range params {
		builder = builder.WithParam(key, value)
	}
	url, err := builder.Build()
	if err != nil {
		return r.baseURL
	}
	return url
}
