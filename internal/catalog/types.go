package catalog

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	slug "github.com/goliatone/go-slug"
)

// Post is one indexed blog entry. The Markdown body stays raw here; HTML
// conversion happens at render time so a conversion failure can be isolated
// to a single page instead of poisoning the catalog.
type Post struct {
	ID           uuid.UUID
	Title        string
	Author       string
	Summary      string
	Date         time.Time
	Path         string
	Tags         []string
	Resources    []string
	Draft        bool
	Body         []byte
	ReadingTime  ReadingTime
	SourceFile   string
	LastModified time.Time
	Checksum     []byte
}

// Catalog is the full ordered collection of posts for a single build,
// sorted by publication date descending. It is immutable once constructed;
// accessors return copies so callers cannot disturb the ordering.
type Catalog struct {
	posts  []*Post
	byPath map[string]*Post
	byTag  map[string][]*Post
}

// All returns every post in catalog order.
func (c *Catalog) All() []*Post {
	if c == nil {
		return nil
	}
	return append([]*Post(nil), c.posts...)
}

// Len reports the number of posts in the catalog.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.posts)
}

// FindByPath resolves a post by its public route.
func (c *Catalog) FindByPath(path string) (*Post, bool) {
	if c == nil {
		return nil, false
	}
	post, ok := c.byPath[normalizePath(path)]
	return post, ok
}

// WithTag returns the posts carrying the supplied tag, in catalog order.
// Matching is performed on normalized tag slugs.
func (c *Catalog) WithTag(tag string) []*Post {
	if c == nil {
		return nil
	}
	return append([]*Post(nil), c.byTag[tagKey(tag)]...)
}

// Tags returns the sorted set of normalized tag slugs present in the catalog.
func (c *Catalog) Tags() []string {
	if c == nil {
		return nil
	}
	tags := make([]string, 0, len(c.byTag))
	for tag := range c.byTag {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if path != "/" {
		path = strings.TrimRight(path, "/")
	}
	return path
}

// tagKey normalizes a tag into its slug form so "Go Modules" and
// "go-modules" address the same archive.
func tagKey(tag string) string {
	normalized, err := slug.Normalize(strings.TrimSpace(tag))
	if err != nil || normalized == "" {
		return strings.ToLower(strings.TrimSpace(tag))
	}
	return normalized
}

// TagSlug exposes the tag normalization used for archive routes.
func TagSlug(tag string) string {
	return tagKey(tag)
}
