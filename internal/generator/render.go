package generator

import (
	"time"

	"github.com/google/uuid"
)

// Template names resolved through the TemplateRenderer. The default
// html/template renderer ships one file per name.
const (
	templatePost    = "post"
	templateListing = "listing"
	templateTag     = "tag"
)

// SiteMetadata exposes site-wide information required by templates.
type SiteMetadata struct {
	Title       string
	Description string
	BaseURL     string
}

// BuildMetadata surfaces high level build information to templates.
type BuildMetadata struct {
	GeneratedAt time.Time
}

// PostEntry is one listing row: enough to link and describe a post without
// carrying its body.
type PostEntry struct {
	Title       string
	Summary     string
	Route       string
	Permalink   string
	Date        time.Time
	ReadingTime string
}

// TagRef links a display tag to its archive route.
type TagRef struct {
	Name  string
	Slug  string
	Route string
}

// PostContext is the data contract for the post template. Body carries the
// already-converted HTML; the template marks it safe explicitly.
type PostContext struct {
	Site  SiteMetadata
	Build BuildMetadata

	Title       string
	Author      string
	Summary     string
	Route       string
	Permalink   string
	Date        time.Time
	ReadingTime string
	Tags        []TagRef
	Resources   []string
	Body        string
}

// ListingContext is the data contract for the index page template.
type ListingContext struct {
	Site  SiteMetadata
	Build BuildMetadata
	Posts []PostEntry
}

// TagContext is the data contract for a tag archive page.
type TagContext struct {
	Site  SiteMetadata
	Build BuildMetadata
	Tag   string
	Slug  string
	Posts []PostEntry
}

// RenderedPage captures the rendered HTML output for a page.
type RenderedPage struct {
	ID           uuid.UUID
	Route        string
	Output       string
	Template     string
	HTML         string
	LastModified time.Time
	Duration     time.Duration
	Checksum     string
}

// RenderDiagnostic records rendering timing and errors for individual pages.
type RenderDiagnostic struct {
	ID       uuid.UUID
	Route    string
	Template string
	Duration time.Duration
	Err      error
}

type renderOutcome struct {
	page       RenderedPage
	diagnostic RenderDiagnostic
	err        error
}
