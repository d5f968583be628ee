package generator

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrRenderFailed indicates HTML production failed for a single page.
	ErrRenderFailed = errors.New("generator: page render failed")

	errRendererRequired = errors.New("generator: template renderer is required")
	errParserRequired   = errors.New("generator: markdown parser is required")
	errCatalogRequired  = errors.New("generator: catalog is required")
)

// RenderError isolates a page-level rendering failure. It carries the route
// and the originating source file so the operator can locate the defect;
// the rest of the build proceeds without the page.
type RenderError struct {
	Route string
	File  string
	Err   error
}

func (e *RenderError) Error() string {
	if e == nil {
		return ErrRenderFailed.Error()
	}
	var b strings.Builder
	b.WriteString(ErrRenderFailed.Error())
	if route := strings.TrimSpace(e.Route); route != "" {
		fmt.Fprintf(&b, ": route=%s", route)
	}
	if file := strings.TrimSpace(e.File); file != "" {
		fmt.Fprintf(&b, " file=%s", file)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *RenderError) Unwrap() error {
	return ErrRenderFailed
}
