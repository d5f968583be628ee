package interfaces

import "io"

// TemplateRenderer abstracts the template engine used to produce output
// pages. The generator only relies on RenderTemplate; the remaining methods
// exist so host-supplied engines can expose their full surface.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
}
