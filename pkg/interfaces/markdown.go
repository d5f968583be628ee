package interfaces

// MarkdownParser defines how raw Markdown bytes are converted into HTML.
// Implementations should be stateless so a single instance can be shared
// across concurrent page renders without additional locking.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown parsing behaviour, keeping option names
// readable for configuration unmarshalling and CLI flags.
type ParseOptions struct {
	// Extensions selects named goldmark extensions (gfm, table, footnote, ...).
	Extensions []string
	// HardWraps renders single newlines as <br> elements.
	HardWraps bool
	// SafeMode suppresses raw HTML passthrough in post bodies.
	SafeMode bool
	// Sanitize is treated like SafeMode until a dedicated sanitiser lands.
	Sanitize bool
	// ExternalLinkTarget, when set (e.g. "_blank"), is applied as the target
	// attribute on absolute http(s) links, together with rel="noopener".
	ExternalLinkTarget string
}
