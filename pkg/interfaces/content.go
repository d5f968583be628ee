package interfaces

import "time"

// FrontMatter models the metadata block extracted from a post file. The
// Custom map keeps unrecognised keys available for template authors.
type FrontMatter struct {
	Title     string         `yaml:"title" json:"title"`
	Author    string         `yaml:"author" json:"author"`
	Date      time.Time      `yaml:"date" json:"date"`
	Path      string         `yaml:"path" json:"path"`
	Summary   string         `yaml:"summary" json:"summary"`
	Tags      []string       `yaml:"tags" json:"tags"`
	Resources []string       `yaml:"resources" json:"resources"`
	Draft     bool           `yaml:"draft" json:"draft"`
	Custom    map[string]any `yaml:",inline" json:"custom"`
}

// RawPost represents a single loaded Markdown source file: parsed front
// matter plus the untouched Markdown body. HTML conversion happens later,
// at render time, so loading stays a pure read.
type RawPost struct {
	FilePath     string
	FrontMatter  FrontMatter
	Body         []byte
	LastModified time.Time
	// Checksum stores a SHA-256 digest of the original file content so
	// callers can detect changes without re-reading unchanged files.
	Checksum []byte
}
