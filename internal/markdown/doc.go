// Package markdown discovers blog post source files, splits front matter
// from Markdown bodies, and converts Markdown into HTML on demand.
package markdown
