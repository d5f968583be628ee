package generator

import (
	"path"
	"strings"
)

// buildOutputPath maps a public route onto its on-disk artifact, using the
// directory/index.html layout so routes stay extension-free.
func buildOutputPath(route string) string {
	clean := strings.Trim(strings.TrimSpace(route), "/")
	if clean == "" {
		return "index.html"
	}
	return path.Join(clean, "index.html")
}
