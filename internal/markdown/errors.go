package markdown

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedFrontMatter indicates required post metadata is missing or unparsable.
	ErrMalformedFrontMatter = errors.New("markdown: malformed front matter")
)

// MalformedFrontMatterError carries the identity of the offending source
// file. Front matter failures are fatal for the whole build: a silently
// dropped post would corrupt the catalog.
type MalformedFrontMatterError struct {
	File string
	Err  error
}

func (e *MalformedFrontMatterError) Error() string {
	if e == nil {
		return ErrMalformedFrontMatter.Error()
	}
	file := strings.TrimSpace(e.File)
	if file == "" {
		file = "<unknown>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: file=%s: %v", ErrMalformedFrontMatter.Error(), file, e.Err)
	}
	return fmt.Sprintf("%s: file=%s", ErrMalformedFrontMatter.Error(), file)
}

func (e *MalformedFrontMatterError) Unwrap() error {
	return ErrMalformedFrontMatter
}
