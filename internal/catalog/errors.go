package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicatePath indicates two posts collide on the same public route.
var ErrDuplicatePath = errors.New("catalog: duplicate post path")

// DuplicatePathError names both offending source files so the operator can
// fix the colliding front matter. Duplicates are fatal: silently keeping
// one of the two would publish the wrong document at the route.
type DuplicatePathError struct {
	Path      string
	File      string
	OtherFile string
}

func (e *DuplicatePathError) Error() string {
	if e == nil {
		return ErrDuplicatePath.Error()
	}
	path := strings.TrimSpace(e.Path)
	if path == "" {
		return ErrDuplicatePath.Error()
	}
	return fmt.Sprintf("%s: path=%s files=%s,%s", ErrDuplicatePath.Error(), path, e.File, e.OtherFile)
}

func (e *DuplicatePathError) Unwrap() error {
	return ErrDuplicatePath
}
