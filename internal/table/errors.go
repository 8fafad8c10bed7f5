package table

import (
	"errors"
	"fmt"
)

// ErrMissingSource indicates that no data file exists at the resolved
// path and no upload was provided.
var ErrMissingSource = errors.New("no data source found")

// LoadError indicates the source exists but could not be parsed
// (corrupt archive, malformed rows, unsupported extension).
type LoadError struct {
	Name string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Name, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
