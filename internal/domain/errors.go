package domain

import (
	"errors"
	"fmt"
)

// Error kinds reported by a sync cycle. Adapters wrap their failures with one
// of these so callers can classify with errors.Is.
var (
	ErrTransport = errors.New("transport error")
	ErrFormat    = errors.New("format error")
	ErrStore     = errors.New("store error")
	ErrNotFound  = errors.New("not found")
)

// FormatError describes why a forecast payload was rejected. Index is the
// position of the offending array element, or -1 for the document itself.
type FormatError struct {
	Index int
	Field string
	Err   error
}

func (e *FormatError) Error() string {
	switch {
	case e.Index < 0:
		return fmt.Sprintf("format error: %v", e.Err)
	case e.Field == "":
		return fmt.Sprintf("format error: element %d: %v", e.Index, e.Err)
	default:
		return fmt.Sprintf("format error: element %d: field %q: %v", e.Index, e.Field, e.Err)
	}
}

func (e *FormatError) Unwrap() error { return e.Err }

// Is reports FormatError as an ErrFormat.
func (e *FormatError) Is(target error) bool { return target == ErrFormat }
