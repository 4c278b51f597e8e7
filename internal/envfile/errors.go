package envfile

import (
	"errors"
	"fmt"
)

// Reasons a line fails to split into a key and a value.
var (
	ErrNoSeparator    = errors.New(`expected "key = value"`)
	ErrExtraSeparator = errors.New(`more than one "=" (strict mode)`)
	ErrEmptyKey       = errors.New("empty key")
)

// FormatError reports a malformed line in a .env file or template.
type FormatError struct {
	Path string // file name, may be empty
	Line int    // 1-based line number, 0 if unknown
	Text string // the offending line as read
	Err  error  // one of ErrNoSeparator, ErrExtraSeparator, ErrEmptyKey
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	var loc string
	switch {
	case e.Path != "" && e.Line > 0:
		loc = fmt.Sprintf("%s:%d: ", e.Path, e.Line)
	case e.Path != "":
		loc = e.Path + ": "
	case e.Line > 0:
		loc = fmt.Sprintf("line %d: ", e.Line)
	}
	return fmt.Sprintf("%s%v: %q", loc, e.Err, e.Text)
}

// Unwrap returns the underlying reason.
func (e *FormatError) Unwrap() error {
	return e.Err
}
