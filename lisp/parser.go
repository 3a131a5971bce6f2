package lisp

import (
	"errors"
	"io"
)

// FormReader reads forms one at a time from a source stream.
type FormReader interface {
	// ReadForm returns the next form in the stream.  When the stream is
	// exhausted ReadForm returns io.EOF.  Malformed input is reported with an
	// *Error of kind SyntaxError.
	ReadForm() (LVal, error)
}

// Reader abstracts a parser implementation so that it may be implemented in a
// separate package as an optional/swappable component.
type Reader interface {
	// NewFormReader returns a FormReader that parses source text from r.
	// The name is used to identify the source in error messages.
	NewFormReader(name string, r io.Reader) FormReader
}

func isEOF(err error) bool {
	return errors.Is(err, io.EOF)
}
