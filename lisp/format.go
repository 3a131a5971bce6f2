package lisp

import (
	"io"
)

// Fprint writes the printed form of v to w.  A nil v, the failure sentinel,
// is written as nothing.
func Fprint(w io.Writer, v LVal) (int, error) {
	if v == nil {
		return 0, nil
	}
	return io.WriteString(w, v.String())
}

// Fprintln writes the printed form of v to w followed by a newline.
func Fprintln(w io.Writer, v LVal) (int, error) {
	n, err := Fprint(w, v)
	if err != nil {
		return n, err
	}
	_n, err := io.WriteString(w, "\n")
	return n + _n, err
}
