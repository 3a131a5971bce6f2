// Package lisplib is used to conveniently load the standard library into a
// lisp runtime.
package lisplib

import (
	"github.com/midnite8177/BasicLisp/lisp"
	"github.com/midnite8177/BasicLisp/lisp/lisplib/libmath"
	"github.com/midnite8177/BasicLisp/lisp/lisplib/libregexp"
	"github.com/midnite8177/BasicLisp/lisp/lisplib/libstring"
)

// Builtins returns the builtins of all standard library packages.
func Builtins() []lisp.BuiltinDef {
	var defs []lisp.BuiltinDef
	defs = append(defs, libmath.Builtins()...)
	defs = append(defs, libregexp.Builtins()...)
	defs = append(defs, libstring.Builtins()...)
	return defs
}

// WithLibrary returns a Config that loads the standard library into a
// runtime.
func WithLibrary() lisp.Config {
	return lisp.WithBuiltins(Builtins()...)
}

// LoadLibrary loads the standard library into rt.
func LoadLibrary(rt *lisp.Runtime) error {
	err := libmath.LoadPackage(rt)
	if err != nil {
		return err
	}
	err = libregexp.LoadPackage(rt)
	if err != nil {
		return err
	}
	return libstring.LoadPackage(rt)
}
