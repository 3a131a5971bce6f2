package lisp

import (
	"fmt"
	"io"
)

// Config is a function that configures a Runtime.
type Config func(rt *Runtime) error

// WithMaximumStackHeight returns a Config that will prevent a runtime from
// allowing its call stack to exceed n frames.  A value of zero removes the
// limit.
func WithMaximumStackHeight(n int) Config {
	return func(rt *Runtime) error {
		if n < 0 {
			return fmt.Errorf("negative maximum stack height: %d", n)
		}
		rt.Stack.MaxHeight = n
		return nil
	}
}

// WithReader returns a Config that makes a runtime use r to parse source
// streams.  There is no default Reader for a runtime.
func WithReader(r Reader) Config {
	return func(rt *Runtime) error {
		rt.Reader = r
		return nil
	}
}

// WithStdout returns a Config that makes a runtime write program output to w
// instead of the default, os.Stdout.
func WithStdout(w io.Writer) Config {
	return func(rt *Runtime) error {
		rt.Stdout = w
		return nil
	}
}

// WithStderr returns a Config that makes a runtime write debugging output to
// w instead of the default, os.Stderr.
func WithStderr(w io.Writer) Config {
	return func(rt *Runtime) error {
		rt.Stderr = w
		return nil
	}
}

// WithBuiltins returns a Config that registers defs as builtins.  Builtins
// registered this way replace default builtins of the same name.
func WithBuiltins(defs ...BuiltinDef) Config {
	return func(rt *Runtime) error {
		for _, def := range defs {
			spec, n := def.Arity()
			err := rt.DefineBuiltin(def.Name(), spec, n, def.Eval)
			if err != nil {
				return err
			}
		}
		return nil
	}
}
