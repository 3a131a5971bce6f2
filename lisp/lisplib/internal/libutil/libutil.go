package libutil

import "github.com/midnite8177/BasicLisp/lisp"

// Function returns a builtin function definition which requires exactly n
// arguments.
func Function(name string, n int, fn lisp.BuiltinFunc) lisp.BuiltinDef {
	return lisp.NewBuiltinDef(name, lisp.VarFixed, n, fn)
}

// VarFunction returns a builtin function definition which requires at least
// n arguments.
func VarFunction(name string, n int, fn lisp.BuiltinFunc) lisp.BuiltinDef {
	return lisp.NewBuiltinDef(name, lisp.VarMin, n, fn)
}

// StringArg returns the value of args.Cells[i] if it is a string.  Otherwise a
// TypeError is set on rt.
func StringArg(rt *lisp.Runtime, name string, args *lisp.List, i int) (string, bool) {
	s, ok := args.Cells[i].(*lisp.String)
	if !ok {
		rt.Errorf(lisp.TypeError, "%s: argument %d is not a string: %v", name, i, args.Cells[i].Type())
		return "", false
	}
	return s.Value, true
}
