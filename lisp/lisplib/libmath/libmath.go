package libmath

import (
	"math"

	"github.com/midnite8177/BasicLisp/lisp"
	"github.com/midnite8177/BasicLisp/lisp/lisplib/internal/libutil"
)

// Builtins returns the math functions.
func Builtins() []lisp.BuiltinDef {
	return builtins
}

// LoadPackage adds the math functions to rt.
func LoadPackage(rt *lisp.Runtime) error {
	return lisp.WithBuiltins(builtins...)(rt)
}

var builtins = []lisp.BuiltinDef{
	libutil.Function("abs", 1, builtinAbs),
	libutil.VarFunction("min", 1, builtinMin),
	libutil.VarFunction("max", 1, builtinMax),
	libutil.Function("expt", 2, builtinExpt),
}

func builtinAbs(rt *lisp.Runtime, args *lisp.List) lisp.LVal {
	x, ok := lisp.IntArgs(rt, "abs", args)
	if !ok {
		return nil
	}
	if x[0] == math.MinInt {
		return rt.Errorf(lisp.ArithmeticError, "abs: integer overflow")
	}
	if x[0] < 0 {
		return lisp.Integer(-x[0])
	}
	return args.Cells[0]
}

func builtinMin(rt *lisp.Runtime, args *lisp.List) lisp.LVal {
	x, ok := lisp.IntArgs(rt, "min", args)
	if !ok {
		return nil
	}
	m := x[0]
	for _, y := range x[1:] {
		if y < m {
			m = y
		}
	}
	return lisp.Integer(m)
}

func builtinMax(rt *lisp.Runtime, args *lisp.List) lisp.LVal {
	x, ok := lisp.IntArgs(rt, "max", args)
	if !ok {
		return nil
	}
	m := x[0]
	for _, y := range x[1:] {
		if y > m {
			m = y
		}
	}
	return lisp.Integer(m)
}

// (expt base power)
func builtinExpt(rt *lisp.Runtime, args *lisp.List) lisp.LVal {
	x, ok := lisp.IntArgs(rt, "expt", args)
	if !ok {
		return nil
	}
	base, power := x[0], x[1]
	if power < 0 {
		return rt.Errorf(lisp.ArithmeticError, "expt: negative exponent: %d", power)
	}
	result := 1
	for power > 0 {
		if power&1 == 1 {
			result *= base
		}
		power >>= 1
		if power > 0 {
			base *= base
		}
	}
	return lisp.Integer(result)
}
