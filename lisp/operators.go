package lisp

import (
	"math"
	"math/bits"
)

var langOperators = []*langBuiltin{
	{"+", VarFixed, 2, builtinAdd},
	{"-", VarFixed, 2, builtinSub},
	{"*", VarFixed, 2, builtinMul},
	{"/", VarFixed, 2, builtinDiv},
	{"mod", VarFixed, 2, builtinMod},
	{"=", VarFixed, 2, builtinEqNum},
	{"<", VarFixed, 2, builtinLT},
	{">", VarFixed, 2, builtinGT},
	{"<=", VarFixed, 2, builtinLEq},
	{">=", VarFixed, 2, builtinGEq},
}

// IntArgs extracts integers from args on behalf of the builtin name.  If any
// argument is not an integer IntArgs sets a TypeError on rt and returns
// false.
func IntArgs(rt *Runtime, name string, args *List) ([]int, bool) {
	xs := make([]int, args.Len())
	for i, arg := range args.Cells {
		x, ok := arg.(*Int)
		if !ok {
			rt.Errorf(TypeError, "%s: argument %d is not an integer: %v", name, i, arg.Type())
			return nil, false
		}
		xs[i] = x.Value
	}
	return xs, true
}

func builtinAdd(rt *Runtime, args *List) LVal {
	x, ok := IntArgs(rt, "+", args)
	if !ok {
		return nil
	}
	sum := x[0] + x[1]
	if (x[0] >= 0) == (x[1] >= 0) && (sum >= 0) != (x[0] >= 0) {
		return rt.Errorf(ArithmeticError, "+: integer overflow")
	}
	return Integer(sum)
}

func builtinSub(rt *Runtime, args *List) LVal {
	x, ok := IntArgs(rt, "-", args)
	if !ok {
		return nil
	}
	diff := x[0] - x[1]
	if (x[0] >= 0) != (x[1] >= 0) && (diff >= 0) != (x[0] >= 0) {
		return rt.Errorf(ArithmeticError, "-: integer overflow")
	}
	return Integer(diff)
}

func builtinMul(rt *Runtime, args *List) LVal {
	x, ok := IntArgs(rt, "*", args)
	if !ok {
		return nil
	}
	if mulOverflows(x[0], x[1]) {
		return rt.Errorf(ArithmeticError, "*: integer overflow")
	}
	return Integer(x[0] * x[1])
}

func builtinDiv(rt *Runtime, args *List) LVal {
	x, ok := IntArgs(rt, "/", args)
	if !ok {
		return nil
	}
	if x[1] == 0 {
		return rt.Errorf(ArithmeticError, "/: division by zero")
	}
	if x[0] == math.MinInt && x[1] == -1 {
		return rt.Errorf(ArithmeticError, "/: integer overflow")
	}
	return Integer(x[0] / x[1])
}

func builtinMod(rt *Runtime, args *List) LVal {
	x, ok := IntArgs(rt, "mod", args)
	if !ok {
		return nil
	}
	if x[1] == 0 {
		return rt.Errorf(ArithmeticError, "mod: division by zero")
	}
	if x[1] == -1 {
		return Integer(0)
	}
	return Integer(x[0] % x[1])
}

func compareInts(rt *Runtime, name string, args *List, fn func(a, b int) bool) LVal {
	x, ok := IntArgs(rt, name, args)
	if !ok {
		return nil
	}
	return Bool(fn(x[0], x[1]))
}

func builtinEqNum(rt *Runtime, args *List) LVal {
	return compareInts(rt, "=", args, func(a, b int) bool { return a == b })
}

func builtinLT(rt *Runtime, args *List) LVal {
	return compareInts(rt, "<", args, func(a, b int) bool { return a < b })
}

func builtinGT(rt *Runtime, args *List) LVal {
	return compareInts(rt, ">", args, func(a, b int) bool { return a > b })
}

func builtinLEq(rt *Runtime, args *List) LVal {
	return compareInts(rt, "<=", args, func(a, b int) bool { return a <= b })
}

func builtinGEq(rt *Runtime, args *List) LVal {
	return compareInts(rt, ">=", args, func(a, b int) bool { return a >= b })
}

// mulOverflows reports whether a*b does not fit in an int.
func mulOverflows(a, b int) bool {
	if a == 0 || b == 0 {
		return false
	}
	neg := (a < 0) != (b < 0)
	hi, lo := bits.Mul64(absUint(a), absUint(b))
	if hi != 0 {
		return true
	}
	if neg {
		return lo > uint64(math.MaxInt)+1
	}
	return lo > uint64(math.MaxInt)
}

func absUint(x int) uint64 {
	if x < 0 {
		return uint64(-(x + 1)) + 1
	}
	return uint64(x)
}
