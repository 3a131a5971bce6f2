package lisp

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ArgSpec is a set of flags describing how many arguments a callable accepts
// and whether they are evaluated before the call.
type ArgSpec uint

// Possible ArgSpec flags.  VarFixed, VarMin and VarMax may be combined.
const (
	VarFixed   ArgSpec = 0x0001
	VarMin     ArgSpec = 0x0010
	VarMax     ArgSpec = 0x0100
	UnevalArgs ArgSpec = 0x1000
)

// Has returns true if all bits of flag are set in s.
func (s ArgSpec) Has(flag ArgSpec) bool {
	return s&flag == flag
}

// Check reports whether nargs arguments satisfy s given the declared count n.
func (s ArgSpec) Check(n int, nargs int) bool {
	if s.Has(VarFixed) && nargs != n {
		return false
	}
	if s.Has(VarMin) && nargs < n {
		return false
	}
	if s.Has(VarMax) && nargs > n {
		return false
	}
	return true
}

// Describe renders the argument count accepted by s for use in messages.
func (s ArgSpec) Describe(n int) string {
	noun := "arguments"
	if n == 1 {
		noun = "argument"
	}
	switch {
	case s.Has(VarFixed):
		return fmt.Sprintf("exactly %d %s", n, noun)
	case s.Has(VarMin) && s.Has(VarMax):
		return fmt.Sprintf("exactly %d %s", n, noun)
	case s.Has(VarMin):
		return fmt.Sprintf("at least %d %s", n, noun)
	case s.Has(VarMax):
		return fmt.Sprintf("at most %d %s", n, noun)
	}
	return "any number of arguments"
}

func (s ArgSpec) String() string {
	var flags []string
	if s.Has(VarFixed) {
		flags = append(flags, "VAR_FIXED")
	}
	if s.Has(VarMin) {
		flags = append(flags, "VAR_MIN")
	}
	if s.Has(VarMax) {
		flags = append(flags, "VAR_MAX")
	}
	if s.Has(UnevalArgs) {
		flags = append(flags, "UNEVAL_ARGS")
	}
	if len(flags) == 0 {
		return "0"
	}
	return strings.Join(flags, "|")
}

// Callable is implemented by values that may appear at the head of a call
// expression, *Builtin and *Function.
type Callable interface {
	LVal
	Arity() (ArgSpec, int)
	Call(rt *Runtime, args *List) LVal
}

// BuiltinFunc is a native function exposed to lisp code.  A BuiltinFunc
// receives its arguments as a single list, Nil when there are none, and
// returns a value.  To signal failure a BuiltinFunc returns the result of
// rt.Errorf.
type BuiltinFunc func(rt *Runtime, args *List) LVal

// Builtin is a BUILTIN value.
type Builtin struct {
	quote
	Name      string
	Fn        BuiltinFunc
	Spec      ArgSpec
	NumParams int
}

// NewBuiltin returns a BUILTIN value wrapping fn.
func NewBuiltin(name string, spec ArgSpec, n int, fn BuiltinFunc) *Builtin {
	return &Builtin{
		Name:      name,
		Fn:        fn,
		Spec:      spec,
		NumParams: n,
	}
}

// Type implements LVal.
func (v *Builtin) Type() LValType { return LBuiltin }

// Copy implements LVal.  The native function is shared.
func (v *Builtin) Copy() LVal {
	cp := *v
	return &cp
}

func (v *Builtin) String() string {
	return "<builtin " + v.Name + ">"
}

// Arity implements Callable.
func (v *Builtin) Arity() (ArgSpec, int) {
	return v.Spec, v.NumParams
}

// Call implements Callable.  Call does not check args against v's ArgSpec.
func (v *Builtin) Call(rt *Runtime, args *List) LVal {
	return v.Fn(rt, args)
}

// BuiltinDef is a named native function with an arity.
type BuiltinDef interface {
	Name() string
	Arity() (ArgSpec, int)
	Eval(rt *Runtime, args *List) LVal
}

type langBuiltin struct {
	name string
	spec ArgSpec
	n    int
	fun  BuiltinFunc
}

// NewBuiltinDef returns a BuiltinDef which may be passed to WithBuiltins.
func NewBuiltinDef(name string, spec ArgSpec, n int, fn BuiltinFunc) BuiltinDef {
	return &langBuiltin{name, spec, n, fn}
}

func (fun *langBuiltin) Name() string {
	return fun.name
}

func (fun *langBuiltin) Arity() (ArgSpec, int) {
	return fun.spec, fun.n
}

func (fun *langBuiltin) Eval(rt *Runtime, args *List) LVal {
	return fun.fun(rt, args)
}

var userBuiltins []*langBuiltin
var langBuiltins = []*langBuiltin{
	{"load-string", VarFixed, 1, builtinLoadString},
	{"read-string", VarFixed, 1, builtinReadString},
	{"set", VarFixed, 2, builtinSet},
	{"makunbound", VarFixed, 1, builtinMakunbound},
	{"boundp", VarFixed, 1, builtinBoundP},
	{"eval", VarFixed, 1, builtinEval},
	{"funcall", VarMin, 1, builtinFuncall},
	{"apply", VarFixed, 2, builtinApply},
	{"error", VarMin, 1, builtinError},
	{"car", VarFixed, 1, builtinCAR},
	{"cdr", VarFixed, 1, builtinCDR},
	{"cons", VarFixed, 2, builtinCons},
	{"list", VarMin, 0, builtinList},
	{"length", VarFixed, 1, builtinLength},
	{"null", VarFixed, 1, builtinNot},
	{"not", VarFixed, 1, builtinNot},
	{"equal", VarFixed, 2, builtinEqual},
	{"eq", VarFixed, 2, builtinEq},
	{"concat", VarMin, 0, builtinConcat},
	{"print", VarFixed, 1, builtinPrint},
	{"debug-print", VarMin, 0, builtinDebugPrint},
	{"debug-stack", VarFixed, 0, builtinDebugStack},
}

// RegisterDefaultBuiltin adds the given function to the list returned by
// DefaultBuiltins.
func RegisterDefaultBuiltin(name string, spec ArgSpec, n int, fn BuiltinFunc) {
	userBuiltins = append(userBuiltins, &langBuiltin{name, spec, n, fn})
}

// DefaultBuiltins returns the default set of BuiltinDefs added to a Runtime
// by Initialize: special operators, operators, language builtins and any
// builtins added with RegisterDefaultBuiltin.
func DefaultBuiltins() []BuiltinDef {
	var defs []BuiltinDef
	for _, table := range [][]*langBuiltin{langSpecialOps, langOperators, langBuiltins, userBuiltins} {
		for i := range table {
			defs = append(defs, table[i])
		}
	}
	return defs
}

// DefineBuiltin binds a BUILTIN wrapping fn to the constant name.  An
// existing builtin of the same name is replaced.  Other constants, such as t
// and nil, cannot be replaced.
func (rt *Runtime) DefineBuiltin(name string, spec ArgSpec, n int, fn BuiltinFunc) error {
	if fn == nil {
		return Errorf(RuntimeError, "builtin has no function: %s", name)
	}
	if b, ok := rt.Symbols.Peek(name); ok && b.Constant {
		if _, isBuiltin := b.Value.(*Builtin); !isBuiltin {
			return Errorf(ConstantViolation, "cannot rebind constant: %s", name)
		}
	}
	rt.Symbols.Define(name, NewBuiltin(name, spec, n, fn), true)
	return nil
}

func builtinLoadString(rt *Runtime, args *List) LVal {
	s, ok := args.Cells[0].(*String)
	if !ok {
		return rt.Errorf(TypeError, "first argument is not a string: %v", args.Cells[0].Type())
	}
	if rt.Reader == nil {
		return rt.Errorf(RuntimeError, "no reader configured")
	}
	src := rt.Reader.NewFormReader("load-string", strings.NewReader(s.Value))
	var result LVal = Nil
	for {
		v, err := src.ReadForm()
		if err != nil {
			if isEOF(err) {
				return result
			}
			return rt.fail(err)
		}
		result = rt.eval(v)
		if result == nil {
			return nil
		}
	}
}

func builtinReadString(rt *Runtime, args *List) LVal {
	s, ok := args.Cells[0].(*String)
	if !ok {
		return rt.Errorf(TypeError, "first argument is not a string: %v", args.Cells[0].Type())
	}
	if rt.Reader == nil {
		return rt.Errorf(RuntimeError, "no reader configured")
	}
	src := rt.Reader.NewFormReader("read-string", strings.NewReader(s.Value))
	v, err := src.ReadForm()
	if err != nil {
		if isEOF(err) {
			return rt.Errorf(SyntaxError, "no form in string")
		}
		return rt.fail(err)
	}
	return v
}

func builtinSet(rt *Runtime, args *List) LVal {
	sym, ok := args.Cells[0].(*Symbol)
	if !ok {
		return rt.Errorf(TypeError, "first argument is not a symbol: %v", args.Cells[0].Type())
	}
	return rt.Set(sym.Name, args.Cells[1])
}

func builtinMakunbound(rt *Runtime, args *List) LVal {
	sym, ok := args.Cells[0].(*Symbol)
	if !ok {
		return rt.Errorf(TypeError, "first argument is not a symbol: %v", args.Cells[0].Type())
	}
	if rt.scope != nil {
		if _, ok := rt.scope.vars[sym.Name]; ok {
			return rt.Errorf(RuntimeError, "cannot unbind local variable: %s", sym.Name)
		}
	}
	err := rt.Symbols.Unbind(sym.Name)
	if err != nil {
		return rt.fail(err)
	}
	return sym
}

func builtinBoundP(rt *Runtime, args *List) LVal {
	sym, ok := args.Cells[0].(*Symbol)
	if !ok {
		return rt.Errorf(TypeError, "first argument is not a symbol: %v", args.Cells[0].Type())
	}
	if rt.scope != nil {
		if _, ok := rt.scope.vars[sym.Name]; ok {
			return T
		}
	}
	b, ok := rt.Symbols.Peek(sym.Name)
	return Bool(ok && b.IsBound())
}

func builtinEval(rt *Runtime, args *List) LVal {
	return rt.eval(args.Cells[0])
}

func builtinFuncall(rt *Runtime, args *List) LVal {
	fun, ok := args.Cells[0].(Callable)
	if !ok {
		return rt.Errorf(NotCallable, "first argument is not a function: %v", args.Cells[0].Type())
	}
	return rt.Apply(fun, NewList(args.Cells[1:]...))
}

func builtinApply(rt *Runtime, args *List) LVal {
	fun, ok := args.Cells[0].(Callable)
	if !ok {
		return rt.Errorf(NotCallable, "first argument is not a function: %v", args.Cells[0].Type())
	}
	lis, ok := args.Cells[1].(*List)
	if !ok {
		return rt.Errorf(TypeError, "second argument is not a list: %v", args.Cells[1].Type())
	}
	return rt.Apply(fun, NewList(lis.Cells...))
}

func builtinError(rt *Runtime, args *List) LVal {
	var buf bytes.Buffer
	for i, arg := range args.Cells {
		if i > 0 {
			buf.WriteString(" ")
		}
		if s, ok := arg.(*String); ok {
			buf.WriteString(s.Value)
		} else {
			buf.WriteString(arg.String())
		}
	}
	return rt.Errorf(RuntimeError, "%s", buf.String())
}

func builtinCAR(rt *Runtime, args *List) LVal {
	lis, ok := args.Cells[0].(*List)
	if !ok {
		return rt.Errorf(TypeError, "argument is not a list: %v", args.Cells[0].Type())
	}
	if lis.IsNil() {
		return Nil
	}
	return lis.Cells[0]
}

func builtinCDR(rt *Runtime, args *List) LVal {
	lis, ok := args.Cells[0].(*List)
	if !ok {
		return rt.Errorf(TypeError, "argument is not a list: %v", args.Cells[0].Type())
	}
	if lis.Len() <= 1 {
		return Nil
	}
	return NewList(lis.Cells[1:]...)
}

func builtinCons(rt *Runtime, args *List) LVal {
	tail, ok := args.Cells[1].(*List)
	if !ok {
		return rt.Errorf(TypeError, "second argument is not a list: %v", args.Cells[1].Type())
	}
	cells := make([]LVal, 0, tail.Len()+1)
	cells = append(cells, args.Cells[0])
	cells = append(cells, tail.Cells...)
	return NewList(cells...)
}

func builtinList(rt *Runtime, args *List) LVal {
	return NewList(args.Cells...)
}

func builtinLength(rt *Runtime, args *List) LVal {
	switch v := args.Cells[0].(type) {
	case *List:
		return Integer(v.Len())
	case *String:
		return Integer(utf8.RuneCountInString(v.Value))
	}
	return rt.Errorf(TypeError, "argument is not a list or string: %v", args.Cells[0].Type())
}

func builtinNot(rt *Runtime, args *List) LVal {
	return Bool(!IsTrue(args.Cells[0]))
}

func builtinEqual(rt *Runtime, args *List) LVal {
	return Bool(Equal(args.Cells[0], args.Cells[1]))
}

func builtinEq(rt *Runtime, args *List) LVal {
	a, b := args.Cells[0], args.Cells[1]
	switch a := a.(type) {
	case *List:
		if bl, ok := b.(*List); ok && a.IsNil() && bl.IsNil() {
			return T
		}
		return Bool(LVal(a) == b)
	case *Function, *Builtin:
		return Bool(LVal(a) == b)
	}
	return Bool(Equal(a, b))
}

func builtinConcat(rt *Runtime, args *List) LVal {
	var buf bytes.Buffer
	for i, arg := range args.Cells {
		s, ok := arg.(*String)
		if !ok {
			return rt.Errorf(TypeError, "argument %d is not a string: %v", i, arg.Type())
		}
		buf.WriteString(s.Value)
	}
	return Str(buf.String())
}

func builtinPrint(rt *Runtime, args *List) LVal {
	_, err := Fprintln(rt.Stdout, args.Cells[0])
	if err != nil {
		return rt.Errorf(RuntimeError, "print: %v", err)
	}
	return args.Cells[0]
}

func builtinDebugPrint(rt *Runtime, args *List) LVal {
	fmtargs := make([]interface{}, len(args.Cells))
	for i := range args.Cells {
		fmtargs[i] = args.Cells[i]
	}
	fmt.Fprintln(rt.Stderr, fmtargs...)
	return Nil
}

func builtinDebugStack(rt *Runtime, args *List) LVal {
	rt.Stack.DebugPrint(rt.Stderr)
	return Nil
}
