package lisp

var langSpecialOps = []*langBuiltin{
	{"quote", VarFixed | UnevalArgs, 1, opQuote},
	{"lambda", VarMin | UnevalArgs, 1, opLambda},
	{"defun", VarMin | UnevalArgs, 2, opDefun},
	{"setq", VarFixed | UnevalArgs, 2, opSetq},
	{"progn", VarMin | UnevalArgs, 0, opProgn},
	{"if", VarMin | UnevalArgs, 2, opIf},
	{"while", VarMin | UnevalArgs, 1, opWhile},
	{"or", VarMin | UnevalArgs, 0, opOr},
	{"and", VarMin | UnevalArgs, 0, opAnd},
}

// RegisterDefaultSpecialOp adds the given function to the list returned by
// DefaultBuiltins.  The arguments of a special operator are not evaluated
// before it is called.
func RegisterDefaultSpecialOp(name string, spec ArgSpec, n int, fn BuiltinFunc) {
	RegisterDefaultBuiltin(name, spec|UnevalArgs, n, fn)
}

// (quote expr)
func opQuote(rt *Runtime, args *List) LVal {
	return unquote(args.Cells[0])
}

// (lambda (param ...) body ...)
func opLambda(rt *Runtime, args *List) LVal {
	return rt.lambda("lambda", args.Cells[0], args.Cells[1:])
}

func (rt *Runtime) lambda(name string, formals LVal, body []LVal) LVal {
	params, ok := formals.(*List)
	if !ok {
		return rt.Errorf(TypeError, "%s: parameter list is not a list: %v", name, formals.Type())
	}
	seen := make(map[string]bool, params.Len())
	for _, p := range params.Cells {
		sym, ok := p.(*Symbol)
		if !ok {
			return rt.Errorf(TypeError, "%s: parameter is not a symbol: %v", name, p.Type())
		}
		if b, ok := rt.Symbols.Peek(sym.Name); ok && b.Constant {
			return rt.Errorf(ConstantViolation, "%s: parameter names a constant: %s", name, sym.Name)
		}
		if seen[sym.Name] {
			return rt.Errorf(RuntimeError, "%s: duplicate parameter: %s", name, sym.Name)
		}
		seen[sym.Name] = true
	}
	return NewFunction(unquote(params).(*List), NewList(copyCells(body)...))
}

// (defun name (param ...) body ...)
func opDefun(rt *Runtime, args *List) LVal {
	sym, ok := args.Cells[0].(*Symbol)
	if !ok {
		return rt.Errorf(TypeError, "defun: first argument is not a symbol: %v", args.Cells[0].Type())
	}
	fun := rt.lambda("defun", args.Cells[1], args.Cells[2:])
	if fun == nil {
		return nil
	}
	err := rt.Symbols.Set(sym.Name, fun)
	if err != nil {
		return rt.fail(err)
	}
	return Sym(sym.Name)
}

// (setq symbol expr)
func opSetq(rt *Runtime, args *List) LVal {
	sym, ok := args.Cells[0].(*Symbol)
	if !ok || sym.Quoted() {
		return rt.Errorf(TypeError, "setq: first argument is not a symbol: %v", args.Cells[0])
	}
	v := rt.eval(args.Cells[1])
	if v == nil {
		return nil
	}
	return rt.Set(sym.Name, v)
}

func opProgn(rt *Runtime, args *List) LVal {
	var val LVal = Nil
	for _, c := range args.Cells {
		val = rt.eval(c)
		if val == nil {
			return nil
		}
	}
	return val
}

// (if test-form then-form [else-form])
func opIf(rt *Runtime, args *List) LVal {
	if args.Len() > 3 {
		return rt.Errorf(ArityError, "if: expected at most 3 arguments (got %d)", args.Len())
	}
	r := rt.eval(args.Cells[0])
	if r == nil {
		return nil
	}
	if IsTrue(r) {
		return rt.eval(args.Cells[1])
	}
	if args.Len() < 3 {
		return Nil
	}
	return rt.eval(args.Cells[2])
}

// (while test-form body ...)
func opWhile(rt *Runtime, args *List) LVal {
	for {
		r := rt.eval(args.Cells[0])
		if r == nil {
			return nil
		}
		if !IsTrue(r) {
			return Nil
		}
		for _, c := range args.Cells[1:] {
			if rt.eval(c) == nil {
				return nil
			}
		}
	}
}

func opOr(rt *Runtime, args *List) LVal {
	for _, c := range args.Cells {
		r := rt.eval(c)
		if r == nil {
			return nil
		}
		if IsTrue(r) {
			return r
		}
	}
	return Nil
}

func opAnd(rt *Runtime, args *List) LVal {
	var r LVal = T
	for _, c := range args.Cells {
		r = rt.eval(c)
		if r == nil {
			return nil
		}
		if !IsTrue(r) {
			return Nil
		}
	}
	return r
}
