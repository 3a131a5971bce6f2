package lisp

func (rt *Runtime) eval(v LVal) LVal {
	if v == nil {
		return rt.Errorf(RuntimeError, "cannot evaluate a missing value")
	}
	if v.Quoted() {
		return unquote(v)
	}
	switch v := v.(type) {
	case *Symbol:
		return rt.Get(v.Name)
	case *List:
		if v.IsNil() {
			return Nil
		}
		return rt.evalCall(v)
	case *Int, *String, *Function, *Builtin, trueType:
		return v
	}
	return rt.Errorf(RuntimeError, "unknown value type: %v", v.Type())
}

func (rt *Runtime) evalCall(expr *List) LVal {
	head := rt.eval(expr.Cells[0])
	if head == nil {
		return nil
	}
	fun, ok := head.(Callable)
	if !ok {
		return rt.Errorf(NotCallable, "first element of expression is not a function: %v", head)
	}
	name := callName(expr.Cells[0], fun)
	args := expr.Cells[1:]
	if !checkArity(fun, len(args)) {
		return rt.arityError(name, fun, len(args))
	}
	spec, _ := fun.Arity()
	if !spec.Has(UnevalArgs) {
		evaled := make([]LVal, len(args))
		for i := range args {
			evaled[i] = rt.eval(args[i])
			if evaled[i] == nil {
				return nil
			}
		}
		args = evaled
	}
	return rt.call(name, fun, NewList(args...))
}

// Apply calls fun with args, which are not evaluated.  Apply checks the
// number of arguments against the arity of fun.
func (rt *Runtime) Apply(fun Callable, args *List) LVal {
	name := callName(nil, fun)
	if !checkArity(fun, args.Len()) {
		return rt.arityError(name, fun, args.Len())
	}
	return rt.call(name, fun, args)
}

func (rt *Runtime) call(name string, fun Callable, args *List) LVal {
	_, builtin := fun.(*Builtin)
	err := rt.Stack.Push(CallFrame{Name: name, Builtin: builtin, NArg: args.Len()})
	if err != nil {
		return rt.fail(err)
	}
	defer rt.Stack.Pop()
	return fun.Call(rt, args)
}

func checkArity(fun Callable, nargs int) bool {
	spec, n := fun.Arity()
	return spec.Check(n, nargs)
}

func (rt *Runtime) arityError(name string, fun Callable, nargs int) LVal {
	spec, n := fun.Arity()
	return rt.Errorf(ArityError, "%s: expected %s (got %d)", name, spec.Describe(n), nargs)
}

func callName(head LVal, fun Callable) string {
	if sym, ok := head.(*Symbol); ok {
		return sym.Name
	}
	if b, ok := fun.(*Builtin); ok {
		return b.Name
	}
	return "lambda"
}

// Arity implements Callable.  A function requires exactly as many arguments
// as it has parameters.
func (v *Function) Arity() (ArgSpec, int) {
	return VarFixed, v.NumParams
}

// Call implements Callable.  The body of v is evaluated in a new scope which
// binds the parameters of v to args.  List arguments are copied so that the
// function cannot modify the caller's data.
func (v *Function) Call(rt *Runtime, args *List) LVal {
	if args.Len() != v.NumParams {
		return rt.Errorf(ArityError, "lambda: expected %s (got %d)", VarFixed.Describe(v.NumParams), args.Len())
	}
	vars := make(map[string]LVal, v.NumParams)
	for i, p := range v.Params.Cells {
		sym, ok := p.(*Symbol)
		if !ok {
			return rt.Errorf(TypeError, "function parameter is not a symbol: %v", p.Type())
		}
		arg := args.Cells[i]
		if lis, ok := arg.(*List); ok {
			arg = lis.Copy()
		}
		vars[sym.Name] = arg
	}
	saved := rt.scope
	rt.scope = &scope{vars: vars}
	defer func() { rt.scope = saved }()

	var result LVal = Nil
	for _, form := range v.Body.Cells {
		result = rt.eval(form)
		if result == nil {
			return nil
		}
	}
	return result
}
