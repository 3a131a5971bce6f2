package lisp

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgSpec(t *testing.T) {
	tests := []struct {
		spec ArgSpec
		n    int
		ok   []int
		fail []int
		desc string
	}{
		{VarFixed, 2, []int{2}, []int{0, 1, 3}, "exactly 2 arguments"},
		{VarFixed, 1, []int{1}, []int{0, 2}, "exactly 1 argument"},
		{VarMin, 1, []int{1, 2, 10}, []int{0}, "at least 1 argument"},
		{VarMax, 2, []int{0, 1, 2}, []int{3}, "at most 2 arguments"},
		{VarMin | VarMax, 3, []int{3}, []int{2, 4}, "exactly 3 arguments"},
		{0, 0, []int{0, 5}, nil, "any number of arguments"},
	}
	for _, test := range tests {
		for _, n := range test.ok {
			assert.True(t, test.spec.Check(test.n, n), "%v %d: %d", test.spec, test.n, n)
		}
		for _, n := range test.fail {
			assert.False(t, test.spec.Check(test.n, n), "%v %d: %d", test.spec, test.n, n)
		}
		assert.Equal(t, test.desc, test.spec.Describe(test.n))
	}
	assert.Equal(t, "VAR_MIN|UNEVAL_ARGS", (VarMin | UnevalArgs).String())
	assert.Equal(t, "0", ArgSpec(0).String())
	assert.True(t, (VarFixed | UnevalArgs).Has(UnevalArgs))
	assert.False(t, VarFixed.Has(VarFixed|UnevalArgs))
}

func TestDefineBuiltin(t *testing.T) {
	rt, err := NewRuntime()
	require.NoError(t, err)

	calls := 0
	double := func(rt *Runtime, args *List) LVal {
		calls++
		x, ok := IntArgs(rt, "double", args)
		if !ok {
			return nil
		}
		return Integer(2 * x[0])
	}
	require.NoError(t, rt.DefineBuiltin("double", VarFixed, 1, double))

	v := rt.Eval(NewList(Sym("double"), Integer(21)))
	require.False(t, rt.HasError())
	assert.Equal(t, "42", v.String())
	assert.Equal(t, 1, calls)

	// Arity is checked before any argument is evaluated and before the
	// native function runs.
	var stdout bytes.Buffer
	rt.Stdout = &stdout
	v = rt.Eval(NewList(Sym("double"), NewList(Sym("print"), Integer(1)), Integer(2)))
	assert.Nil(t, v)
	if err := rt.Err(); assert.NotNil(t, err) {
		assert.True(t, errors.Is(err, ArityError))
		assert.Equal(t, "arity-error: double: expected exactly 1 argument (got 2)", err.Error())
	}
	assert.Equal(t, 1, calls)
	assert.Equal(t, "", stdout.String())

	// Builtins may be replaced but ordinary constants may not.
	assert.NoError(t, rt.DefineBuiltin("double", VarFixed, 1, double))
	err = rt.DefineBuiltin("t", VarFixed, 0, double)
	assert.True(t, errors.Is(err, ConstantViolation))
	assert.Error(t, rt.DefineBuiltin("nothing", VarFixed, 0, nil))

	// Builtins are constant.
	rt.Eval(NewList(Sym("setq"), Sym("double"), Integer(1)))
	lerr := rt.Err()
	if assert.NotNil(t, lerr) {
		assert.Equal(t, ConstantViolation, lerr.Kind)
	}
}

func TestRuntime_errorStack(t *testing.T) {
	rt, err := NewRuntime()
	require.NoError(t, err)

	fail := func(rt *Runtime, args *List) LVal {
		return rt.Errorf(RuntimeError, "failed")
	}
	require.NoError(t, rt.DefineBuiltin("fail", VarFixed, 0, fail))
	fun := rt.Eval(NewList(Sym("lambda"), Nil, NewList(Sym("fail"))))
	require.False(t, rt.HasError())
	rt.Symbols.Set("f", fun)

	v := rt.Eval(NewList(Sym("f")))
	assert.Nil(t, v)
	lerr := rt.Err()
	require.NotNil(t, lerr)
	assert.Equal(t, "runtime-error: failed", lerr.Error())
	if assert.Equal(t, 2, lerr.Stack.Height()) {
		assert.Equal(t, "f", lerr.Stack.Frames[0].Name)
		assert.False(t, lerr.Stack.Frames[0].Builtin)
		assert.Equal(t, "fail", lerr.Stack.Frames[1].Name)
		assert.True(t, lerr.Stack.Frames[1].Builtin)
	}
	assert.Equal(t, 0, rt.Stack.Height())
	assert.False(t, rt.HasError())
}

func TestRuntime_uninitialized(t *testing.T) {
	rt := &Runtime{}
	v := rt.Eval(Integer(1))
	assert.Nil(t, v)
	assert.True(t, rt.HasError())
	assert.Equal(t, "runtime-error: runtime is not initialized", rt.Err().Error())

	require.NoError(t, rt.Initialize())
	assert.Equal(t, "1", rt.Eval(Integer(1)).String())
	assert.Error(t, rt.Initialize())
}

func TestRuntime_scope(t *testing.T) {
	rt, err := NewRuntime()
	require.NoError(t, err)

	lis := NewList(Integer(1), Integer(2))
	rt.Symbols.Set("xs", lis)
	set := func(rt *Runtime, args *List) LVal {
		arg := args.Cells[0].(*List)
		arg.Cells[0] = Integer(100)
		return arg
	}
	require.NoError(t, rt.DefineBuiltin("clobber", VarFixed, 1, set))

	// Lists passed to functions are copies.
	fun := NewFunction(NewList(Sym("a")), NewList(NewList(Sym("clobber"), Sym("a"))))
	v := rt.Apply(fun, NewList(lis))
	require.False(t, rt.HasError())
	assert.Equal(t, "(100 2)", v.String())
	assert.Equal(t, "(1 2)", lis.String())

	v = rt.Apply(fun, Nil)
	assert.Nil(t, v)
	assert.True(t, errors.Is(rt.Err(), ArityError))
}

func TestRegisterDefaultBuiltin(t *testing.T) {
	RegisterDefaultBuiltin("registered-double", VarFixed, 1, func(rt *Runtime, args *List) LVal {
		x, ok := IntArgs(rt, "registered-double", args)
		if !ok {
			return nil
		}
		return Integer(2 * x[0])
	})
	RegisterDefaultSpecialOp("registered-quote", VarFixed, 1, func(rt *Runtime, args *List) LVal {
		return args.Cells[0]
	})

	rt, err := NewRuntime()
	require.NoError(t, err)

	b, ok := rt.Symbols.Peek("registered-double")
	require.True(t, ok)
	assert.True(t, b.Constant)
	v := rt.Eval(NewList(Sym("registered-double"), NewList(Sym("+"), Integer(1), Integer(2))))
	require.False(t, rt.HasError())
	assert.Equal(t, "6", v.String())

	b, ok = rt.Symbols.Peek("registered-quote")
	require.True(t, ok)
	spec, n := b.Value.(*Builtin).Arity()
	assert.Equal(t, VarFixed|UnevalArgs, spec)
	assert.Equal(t, 1, n)
	v = rt.Eval(NewList(Sym("registered-quote"), NewList(Sym("+"), Integer(1), Integer(2))))
	require.False(t, rt.HasError())
	assert.Equal(t, "(+ 1 2)", v.String())
}
