package lisp

import (
	"io"
	"os"
	"strings"
)

// TrueSymbol is the name of the constant bound to T.
const TrueSymbol = "t"

// NilSymbol is the name of the constant bound to Nil.
const NilSymbol = "nil"

// Runtime is an interpreter instance.  All mutable interpreter state lives in
// a Runtime, so independent runtimes may be used by different goroutines.  A
// single Runtime must not be used concurrently.
type Runtime struct {
	Symbols *SymbolTable
	Errors  ErrorChannel
	Stack   *CallStack
	Reader  Reader
	Stdout  io.Writer
	Stderr  io.Writer

	scope       *scope
	initialized bool
}

// scope holds the local bindings of a function call.  The parent of every
// scope is the global SymbolTable.
type scope struct {
	vars map[string]LVal
}

// NewRuntime returns an initialized Runtime.
func NewRuntime(config ...Config) (*Runtime, error) {
	rt := &Runtime{}
	err := rt.Initialize(config...)
	if err != nil {
		return nil, err
	}
	return rt, nil
}

// Initialize establishes the constants t and nil, registers the default
// builtins and applies config.  Initialize must be called exactly once before
// rt is used to read or evaluate forms.
func (rt *Runtime) Initialize(config ...Config) error {
	if rt.initialized {
		return Errorf(RuntimeError, "runtime already initialized")
	}
	if rt.Symbols == nil {
		rt.Symbols = NewSymbolTable()
	}
	if rt.Stack == nil {
		rt.Stack = &CallStack{MaxHeight: DefaultMaxStackHeight}
	}
	if rt.Stdout == nil {
		rt.Stdout = os.Stdout
	}
	if rt.Stderr == nil {
		rt.Stderr = os.Stderr
	}
	rt.Symbols.Define(TrueSymbol, T, true)
	rt.Symbols.Define(NilSymbol, Nil, true)
	for _, def := range DefaultBuiltins() {
		spec, n := def.Arity()
		err := rt.DefineBuiltin(def.Name(), spec, n, def.Eval)
		if err != nil {
			return err
		}
	}
	for _, fn := range config {
		err := fn(rt)
		if err != nil {
			return err
		}
	}
	rt.initialized = true
	return nil
}

// HasError returns true if the last operation on rt failed.
func (rt *Runtime) HasError() bool {
	return rt.Errors.Has()
}

// Err consumes and returns the current error, or nil.
func (rt *Runtime) Err() *Error {
	return rt.Errors.Take()
}

// Errorf records an error of the given kind, along with the current call
// stack, and returns nil.  Builtins return the result of Errorf to signal
// failure.
func (rt *Runtime) Errorf(kind ErrorKind, format string, v ...interface{}) LVal {
	return rt.fail(Errorf(kind, format, v...))
}

func (rt *Runtime) fail(err error) LVal {
	if lerr, ok := err.(*Error); ok && lerr.Stack == nil {
		lerr.Stack = rt.Stack.Copy()
	}
	rt.Errors.Set(err)
	return nil
}

func (rt *Runtime) checkInitialized() bool {
	if !rt.initialized {
		rt.Errors.Setf(RuntimeError, "runtime is not initialized")
		return false
	}
	return true
}

// Read reads the next form from src.  When src is exhausted Read returns a
// nil LVal and true.  When src contains malformed input Read returns a nil
// LVal and false, and rt.HasError returns true.
func (rt *Runtime) Read(src FormReader) (v LVal, eof bool) {
	rt.Errors.Clear()
	if !rt.checkInitialized() {
		return nil, false
	}
	v, err := src.ReadForm()
	if isEOF(err) {
		return nil, true
	}
	if err != nil {
		rt.fail(err)
		return nil, false
	}
	return v, false
}

// Eval evaluates v and returns the result.  If evaluation fails Eval returns
// nil and rt.HasError returns true.
func (rt *Runtime) Eval(v LVal) LVal {
	rt.Errors.Clear()
	if !rt.checkInitialized() {
		return nil
	}
	return rt.eval(v)
}

// EvalAll reads and evaluates every form in src and returns the value of the
// last form.  The first error encountered stops evaluation and is returned.
func (rt *Runtime) EvalAll(src FormReader) (LVal, error) {
	var result LVal = Nil
	for {
		v, eof := rt.Read(src)
		if eof {
			return result, nil
		}
		if rt.HasError() {
			return nil, rt.Err()
		}
		result = rt.Eval(v)
		if rt.HasError() {
			return nil, rt.Err()
		}
	}
}

// Load parses source text from r using rt.Reader and evaluates it.
func (rt *Runtime) Load(name string, r io.Reader) (LVal, error) {
	if rt.Reader == nil {
		return nil, Errorf(RuntimeError, "no reader configured")
	}
	return rt.EvalAll(rt.Reader.NewFormReader(name, r))
}

// LoadString evaluates the forms in source and returns the value of the last
// one.
func (rt *Runtime) LoadString(name, source string) (LVal, error) {
	return rt.Load(name, strings.NewReader(source))
}

// Get returns the value bound to name in the current scope.
func (rt *Runtime) Get(name string) LVal {
	if rt.scope != nil {
		if v, ok := rt.scope.vars[name]; ok {
			return v
		}
	}
	v, err := rt.Symbols.Value(name)
	if err != nil {
		return rt.fail(err)
	}
	return v
}

// Set binds v to name.  If name is bound in the current function scope the
// local binding is updated, otherwise the global binding is.
func (rt *Runtime) Set(name string, v LVal) LVal {
	if rt.scope != nil {
		if _, ok := rt.scope.vars[name]; ok {
			rt.scope.vars[name] = v
			return v
		}
	}
	err := rt.Symbols.Set(name, v)
	if err != nil {
		return rt.fail(err)
	}
	return v
}
