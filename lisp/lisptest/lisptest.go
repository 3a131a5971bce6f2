// Package lisptest runs table driven tests of lisp expressions.
package lisptest

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/midnite8177/BasicLisp/lisp"
	"github.com/midnite8177/BasicLisp/lisp/lisplib"
	"github.com/midnite8177/BasicLisp/parser"
)

// Runner is a test runner.
type Runner struct {
	// Loader is used to initialize the test runtime.  When Loader is nil
	// lisplib.LoadLibrary is used.
	Loader func(*lisp.Runtime) error
	// Config is applied to each test runtime.
	Config []lisp.Config
}

// NewRuntime returns a runtime for a test.  Program output and debugging
// output are collected in stdout and stderr.
func (r *Runner) NewRuntime(stdout, stderr *bytes.Buffer) (*lisp.Runtime, error) {
	config := []lisp.Config{
		lisp.WithReader(parser.NewReader()),
		lisp.WithStdout(stdout),
		lisp.WithStderr(stderr),
	}
	config = append(config, r.Config...)
	rt, err := lisp.NewRuntime(config...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize lisp runtime: %w", err)
	}
	loader := r.Loader
	if loader == nil {
		loader = lisplib.LoadLibrary
	}
	err = loader(rt)
	if err != nil {
		return nil, fmt.Errorf("failed to load package library: %w", err)
	}
	return rt, nil
}

// TestSequence is a sequence of lisp expressions which are evaluated
// sequentially by a lisp.Runtime.
type TestSequence []struct {
	Expr   string // a lisp expression
	Result string // the printed result, or the error message
	Output string // text written to stdout and stderr while evaluating
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// RunTestSuite runs each TestSequence in tests on isolated runtimes using
// the default Runner.
func RunTestSuite(t *testing.T, tests TestSuite) {
	r := &Runner{}
	r.RunTestSuite(t, tests)
}

// RunTestSuite runs each TestSequence in tests on isolated runtimes.
func (r *Runner) RunTestSuite(t *testing.T, tests TestSuite) {
	for i, test := range tests {
		var stdout, stderr bytes.Buffer
		rt, err := r.NewRuntime(&stdout, &stderr)
		if err != nil {
			t.Errorf("test %d %q: %v", i, test.Name, err)
			continue
		}
		for j, expr := range test.TestSequence {
			v, _, err := parser.ParseLVal([]byte(expr.Expr))
			if err != nil {
				t.Errorf("test %d %q: expr %d: parse error: %v", i, test.Name, j, err)
				continue
			}
			if len(v) == 0 {
				t.Errorf("test %d %q: expr %d: no expression parsed", i, test.Name, j)
				continue
			}
			if len(v) != 1 {
				t.Errorf("test %d %q: expr %d: more than one expression parsed (%d)", i, test.Name, j, len(v))
				continue
			}
			stdout.Reset()
			stderr.Reset()
			result := EvalString(rt, v[0])
			if result != expr.Result {
				t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, expr.Result, result)
			}
			output := stdout.String() + stderr.String()
			if output != expr.Output {
				t.Errorf("test %d %q: expr %d: expected output %q (got %q)", i, test.Name, j, expr.Output, output)
			}
		}
	}
}

// EvalString evaluates v and returns its printed form, or the error message
// if evaluation failed.
func EvalString(rt *lisp.Runtime, v lisp.LVal) string {
	result := rt.Eval(v)
	if rt.HasError() {
		return rt.Err().Error()
	}
	return result.String()
}
