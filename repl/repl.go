package repl

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/midnite8177/BasicLisp/lisp"
	"github.com/midnite8177/BasicLisp/parser/rdparser"
)

// Loop reads forms from src, evaluates them and prints their values to w.
// Errors are reported to rt.Stderr and the loop resumes with the next form.
// Loop returns the number of forms that failed when src is exhausted.
func Loop(rt *lisp.Runtime, src lisp.FormReader, w io.Writer) int {
	nerr := 0
	for {
		v, eof := rt.Read(src)
		if eof {
			return nerr
		}
		if !evalPrint(rt, v, w) {
			nerr++
		}
	}
}

// evalPrint evaluates v, which was just read by rt, and prints the result.
// The error from reading v is reported instead if there is one.
func evalPrint(rt *lisp.Runtime, v lisp.LVal, w io.Writer) bool {
	if rt.HasError() {
		reportError(rt)
		return false
	}
	result := rt.Eval(v)
	if rt.HasError() {
		reportError(rt)
		return false
	}
	lisp.Fprintln(w, result)
	return true
}

func reportError(rt *lisp.Runtime) {
	err := rt.Err()
	errln(rt, err)
	if err.Kind != lisp.SyntaxError && err.Stack.Height() > 0 {
		var buf bytes.Buffer
		err.Stack.DebugPrint(&buf)
		errf(rt, "%s", buf.String())
	}
}

// RunRepl runs an interactive repl on the terminal until the user closes its
// input.
func RunRepl(rt *lisp.Runtime, prompt string) error {
	rl, err := readline.New(prompt)
	if err != nil {
		return err
	}
	defer rl.Close()

	lines := &lineReader{rl: rl}
	for {
		p := rdparser.NewInteractive("stdin", lines)
		p.Primary = prompt
		p.Continuation = strings.Repeat(" ", len(prompt)) // prompt had better be ascii...
		lines.prompt = p.Prompt
		for {
			v, eof := rt.Read(p)
			if lines.interrupted {
				break
			}
			if eof {
				errln(rt, "done")
				return nil
			}
			evalPrint(rt, v, rl.Stdout())
		}
		// An interrupt discards the form being read.
		lines.interrupted = false
		rt.Errors.Clear()
	}
}

// lineReader is an io.Reader which reads lines from a terminal.
type lineReader struct {
	rl          *readline.Instance
	prompt      func() string
	buf         []byte
	interrupted bool
}

func (r *lineReader) Read(p []byte) (int, error) {
	if r.interrupted {
		return 0, io.EOF
	}
	for len(r.buf) == 0 {
		r.rl.SetPrompt(r.prompt())
		line, err := r.rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			r.interrupted = true
			return 0, io.EOF
		}
		if err != nil {
			return 0, err
		}
		r.buf = append([]byte(line), '\n')
	}
	n := copy(p, r.buf)
	r.buf = r.buf[n:]
	return n, nil
}

func errln(rt *lisp.Runtime, v ...interface{}) {
	fmt.Fprintln(rt.Stderr, v...)
}

func errf(rt *lisp.Runtime, format string, v ...interface{}) {
	fmt.Fprintf(rt.Stderr, format, v...)
}
