package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/midnite8177/BasicLisp/lisp"
	"github.com/midnite8177/BasicLisp/parser"
	"github.com/spf13/cobra"
)

var (
	runExpression bool
	runPrint      bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [flags] FILE...",
	Short: "Run lisp code",
	Long:  `Run lisp code provided supplied via the command line or a file.`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rt := newRuntime()
		if runExpression {
			for i := range args {
				err := runExpr(rt, args[i], runPrint)
				if err != nil {
					exitError(err)
				}
			}
			return
		}
		for _, path := range args {
			err := runFile(rt, path, runPrint)
			if err != nil {
				exitError(err)
			}
		}
	},
}

// runExpr evaluates the forms in text, which is parsed completely before any
// form is evaluated.
func runExpr(rt *lisp.Runtime, text string, print bool) error {
	exprs, _, err := parser.ParseLVal([]byte(text))
	if err != nil {
		return err
	}
	for _, v := range exprs {
		result := rt.Eval(v)
		if rt.HasError() {
			return rt.Err()
		}
		if print {
			lisp.Fprintln(rt.Stdout, result)
		}
	}
	return nil
}

func runFile(rt *lisp.Runtime, path string, print bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return runSource(rt, path, f, print)
}

// runSource evaluates forms from r as they are read.  Evaluation stops at the
// first error.
func runSource(rt *lisp.Runtime, name string, r io.Reader, print bool) error {
	src := rt.Reader.NewFormReader(name, r)
	for {
		v, eof := rt.Read(src)
		if eof {
			return nil
		}
		if rt.HasError() {
			return rt.Err()
		}
		result := rt.Eval(v)
		if rt.HasError() {
			err := rt.Err()
			if err.Stack.Height() > 0 {
				err.Stack.DebugPrint(rt.Stderr)
			}
			return fmt.Errorf("%s: %w", name, err)
		}
		if print {
			lisp.Fprintln(rt.Stdout, result)
		}
	}
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Here flags for the run command are defined
	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print expression values to stdout")
}
