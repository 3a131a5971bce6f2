package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/midnite8177/BasicLisp/lisp"
	"github.com/midnite8177/BasicLisp/lisp/lisplib"
	"github.com/midnite8177/BasicLisp/parser"
	"github.com/midnite8177/BasicLisp/repl"
	"github.com/spf13/cobra"
)

var maxStackHeight int

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "basiclisp",
	Short: "A small lisp interpreter",
	Long: `A small lisp interpreter.

When called without a subcommand basiclisp starts a repl if its standard input
is a terminal.  Otherwise it evaluates the program read from standard input.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		rt := newRuntime()
		if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
			err := repl.RunRepl(rt, replPrompt)
			if err != nil {
				exitError(err)
			}
			return
		}
		err := runLoop(rt, "stdin", os.Stdin, os.Stdout)
		if err != nil {
			exitError(err)
		}
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.  This is called by main.main().  It only needs to happen
// once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		exitError(err)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVar(&maxStackHeight, "max-stack", lisp.DefaultMaxStackHeight,
		"Maximum call stack height (zero for no limit)")
}

// newRuntime returns a runtime with the standard library loaded.
func newRuntime() *lisp.Runtime {
	rt, err := lisp.NewRuntime(
		lisp.WithReader(parser.NewReader()),
		lisp.WithMaximumStackHeight(maxStackHeight),
		lisplib.WithLibrary(),
	)
	if err != nil {
		exitError(err)
	}
	return rt
}

// runLoop evaluates every form read from r, printing values to w.  Errors
// are reported to rt.Stderr and evaluation continues with the next form.
func runLoop(rt *lisp.Runtime, name string, r io.Reader, w io.Writer) error {
	nerr := repl.Loop(rt, rt.Reader.NewFormReader(name, r), w)
	if nerr > 0 {
		return fmt.Errorf("%s: %d form(s) failed", name, nerr)
	}
	return nil
}

func exitError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
