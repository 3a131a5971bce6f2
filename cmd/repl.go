package cmd

import (
	"github.com/midnite8177/BasicLisp/repl"
	"github.com/spf13/cobra"
)

var replPrompt = "> "

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive repl",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := repl.RunRepl(newRuntime(), replPrompt)
		if err != nil {
			exitError(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().StringVar(&replPrompt, "prompt", replPrompt,
		"The prompt displayed while waiting for a form")
}
