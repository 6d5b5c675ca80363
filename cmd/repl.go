// Copyright © 2026 The LISPE authors

package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/luthersystems/lispe/lisp"
	"github.com/luthersystems/lispe/repl"
)

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive REPL",
	Long: `Start an interactive read-eval-print loop.

Expressions may span several lines.  Line editing, symbol completion and
command history (kept in $HOME/.lispe_history) are supported via readline.
Use Ctrl-D or (quit) to exit.

Example REPL session:
  lispe> (define (square x) (* x x))
  square
  lispe> (square 1+2i)
  -3+4i
  lispe> (car '())
  error: type-error: car: car of non-pair: ()
     = note: in car [builtin]`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := newInterpreter()
		if errors.Is(err, lisp.ErrQuit) {
			return nil
		}
		if err != nil {
			renderError(err)
			return err
		}
		prompt := filepath.Base(os.Args[0]) + "> "
		return repl.RunInterpreter(in, prompt, strings.Repeat(" ", len(prompt)),
			repl.WithColor(colorMode()))
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
