// Copyright © 2026 The LISPE authors

package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"

	"github.com/luthersystems/lispe/lisp"
)

// builtinsCmd represents the builtins command
var builtinsCmd = &cobra.Command{
	Use:   "builtins [NAME...]",
	Short: "Show documentation for builtins and special forms",
	Long: `Show documentation for builtins and special forms.

Without arguments every entry of the builtin table is listed with its
argument list and arity.  With arguments the full documentation of each
named builtin is shown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := newInterpreter()
		if err != nil {
			renderError(err)
			return err
		}
		if len(args) == 0 {
			return listBuiltins(os.Stdout, in.Builtins())
		}
		err = describeBuiltins(os.Stdout, in.Builtins(), args)
		if err != nil {
			renderError(err)
		}
		return err
	},
}

func builtinKind(b *lisp.Builtin) string {
	if b.Special {
		return "special form"
	}
	return "builtin"
}

func listBuiltins(w io.Writer, builtins []*lisp.Builtin) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, b := range builtins {
		summary, _, _ := strings.Cut(b.Doc, "\n")
		summary, _, _ = strings.Cut(summary, ". ")
		fmt.Fprintf(tw, "%s\t%s\t%s\n", b.Name, b.Arity(), summary) //nolint:errcheck // flushed below
	}
	return tw.Flush()
}

func describeBuiltins(w io.Writer, builtins []*lisp.Builtin, names []string) error {
	byName := make(map[string]*lisp.Builtin, len(builtins))
	for _, b := range builtins {
		byName[b.Name] = b
	}
	for i, name := range names {
		b, ok := byName[name]
		if !ok {
			return fmt.Errorf("no builtin named %q", name)
		}
		if i > 0 {
			fmt.Fprintln(w) //nolint:errcheck // best-effort output
		}
		formals := strings.TrimPrefix(b.Formals, "(")
		formals = strings.TrimSpace(strings.TrimSuffix(formals, ")"))
		if formals != "" {
			formals = " " + formals
		}
		_, err := fmt.Fprintf(w, "(%s%s)\n  %s, arity %s\n\n%s\n",
			b.Name, formals, builtinKind(b), b.Arity(), formatDoc(b.Doc))
		if err != nil {
			return err
		}
	}
	return nil
}

func formatDoc(doc string) string {
	doc = strings.TrimSpace(doc)
	if doc == "" {
		return "  No documentation."
	}
	return strings.TrimSuffix(indent.String(wordwrap.String(doc, 72), 2), "\n")
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
