// Copyright © 2026 The LISPE authors

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/spf13/cobra"

	"github.com/luthersystems/lispe/lisp"
	"github.com/luthersystems/lispe/lisp/x/profiler"
)

var (
	runExpression bool
	runPrint      bool
	runCallgrind  string
	runCPUProfile string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [flags] FILE...",
	Short: "Run lisp code",
	Long: `Run lisp code supplied via the command line or files.

Each argument is loaded in order into the same global environment.  A
directory argument ending in "/..." loads every .lisp and .scm file below
it.  The argument "-" reads standard input.  Evaluation stops at the first
error and the command exits with status 1.

Examples:
  lispe run prog.scm
  lispe run -p -e '(define (sq x) (* x x))' '(sq 1+1i)'
  lispe run --callgrind callgrind.out prog.scm
  lispe run --cpuprofile cpu.pprof prog.scm`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		err := runExec(args)
		if err != nil {
			renderError(err)
		}
		return err
	},
}

// runExec loads args in order.  A program calling quit stops the run
// without error.
func runExec(args []string) (err error) {
	defer func() {
		if errors.Is(err, lisp.ErrQuit) {
			err = nil
		}
	}()
	if !runExpression {
		args, err = expandArgs(args)
		if err != nil {
			return err
		}
	}
	in, err := newInterpreter()
	if err != nil {
		return err
	}
	stop, err := runStartProfiler(in)
	if err != nil {
		return err
	}
	defer func() {
		if perr := stop(); err == nil {
			err = perr
		}
	}()
	for _, arg := range args {
		var v lisp.Value
		switch {
		case runExpression:
			v, err = in.LoadString("-e", arg)
		case arg == "-":
			v, err = in.Load("stdin", os.Stdin)
		default:
			v, err = in.LoadFile(arg)
		}
		if err != nil {
			return err
		}
		if runPrint {
			fmt.Println(in.String(v))
		}
	}
	return nil
}

// runStartProfiler enables the profiler selected by flags and returns a
// function which completes it.
func runStartProfiler(in *lisp.Interpreter) (func() error, error) {
	switch {
	case runCallgrind != "" && runCPUProfile != "":
		return nil, errors.New("--callgrind and --cpuprofile cannot be used together")
	case runCallgrind != "":
		p := profiler.NewCallgrindProfiler(in)
		if err := p.SetFile(runCallgrind); err != nil {
			return nil, err
		}
		if err := p.Enable(); err != nil {
			return nil, err
		}
		return p.Complete, nil
	case runCPUProfile != "":
		f, err := os.Create(runCPUProfile)
		if err != nil {
			return nil, err
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, err
		}
		p := profiler.NewPprofAnnotator(in, context.Background())
		if err := p.Enable(); err != nil {
			pprof.StopCPUProfile()
			_ = f.Close()
			return nil, err
		}
		return func() error {
			err := p.Complete()
			pprof.StopCPUProfile()
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			return err
		}, nil
	}
	return func() error { return nil }, nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print the value of each argument to stdout")
	runCmd.Flags().StringVar(&runCallgrind, "callgrind", "",
		"Write a callgrind profile of procedure applications to the given file")
	runCmd.Flags().StringVar(&runCPUProfile, "cpuprofile", "",
		"Write a Go CPU profile labeled by procedure to the given file")
}
