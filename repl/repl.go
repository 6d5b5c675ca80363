// Copyright © 2026 The LISPE authors

// Package repl implements an interactive read-eval-print loop.
package repl

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"
	"github.com/luthersystems/lispe/diagnostic"
	"github.com/luthersystems/lispe/lisp"
	"github.com/luthersystems/lispe/lisp/lisplib"
	"github.com/luthersystems/lispe/parser"
	"github.com/luthersystems/lispe/parser/lexer"
	"github.com/luthersystems/lispe/parser/rdparser"
	"github.com/luthersystems/lispe/parser/token"
)

// DefaultPrompt is the prompt shown when RunRepl is given an empty prompt.
const DefaultPrompt = "lispe> "

type config struct {
	stdin       io.ReadCloser
	stdout      io.Writer
	stderr      io.WriteCloser
	historyFile *string
	color       diagnostic.ColorMode
	lispConfig  []lisp.Config
}

func newConfig(opts ...Option) *config {
	config := &config{}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

// Option configures a REPL.
type Option func(*config)

// WithStdin allows overriding the input to the REPL.
func WithStdin(stdin io.ReadCloser) Option {
	return func(c *config) {
		c.stdin = stdin
	}
}

// WithStderr allows overriding the output of the REPL.  Results, prompts and
// errors are written to stderr.
func WithStderr(stderr io.WriteCloser) Option {
	return func(c *config) {
		c.stderr = stderr
	}
}

// WithStdout overrides where programs write with display and newline.
func WithStdout(stdout io.Writer) Option {
	return func(c *config) {
		c.stdout = stdout
	}
}

// WithHistoryFile sets the file in which input history is kept.  An empty
// path disables history.
func WithHistoryFile(path string) Option {
	return func(c *config) {
		c.historyFile = &path
	}
}

// WithColor controls colored error output.
func WithColor(mode diagnostic.ColorMode) Option {
	return func(c *config) {
		c.color = mode
	}
}

// WithConfig passes configuration to the interpreter created by RunRepl.
func WithConfig(opts ...lisp.Config) Option {
	return func(c *config) {
		c.lispConfig = append(c.lispConfig, opts...)
	}
}

// RunRepl runs a repl in a fresh interpreter.  RunRepl returns nil at the end
// of input and an error if the interpreter could not be created or its heap
// was exhausted.
func RunRepl(prompt string, opts ...Option) error {
	if prompt == "" {
		prompt = DefaultPrompt
	}
	cfg := newConfig(opts...)
	lispOpts := []lisp.Config{
		lisp.WithReader(parser.NewReader()),
		lisplib.WithLibrary(),
	}
	if cfg.stdout != nil {
		lispOpts = append(lispOpts, lisp.WithStdout(cfg.stdout))
	}
	if cfg.stderr != nil {
		lispOpts = append(lispOpts, lisp.WithStderr(cfg.stderr))
	}
	lispOpts = append(lispOpts, cfg.lispConfig...)
	in, err := lisp.New(lispOpts...)
	if err != nil {
		return fmt.Errorf("language initialization failure: %w", err)
	}
	return RunInterpreter(in, prompt, strings.Repeat(" ", len(prompt)), opts...)
}

// RunInterpreter runs a repl evaluating input in the global environment of
// in.  The cont prompt is shown while an expression spans several lines.
func RunInterpreter(in *lisp.Interpreter, prompt, cont string, opts ...Option) error {
	cfg := newConfig(opts...)
	if cfg.stderr != nil {
		in.Stderr = cfg.stderr
	}
	if cfg.stdout != nil {
		in.Stdout = cfg.stdout
	}
	histFile := historyPath()
	if cfg.historyFile != nil {
		histFile = *cfg.historyFile
	}
	ensureHistoryFilePermissions(histFile)

	rlCfg := &readline.Config{
		Stdout:            in.Stderr,
		Stderr:            in.Stderr,
		Prompt:            prompt,
		HistoryFile:       histFile,
		HistorySearchFold: true,
		AutoComplete:      &symbolCompleter{in: in},
	}
	if cfg.stdin != nil {
		rlCfg.Stdin = cfg.stdin
	}
	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		return err
	}
	defer rl.Close() //nolint:errcheck // best-effort cleanup

	var lines []string
	var p *rdparser.Interactive
	p = rdparser.NewInteractive(in, func() []*token.Token {
		rl.SetPrompt(p.Prompt())
		for {
			line, err := rl.ReadSlice()
			if err == readline.ErrInterrupt {
				continue
			}
			if err != nil {
				return []*token.Token{{Type: token.EOF}}
			}
			line = bytes.TrimSpace(line)
			if len(line) == 0 {
				continue
			}
			lines = append(lines, string(line))
			return lexLine(line, len(lines))
		}
	})
	p.SetPrompts(prompt, cont)

	r := &diagnostic.Renderer{Color: cfg.color}
	for {
		expr, err := p.Parse()
		if err == io.EOF {
			return nil
		}
		if err == nil {
			expr, err = in.EvalTop(expr)
		}
		if errors.Is(err, lisp.ErrQuit) {
			return nil
		}
		if err != nil {
			d := ErrorDiagnostic(err)
			if loc := errorSource(err); loc != nil && loc.Line > 0 && loc.Line <= len(lines) {
				d.Spans[0].Source = lines[loc.Line-1]
			}
			_ = r.Render(in.Stderr, d)
			if lisp.IsFatal(err) {
				return err
			}
			continue
		}
		fmt.Fprintln(in.Stderr, in.String(expr)) //nolint:errcheck // best-effort REPL output
	}
}

// lexLine returns the tokens of one line of input.  Token locations are
// numbered by input line so errors can point back at what was typed.
func lexLine(line []byte, lineno int) []*token.Token {
	var tokens []*token.Token
	lex := lexer.New(token.NewScanner("stdin", bytes.NewReader(line)))
	for {
		tok := lex.ReadToken()
		if len(tok) != 1 {
			panic("bad tokens")
		}
		if tok[0].Source != nil {
			tok[0].Source.Line = lineno
		}
		if tok[0].Type == token.EOF {
			return tokens
		}
		tokens = append(tokens, tok...)
		if tok[0].Type == token.ERROR {
			return tokens
		}
	}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".lispe_history")
}

// ensureHistoryFilePermissions creates path, or restricts an existing file,
// so that only the owner can read the input history.
func ensureHistoryFilePermissions(path string) {
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDONLY, 0600) //nolint:gosec // path is the user's own history file
	if err != nil {
		return
	}
	_ = f.Close()
	_ = os.Chmod(path, 0600)
}
