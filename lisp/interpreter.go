// Copyright © 2026 The LISPE authors

package lisp

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/luthersystems/lispe/lisp/internal/arena"
	"github.com/sirupsen/logrus"
)

// Reader abstracts a parser implementation so that it may be implemented in a
// separate package as an optional/swappable component.
type Reader interface {
	// Read returns a Parser producing the forms in r one at a time.  Values
	// must be built through the interpreter's constructors.
	Read(in *Interpreter, name string, r io.Reader) Parser
}

// Parser produces successive top-level forms.  Parse returns io.EOF when the
// input is exhausted.
type Parser interface {
	Parse() (Value, error)
}

// registers hold values the evaluator and allocator are working on.  All of
// them are collection roots.
type registers struct {
	env     Value
	expr    Value
	val     Value
	proc    Value
	args    Value
	unev    Value
	consCar Value
	consCdr Value
}

// Interpreter owns a heap, its environments and the evaluator state.  An
// Interpreter is not safe for concurrent use.
type Interpreter struct {
	Stdout   io.Writer
	Stderr   io.Writer
	Log      logrus.FieldLogger
	Reader   Reader
	Profiler Profiler
	Stack    *CallStack

	capCells   int
	capNumbers int
	capSymbols int

	cells   *arena.Arena[Cell]
	numbers *arena.Arena[Number]
	symbols *symbolTable

	protect []Value
	reg     registers
	global  Value
	hidden  Value

	builtins   []*Builtin
	extra      []*Builtin
	quoteForm  Value
	lambdaForm Value
	symElse    Value

	gcHook   func(GCStats)
	gcCycles int
	lastGC   GCStats
}

// New returns an Interpreter with a global environment holding the language
// builtins.  Construction fails if the configured arenas cannot hold the
// initial environment.
func New(opts ...Config) (*Interpreter, error) {
	in := &Interpreter{
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Stack:      &CallStack{MaxHeight: DefaultMaxStackHeight},
		capCells:   DefaultCellCapacity,
		capNumbers: DefaultNumberCapacity,
		capSymbols: DefaultSymbolCapacity,
	}
	for _, opt := range opts {
		if err := opt(in); err != nil {
			return nil, err
		}
	}
	if in.Log == nil {
		in.Log = defaultLogger(in.Stderr)
	}
	in.cells = arena.New[Cell](in.capCells)
	in.numbers = arena.New[Number](in.capNumbers)
	in.symbols = newSymbolTable(in.capSymbols)
	if err := in.initEnv(); err != nil {
		return nil, err
	}
	return in, nil
}

func defaultLogger(w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.Out = w
	log.Level = logrus.WarnLevel
	log.Formatter = &logrus.TextFormatter{DisableTimestamp: true}
	return log
}

func (in *Interpreter) initEnv() error {
	var err error
	in.hidden, err = in.MakeEnvironment(Nil)
	if err != nil {
		return err
	}
	in.global, err = in.MakeEnvironment(Nil)
	if err != nil {
		return err
	}
	in.symElse, err = in.MakeSymbol("else")
	if err != nil {
		return err
	}
	// The hidden environment keeps symbols the runtime refers to directly
	// alive across collections.
	if err := in.Define(in.symElse, True, in.hidden); err != nil {
		return err
	}

	in.builtins = make([]*Builtin, 0, len(langBuiltins)+len(langSpecialOps)+len(in.extra))
	in.builtins = append(in.builtins, langBuiltins...)
	in.builtins = append(in.builtins, langSpecialOps...)
	in.builtins = append(in.builtins, in.extra...)
	for i, b := range in.builtins {
		if i < len(langBuiltins)+len(langSpecialOps) {
			switch b.Name {
			case "quote":
				in.quoteForm = b.value(i)
			case "lambda":
				in.lambdaForm = b.value(i)
			}
		}
		sym, err := in.MakeSymbol(b.Name)
		if err != nil {
			return err
		}
		if err := in.Define(sym, b.value(i), in.global); err != nil {
			return err
		}
	}
	if in.quoteForm.IsNil() || in.lambdaForm.IsNil() {
		return errors.New("quote and lambda special forms are not registered")
	}
	return nil
}

// Top returns the global environment.
func (in *Interpreter) Top() Value { return in.global }

// Builtins returns the registered builtin table.
func (in *Interpreter) Builtins() []*Builtin {
	return append([]*Builtin(nil), in.builtins...)
}

// EvalTop evaluates expr in the global environment.  It is the boundary at
// which failed evaluations are abandoned: on error the protection stack,
// registers and call stack are reset before the error is returned.  A
// successful result remains reachable until the next call to EvalTop.
func (in *Interpreter) EvalTop(expr Value) (Value, error) {
	in.Stack.Reset()
	val, err := in.Eval(expr, in.global)
	if err != nil {
		in.reset()
		return Nil, err
	}
	if n := len(in.protect); n > 0 {
		in.Log.WithField("depth", n).Warn("protection stack not empty after evaluation")
	}
	in.protect = in.protect[:0]
	in.reg = registers{val: val}
	return val, nil
}

// reset clears all transient roots.
func (in *Interpreter) reset() {
	in.protect = in.protect[:0]
	in.reg = registers{}
	in.Stack.Frames = in.Stack.Frames[:0]
}

// Load reads and evaluates the forms in r one at a time, returning the value
// of the last one.  Evaluation stops at the first error.
func (in *Interpreter) Load(name string, r io.Reader) (Value, error) {
	if in.Reader == nil {
		return Nil, errors.New("no reader configured")
	}
	p := in.Reader.Read(in, name, r)
	result := Nil
	for {
		expr, err := p.Parse()
		if err == io.EOF {
			return result, nil
		}
		if err != nil {
			in.reset()
			return Nil, err
		}
		result, err = in.EvalTop(expr)
		if err != nil {
			return Nil, err
		}
	}
}

// LoadString evaluates the forms in source.
func (in *Interpreter) LoadString(name, source string) (Value, error) {
	return in.Load(name, strings.NewReader(source))
}

// LoadFile evaluates the forms in the named file.
func (in *Interpreter) LoadFile(path string) (Value, error) {
	f, err := os.Open(path) //nolint:gosec // loads user-specified source files
	if err != nil {
		return Nil, err
	}
	defer f.Close() //nolint:errcheck // read-only
	return in.Load(path, f)
}
