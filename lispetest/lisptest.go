// Copyright © 2026 The LISPE authors

package lispetest

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/luthersystems/lispe/lisp"
	"github.com/luthersystems/lispe/parser"
)

// BenchmarkSource is a program exercising the reader and evaluator.
const BenchmarkSource = `
; naive recursion and list building
(define (fib n)
  (if (< n 2)
      n
      (+ (fib (- n 1)) (fib (- n 2)))))
(define (build n acc)
  (if (= n 0)
      acc
      (build (- n 1) (cons (make-rectangular n (- n)) acc))))
(define (sum xs)
  (if (null? xs) 0 (+ (car xs) (sum (cdr xs)))))
(fib 15)
(sum (build 500 '()))
'(a b . c)
`

// BenchmarkParse returns a benchmark reading every form of source.
func BenchmarkParse(source string, r func() lisp.Reader) func(*testing.B) {
	return func(b *testing.B) {
		b.SetBytes(int64(len(source)))
		in, err := lisp.New(lisp.WithReader(r()))
		if err != nil {
			b.Fatal(err)
		}
		for i := 0; i < b.N; i++ {
			p := in.Reader.Read(in, "benchmark", strings.NewReader(source))
			for {
				_, err := p.Parse()
				if err == io.EOF {
					break
				}
				if err != nil {
					b.Fatalf("Parse failure: %v", err)
				}
			}
		}
	}
}

// NewInterpreter returns an interpreter whose output and logs go to the test
// log.  Options in opts are applied last.
func NewInterpreter(t testing.TB, opts ...lisp.Config) *lisp.Interpreter {
	logger := NewLogger(t)
	t.Cleanup(logger.Flush)
	cfg := []lisp.Config{
		lisp.WithReader(parser.NewReader()),
		lisp.WithStdout(logger),
		lisp.WithStderr(logger),
		lisp.WithLogger(NewLogrus(t)),
	}
	in, err := lisp.New(append(cfg, opts...)...)
	if err != nil {
		t.Fatalf("failed to initialize interpreter: %v", err)
	}
	return in
}

// EvalString loads src and returns the printed value of its last form.  Any
// error fails the test.
func EvalString(t testing.TB, in *lisp.Interpreter, src string) string {
	t.Helper()
	v, err := in.LoadString("test", src)
	if err != nil {
		LispError(t, err)
		t.FailNow()
	}
	return in.String(v)
}

// LispError reports err to t along with its stack trace when it has one.
func LispError(t testing.TB, err error) {
	t.Helper()
	var lerr *lisp.Error
	if !errors.As(err, &lerr) {
		t.Error(err)
		return
	}
	var buf bytes.Buffer
	_, ioerr := lerr.WriteTrace(&buf)
	if ioerr != nil {
		t.Errorf("io error: %v", ioerr)
		t.Error(err)
		return
	}
	t.Error(buf.String())
}

// TestSequence is a sequence of lisp expressions which are evaluated
// sequentially by one interpreter.
type TestSequence []struct {
	Expr   string // a lisp expression
	Result string // the printed result, or the error message on failure
	Output string // text written to standard output
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// RunTestSuite runs each TestSequence in tests on an isolated interpreter.
// An expression whose evaluation fails matches when Result equals the error
// message.
func RunTestSuite(t *testing.T, tests TestSuite, opts ...lisp.Config) {
	for i, test := range tests {
		var out bytes.Buffer
		opts := append([]lisp.Config{
			lisp.WithMaxStackHeight(50000),
		}, opts...)
		opts = append(opts, lisp.WithStdout(&out))
		in := NewInterpreter(t, opts...)
		for j, expr := range test.TestSequence {
			out.Reset()
			var result string
			v, err := in.LoadString("test", expr.Expr)
			if err != nil {
				result = err.Error()
			} else {
				result = in.String(v)
			}
			if result != expr.Result {
				t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, expr.Result, result)
			}
			if out.String() != expr.Output {
				t.Errorf("test %d %q: expr %d: expected output %q (got %q)", i, test.Name, j, expr.Output, out.String())
			}
			if in.ProtectDepth() != 0 {
				t.Errorf("test %d %q: expr %d: protection stack not empty (%d)", i, test.Name, j, in.ProtectDepth())
			}
		}
	}
}

// RunBenchmark runs a standard benchmark that evaluates source on a fresh
// interpreter per iteration.
func RunBenchmark(b *testing.B, source string, opts ...lisp.Config) {
	b.StopTimer()
	for i := 0; i < b.N; i++ {
		opts := append([]lisp.Config{
			lisp.WithReader(parser.NewReader()),
			lisp.WithStdout(io.Discard),
			lisp.WithStderr(io.Discard),
		}, opts...)
		in, err := lisp.New(opts...)
		if err != nil {
			b.Fatal(err)
		}
		b.StartTimer()
		_, err = in.LoadString("benchmark", source)
		b.StopTimer()
		if err != nil {
			b.Fatal(err)
		}
	}
}
