// Copyright © 2026 The LISPE authors

package diagnostic

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Renderer formats diagnostics as annotated source snippets:
//
//	error: syntax-error: unmatched (
//	  --> prog.lisp:3:1
//	   |
//	 3 |  (define (f x)
//	   |  ^
//	   |
//	   = note: in car [builtin]
type Renderer struct {
	// Color controls ANSI color output. Default is ColorAuto.
	Color ColorMode

	// SourceReader reads source file contents. If nil, os.ReadFile is used.
	SourceReader func(string) ([]byte, error)
}

// Render writes a single diagnostic to w.
func (r *Renderer) Render(w io.Writer, d Diagnostic) error {
	p := choosePalette(r.Color, w)
	bw := bufio.NewWriter(w)
	ew := &errWriter{w: bw}

	sevColor := p.boldRed
	switch d.Severity {
	case SeverityWarning:
		sevColor = p.yellow
	case SeverityNote:
		sevColor = p.boldCyan
	}
	ew.printf("%s%s%s%s: %s%s%s\n", sevColor, p.bold, d.Severity, p.reset, p.bold, d.Message, p.reset)
	for _, span := range d.Spans {
		r.writeSpan(ew, span, p)
	}
	for _, note := range d.Notes {
		ew.printf("   %s=%s note: %s\n", p.boldCyan, p.reset, note)
	}
	if ew.err != nil {
		return ew.err
	}
	return bw.Flush()
}

// RenderAll writes all diagnostics to w separated by blank lines.
func (r *Renderer) RenderAll(w io.Writer, diags []Diagnostic) error {
	for i, d := range diags {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := r.Render(w, d); err != nil {
			return err
		}
	}
	return nil
}

// errWriter wraps a writer and captures the first error, short-circuiting
// subsequent writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, a ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, a...)
}

func (r *Renderer) writeSpan(ew *errWriter, span Span, p palette) {
	loc := span.File
	switch {
	case span.Line > 0 && span.Col > 0:
		loc = fmt.Sprintf("%s:%d:%d", span.File, span.Line, span.Col)
	case span.Line > 0:
		loc = fmt.Sprintf("%s:%d", span.File, span.Line)
	}
	ew.printf("  %s-->%s %s\n", p.boldBlue, p.reset, loc)

	source := span.Source
	if source == "" {
		source = r.readSourceLine(span.File, span.Line)
	}
	if source == "" {
		ew.printf("   %s|%s\n", p.boldBlue, p.reset)
		return
	}

	lineStr := strconv.Itoa(span.Line)
	pad := strings.Repeat(" ", len(lineStr))
	gutter := func(label string) string {
		return " " + p.boldBlue + label + " |" + p.reset
	}

	ew.printf("%s\n", gutter(pad))
	ew.printf("%s  %s\n", gutter(lineStr), expandTabs(source))

	col := span.Col
	if col <= 0 {
		col = 1
	}
	endCol := span.EndCol
	if endCol <= 0 {
		endCol = tokenEnd(source, col)
	}
	if endCol < col {
		endCol = col
	}
	indent := 0
	if col-1 <= len(source) {
		indent = len(expandTabs(source[:col-1]))
	}
	ew.printf("%s  %s%s%s%s", gutter(pad), strings.Repeat(" ", indent),
		p.boldRed, strings.Repeat("^", endCol-col+1), p.reset)
	if span.Label != "" {
		ew.printf(" %s%s%s", p.boldRed, span.Label, p.reset)
	}
	ew.printf("\n%s\n", gutter(pad))
}

func (r *Renderer) readSourceLine(file string, line int) string {
	if line <= 0 || file == "" {
		return ""
	}
	reader := r.SourceReader
	if reader == nil {
		reader = func(name string) ([]byte, error) {
			return os.ReadFile(name) //nolint:gosec // reads user-specified source files for display
		}
	}
	data, err := reader(file)
	if err != nil {
		return ""
	}
	lines := strings.Split(string(data), "\n")
	if line > len(lines) {
		return ""
	}
	return strings.TrimRight(lines[line-1], "\r")
}

// tokenEnd returns the 1-based column of the last character of the token
// starting at col.  Parentheses and quotes are tokens of their own.
func tokenEnd(source string, col int) int {
	if col <= 0 || col > len(source) {
		return col
	}
	start := col - 1
	c, size := utf8.DecodeRuneInString(source[start:])
	if isDelimiter(c) {
		return col
	}
	end := start + size
	for end < len(source) {
		c, size = utf8.DecodeRuneInString(source[end:])
		if isDelimiter(c) {
			break
		}
		end += size
	}
	return end
}

func isDelimiter(c rune) bool {
	return unicode.IsSpace(c) || strings.ContainsRune(`()'";`, c)
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
