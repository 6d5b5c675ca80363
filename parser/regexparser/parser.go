// Copyright © 2026 The LISPE authors

/*
Package regexparser provides a lisp parser built from regular expression
combinators.

	expr     := <comment> | <atom> | <list> | '\'' <expr>
	list     := '(' <expr>* ')'
	atom     := /[^\s()';"]+/
	comment  := ';' <any>* <newline>

Atoms are classified once a complete top-level form has been recognized.  An
atom is a number, a boolean, the dot of a dotted list or a symbol.
*/
package regexparser

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	parsec "github.com/prataprc/goparsec"

	"github.com/luthersystems/lispe/lisp"
	"github.com/luthersystems/lispe/parser/token"
)

// NewReader returns a lisp.Reader.
func NewReader() lisp.Reader {
	return &parsecReader{}
}

type parsecReader struct{}

// Read implements lisp.Reader.  The source is consumed on the first call to
// Parse.
func (*parsecReader) Read(in *lisp.Interpreter, name string, r io.Reader) lisp.Parser {
	return &Parser{
		in:     in,
		name:   name,
		r:      r,
		parser: newParsecParser(),
	}
}

// Parser produces the forms of one source text.
type Parser struct {
	in     *lisp.Interpreter
	name   string
	r      io.Reader
	text   []byte
	s      parsec.Scanner
	parser parsec.Parser
	err    error
}

// Parse returns the next form of the source text, or io.EOF.
func (p *Parser) Parse() (lisp.Value, error) {
	if p.err != nil {
		return lisp.Nil, p.err
	}
	if p.s == nil {
		if err := p.init(); err != nil {
			p.err = err
			return lisp.Nil, err
		}
	}
	for {
		var root parsec.ParsecNode
		root, p.s = p.parser(p.s)
		if root == nil {
			p.err = p.trailing()
			return lisp.Nil, p.err
		}
		forms, err := collect([]parsec.ParsecNode{root})
		if err != nil {
			p.err = p.syntaxError(err)
			return lisp.Nil, p.err
		}
		if len(forms) == 0 {
			// a comment
			continue
		}
		v, err := p.value(forms[0])
		if err != nil {
			p.err = err
		}
		return v, err
	}
}

func (p *Parser) init() error {
	text, err := io.ReadAll(p.r)
	if err != nil {
		return err
	}
	if bytes.HasPrefix(text, []byte("#!")) {
		end := bytes.IndexByte(text, '\n')
		if end < 0 {
			end = len(text)
		}
		text = append(bytes.Repeat([]byte(" "), end), text[end:]...)
	}
	p.text = bytes.TrimRight(text, " \t\r\n")
	p.s = parsec.NewScanner(p.text)
	return nil
}

// trailing reports why the parser stopped matching.
func (p *Parser) trailing() error {
	_, s := p.s.SkipWS()
	if s.Endof() {
		return io.EOF
	}
	pos := s.GetCursor()
	c, _ := utf8.DecodeRune(p.text[pos:])
	switch c {
	case ')':
		return lisp.SyntaxErrorf(p.location(pos), "unexpected )")
	case '"':
		return lisp.SyntaxErrorf(p.location(pos), "string literals are not supported")
	}
	return lisp.SyntaxErrorf(p.location(pos), "unexpected text starting with %q", c)
}

func (p *Parser) syntaxError(err error) error {
	if perr, ok := err.(*posError); ok {
		return lisp.SyntaxErrorf(p.location(perr.pos), "%s", perr.msg)
	}
	return err
}

// location converts a byte offset in the source text to a Location.
func (p *Parser) location(pos int) *token.Location {
	line, col := 1, 1
	for _, c := range string(p.text[:pos]) {
		if c == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return &token.Location{File: p.name, Pos: pos, Line: line, Col: col}
}

var (
	realPattern   = `(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][+-]?[0-9]+)?`
	numberRegexp  = regexp.MustCompile(`^[+-]?` + realPattern + `(?:(?:[+-]` + realPattern + `)?i)?$`)
	symbolRegexp  = regexp.MustCompile(`^[\pL._+\-*/=<>!&~%?$:^@][\pL0-9._+\-*/=<>!&~%?$:^@]*$`)
	booleanValues = map[string]lisp.Value{
		"#t":     lisp.True,
		"#true":  lisp.True,
		"#f":     lisp.False,
		"#false": lisp.False,
	}
)

// value allocates f on the interpreter heap.
func (p *Parser) value(f *form) (lisp.Value, error) {
	switch f.kind {
	case formQuote:
		x, err := p.value(f.items[0])
		if err != nil {
			return lisp.Nil, err
		}
		g := p.in.Protect(x)
		defer g.Release()
		quote, err := p.in.MakeSymbol("quote")
		if err != nil {
			return lisp.Nil, err
		}
		return p.in.List(quote, x)
	case formList:
		return p.list(f)
	default:
		return p.atom(f)
	}
}

func (p *Parser) list(f *form) (lisp.Value, error) {
	items := f.items
	tail := lisp.Nil
	g := p.in.Protect(lisp.Nil)
	defer g.Release()
	for i, item := range items {
		if !item.isDot() {
			continue
		}
		if i == 0 || i != len(items)-2 {
			return lisp.Nil, lisp.SyntaxErrorf(p.location(item.pos), "unexpected .")
		}
		v, err := p.value(items[i+1])
		if err != nil {
			return lisp.Nil, err
		}
		tail = v
		g.Set(0, tail)
		items = items[:i]
		break
	}
	// Build from the end so each new pair only needs the protected list.
	list := tail
	for i := len(items) - 1; i >= 0; i-- {
		x, err := p.value(items[i])
		if err != nil {
			return lisp.Nil, err
		}
		list, err = p.in.Cons(x, list)
		if err != nil {
			return lisp.Nil, err
		}
		g.Set(0, list)
	}
	return list, nil
}

func (p *Parser) atom(f *form) (lisp.Value, error) {
	text := f.text
	switch {
	case f.isDot():
		return lisp.Nil, lisp.SyntaxErrorf(p.location(f.pos), "unexpected .")
	case strings.HasPrefix(text, "#"):
		if v, ok := booleanValues[text]; ok {
			return v, nil
		}
		return lisp.Nil, lisp.SyntaxErrorf(p.location(f.pos), "invalid boolean literal: %s", text)
	case numberRegexp.MatchString(text):
		n, err := lisp.ParseNumber(text)
		if err != nil {
			return lisp.Nil, lisp.SyntaxErrorf(p.location(f.pos), "%v", err)
		}
		return p.in.MakeNumber(n)
	case symbolRegexp.MatchString(text) && !startsNumeric(text):
		return p.in.MakeSymbol(text)
	default:
		return lisp.Nil, lisp.SyntaxErrorf(p.location(f.pos), "invalid number literal: %s", text)
	}
}

// startsNumeric matches text the lexer would have read as a number.
func startsNumeric(text string) bool {
	c := text[0]
	if c == '+' || c == '-' || c == '.' {
		if len(text) == 1 {
			return false
		}
		c = text[1]
	}
	return '0' <= c && c <= '9'
}

type formKind uint

const (
	formAtom formKind = iota
	formList
	formQuote
)

// form is a parsed expression that has not been allocated on the heap.
type form struct {
	kind  formKind
	pos   int
	text  string
	items []*form
}

func (f *form) isDot() bool {
	return f.kind == formAtom && f.text == "."
}

type posError struct {
	pos int
	msg string
}

func (e *posError) Error() string {
	return fmt.Sprintf("%d: %s", e.pos, e.msg)
}

func newParsecParser() parsec.Parser {
	openP := parsec.Atom("(", "OPENP")
	closeP := parsec.Atom(")", "CLOSEP")
	q := parsec.Atom("'", "QUOTE")
	comment := parsec.Token(`;[^\n]*`, "COMMENT")
	atom := parsec.Token(`[^\s()';"]+`, "ATOM")

	var expr parsec.Parser // forward declaration allows for recursive parsing
	exprList := parsec.Kleene(nil, &expr)
	list := parsec.And(listNode, openP, exprList, closeP)
	unmatched := parsec.And(unmatchedNode, openP, exprList, parsec.End())
	quoted := parsec.And(quoteNode, q, &expr)
	expr = parsec.OrdChoice(nil,
		comment,
		atom,
		list,
		quoted,
		// Error matching cases come last because they have the lowest
		// precedence.
		unmatched,
	)
	return expr
}

func listNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	open := nodes[0].(*parsec.Terminal)
	items, err := collect(nodes[1 : len(nodes)-1])
	if err != nil {
		return err
	}
	return &form{kind: formList, pos: open.Position, items: items}
}

func unmatchedNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	open := nodes[0].(*parsec.Terminal)
	return &posError{pos: open.Position, msg: "unmatched " + open.GetValue()}
}

func quoteNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	q := nodes[0].(*parsec.Terminal)
	items, err := collect(nodes[1:])
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return &posError{pos: q.Position, msg: "quote is not followed by an expression"}
	}
	return &form{kind: formQuote, pos: q.Position, items: items[:1]}
}

// collect flattens parsec output into forms, dropping comments.  The first
// error node encountered is returned.
func collect(nodes []parsec.ParsecNode) ([]*form, error) {
	var forms []*form
	for _, n := range nodes {
		switch node := n.(type) {
		case *parsec.Terminal:
			if node.Name == "ATOM" {
				forms = append(forms, &form{kind: formAtom, pos: node.Position, text: node.Value})
			}
		case *form:
			forms = append(forms, node)
		case error:
			return nil, node
		case []parsec.ParsecNode:
			sub, err := collect(node)
			if err != nil {
				return nil, err
			}
			forms = append(forms, sub...)
		}
	}
	return forms, nil
}
