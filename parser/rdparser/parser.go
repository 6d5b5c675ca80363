// Copyright © 2026 The LISPE authors

package rdparser

import (
	"io"

	"github.com/luthersystems/lispe/lisp"
	"github.com/luthersystems/lispe/parser/token"
)

type reader struct {
}

// NewReader returns a lisp.Reader to use in a lisp.Interpreter.
func NewReader() lisp.Reader {
	return &reader{}
}

// Read implements lisp.Reader.
func (*reader) Read(in *lisp.Interpreter, name string, r io.Reader) lisp.Parser {
	return New(in, token.NewScanner(name, r))
}

// Parser is a lisp parser.  Values are allocated on the heap of the
// interpreter it was created for.
type Parser struct {
	in      *lisp.Interpreter
	parsing bool
	src     *TokenSource
}

// NewFromSource initializes and returns a Parser that reads tokens from src.
func NewFromSource(in *lisp.Interpreter, src *TokenSource) *Parser {
	return &Parser{
		in:  in,
		src: src,
	}
}

// New initializes and returns a new Parser that reads tokens from scanner.
func New(in *lisp.Interpreter, scanner *token.Scanner) *Parser {
	return NewFromSource(in, NewTokenSource(scanner))
}

// Parse is a generic entry point that is similar to ParseExpression but is
// capable of handling EOF before reading an expression.  Parse returns io.EOF
// when the input holds no further expressions.
//
// The returned value is not protected from collection.  It must be rooted
// before the interpreter allocates again.
func (p *Parser) Parse() (lisp.Value, error) {
	p.ignoreComments()
	if p.src.IsEOF() {
		return lisp.Nil, io.EOF
	}
	return p.ParseExpression()
}

// ParseProgram parses every expression in the input.  Each element of the
// returned slice is protected and the caller must call PopN with its length
// once the expressions are no longer needed.
func (p *Parser) ParseProgram() ([]lisp.Value, error) {
	var exprs []lisp.Value
	for {
		expr, err := p.Parse()
		if err == io.EOF {
			return exprs, nil
		}
		if err != nil {
			p.in.PopN(len(exprs))
			return nil, err
		}
		exprs = append(exprs, p.in.Push(expr))
	}
}

// ParseExpression parses a single expression.  Unlike Parse, ParseExpression
// requires an expression to be present in the input stream and will report
// unexpected EOF tokens encountered.
func (p *Parser) ParseExpression() (lisp.Value, error) {
	fn := p.parseExpression()

	// Flag that an expression is in progress so that an Interactive parser can
	// determine which prompt to show.
	if !p.parsing {
		p.parsing = true
		defer func() { p.parsing = false }()
	}

	return fn(p)
}

func (p *Parser) parseExpression() func(p *Parser) (lisp.Value, error) {
	p.ignoreComments()
	switch p.PeekType() {
	case token.NUMBER:
		return (*Parser).ParseNumber
	case token.BOOL:
		return (*Parser).ParseBool
	case token.SYMBOL:
		return (*Parser).ParseSymbol
	case token.QUOTE:
		return (*Parser).ParseQuote
	case token.PAREN_L:
		return (*Parser).ParseConsExpression
	case token.ERROR, token.INVALID:
		return func(p *Parser) (lisp.Value, error) {
			p.src.Scan()
			return lisp.Nil, p.errorf("%s", p.TokenText())
		}
	case token.EOF:
		return func(p *Parser) (lisp.Value, error) {
			p.src.Scan()
			return lisp.Nil, p.errorf("unexpected EOF")
		}
	default:
		return func(p *Parser) (lisp.Value, error) {
			p.src.Scan()
			return lisp.Nil, p.errorf("unexpected %s", p.TokenText())
		}
	}
}

// ParseNumber parses a real or complex literal.
func (p *Parser) ParseNumber() (lisp.Value, error) {
	p.src.Scan()
	n, err := lisp.ParseNumber(p.TokenText())
	if err != nil {
		return lisp.Nil, p.errorf("%v", err)
	}
	return p.in.MakeNumber(n)
}

// ParseBool parses #t, #f and their long forms.
func (p *Parser) ParseBool() (lisp.Value, error) {
	p.src.Scan()
	switch p.TokenText() {
	case "#t", "#true":
		return lisp.True, nil
	default:
		return lisp.False, nil
	}
}

func (p *Parser) ParseSymbol() (lisp.Value, error) {
	p.src.Scan()
	return p.in.MakeSymbol(p.TokenText())
}

// ParseQuote parses 'x as (quote x).
func (p *Parser) ParseQuote() (lisp.Value, error) {
	p.src.Scan()
	loc := p.Location()
	p.ignoreComments()
	if p.src.IsEOF() {
		return lisp.Nil, lisp.SyntaxErrorf(loc, "unexpected EOF following quote")
	}
	x, err := p.ParseExpression()
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
}

// ParseConsExpression parses a proper or dotted list.
func (p *Parser) ParseConsExpression() (lisp.Value, error) {
	p.src.Scan()
	open := p.src.Token
	g := p.in.Protect(lisp.Nil)
	defer g.Release()
	head, last := lisp.Nil, lisp.Nil
	for {
		p.ignoreComments()
		switch {
		case p.src.IsEOF():
			return lisp.Nil, lisp.SyntaxErrorf(open.Source, "unmatched %s", open.Text)
		case p.src.AcceptType(token.PAREN_R):
			return head, nil
		case p.src.AcceptType(token.DOT):
			if head.IsNil() {
				return lisp.Nil, p.errorf("unexpected %s", p.TokenText())
			}
			tail, err := p.ParseExpression()
			if err != nil {
				return lisp.Nil, err
			}
			p.ignoreComments()
			if !p.src.AcceptType(token.PAREN_R) {
				p.src.Scan()
				return lisp.Nil, p.errorf("expected ) following dotted tail")
			}
			if err := p.in.SetCdr(last, tail); err != nil {
				return lisp.Nil, err
			}
			return head, nil
		}
		x, err := p.ParseExpression()
		if err != nil {
			return lisp.Nil, err
		}
		cell, err := p.in.Cons(x, lisp.Nil)
		if err != nil {
			return lisp.Nil, err
		}
		if head.IsNil() {
			head = cell
			g.Set(0, head)
		} else if err := p.in.SetCdr(last, cell); err != nil {
			return lisp.Nil, err
		}
		last = cell
	}
}

func (p *Parser) ignoreComments() {
	for p.src.AcceptType(token.COMMENT) {
	}
}

func (p *Parser) TokenText() string {
	return p.src.Token.Text
}

func (p *Parser) TokenType() token.Type {
	return p.src.Token.Type
}

func (p *Parser) Location() *token.Location {
	return p.src.Token.Source
}

func (p *Parser) PeekType() token.Type {
	return p.src.Peek().Type
}

func (p *Parser) PeekLocation() *token.Location {
	return p.src.Peek().Source
}

func (p *Parser) errorf(format string, v ...interface{}) error {
	return lisp.SyntaxErrorf(p.Location(), format, v...)
}
