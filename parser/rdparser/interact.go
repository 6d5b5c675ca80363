// Copyright © 2026 The LISPE authors

package rdparser

import (
	"sync"

	"github.com/luthersystems/lispe/lisp"
	"github.com/luthersystems/lispe/parser/token"
)

// Interactive parses one expression at a time and calls Read whenever it
// needs more tokens, typically after prompting for another line.
type Interactive struct {
	prompt     string
	promptCont string
	Read       TokenGenerator
	buf        []*token.Token
	mut        sync.RWMutex
	p          *Parser
}

// NewInteractive initializes and returns a new Interactive parser that
// allocates values on in.
func NewInteractive(in *lisp.Interpreter, read TokenGenerator) *Interactive {
	p := &Interactive{
		Read: read,
	}
	src := NewTokenStreamSource(TokenGenerator(p.read))
	p.p = NewFromSource(in, src)
	return p
}

// SetPrompts configures the strings returned by p.Prompt().  The cont string
// is used while an expression spans multiple lines.
func (p *Interactive) SetPrompts(prompt, cont string) {
	p.prompt = prompt
	p.promptCont = cont
}

// Prompt returns the prompt for the next line of input.
func (p *Interactive) Prompt() string {
	if p.IsParsing() {
		return p.promptCont
	}
	return p.prompt
}

// IsParsing returns true if p is in the middle of parsing an expression.
// IsParsing can be called at any time, potentially by concurrent goroutines or
// when p is nil.
func (p *Interactive) IsParsing() bool {
	if p == nil {
		return false
	}
	p.mut.RLock()
	defer p.mut.RUnlock()
	return p.p.parsing
}

// read is called by the parser with the write lock held.  The lock is dropped
// while waiting on p.Read so that Prompt remains callable.
func (p *Interactive) read() []*token.Token {
	if tok := p.readBuffer(); len(tok) != 0 {
		return tok
	}

	p.mut.Unlock()
	defer p.mut.Lock()
	if p.Read == nil {
		panic("nil read func")
	}

	p.buf = p.Read()
	if len(p.buf) == 0 {
		panic("no tokens read")
	}

	return p.readBuffer()
}

// readBuffer may return an empty list.
func (p *Interactive) readBuffer() []*token.Token {
	if len(p.buf) > 0 {
		tok := p.buf[0]
		p.buf = p.buf[1:]
		return []*token.Token{tok}
	}
	return nil
}

// Parse parses one expression from the interactive token stream.  If a parse
// error is encountered, any buffered tokens (presumably from the current
// line) are discarded so corrected source can be re-read.
func (p *Interactive) Parse() (lisp.Value, error) {
	p.mut.Lock()
	defer p.mut.Unlock()
	v, err := p.p.Parse()
	if err != nil {
		p.buf = nil
		p.p.src.peek = nil
		return lisp.Nil, err
	}
	return v, nil
}
