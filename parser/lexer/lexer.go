// Copyright © 2026 The LISPE authors

package lexer

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/luthersystems/lispe/parser/token"
)

type LexFn func(*Lexer) []*token.Token

const (
	miscWordRunes   = "0123456789" + miscWordSymbols
	miscWordSymbols = "._+-*/=<>!&~%?$:^@"
)

type Lexer struct {
	scanner *token.Scanner
	lex     LexFn
}

func New(s *token.Scanner) *Lexer {
	lex := &Lexer{
		scanner: s,
		lex:     (*Lexer).readToken,
	}
	return lex
}

// ReadToken returns the next tokens in the stream.  After an EOF token is
// returned subsequent calls continue to return EOF.
func (lex *Lexer) ReadToken() []*token.Token {
	return lex.lex(lex)
}

func (lex *Lexer) readToken() []*token.Token {
	lex.skipWhitespace()
	if !lex.scanner.Accept(func(c rune) bool { return true }) {
		if lex.scanner.EOF() {
			return lex.emit(token.EOF, "")
		}
		return lex.emitError(lex.scanner.Err())
	}
	switch lex.scanner.Rune() {
	case '(':
		return lex.emitText(token.PAREN_L)
	case ')':
		return lex.emitText(token.PAREN_R)
	case '\'':
		return lex.emitText(token.QUOTE)
	case ';':
		lex.scanner.AcceptSeq(func(c rune) bool { return c != '\n' })
		return lex.emitText(token.COMMENT)
	case '#':
		return lex.readHash()
	case '"':
		lex.scanner.AcceptSeq(func(c rune) bool { return c != '"' && c != '\n' })
		lex.scanner.AcceptRune('"')
		return lex.errorf("string literals are not supported")
	case '.':
		switch {
		case isDelimiter(lex.peekRune()) || lex.scanner.EOF():
			return lex.emitText(token.DOT)
		case isDigit(lex.peekRune()):
			return lex.readNumber()
		default:
			return lex.readSymbol()
		}
	case '+', '-':
		if c := lex.peekRune(); isDigit(c) || c == '.' {
			return lex.readNumber()
		}
		return lex.readSymbol()
	default:
		if isDigit(lex.scanner.Rune()) {
			return lex.readNumber()
		}
		if isWordStart(lex.scanner.Rune()) {
			return lex.readSymbol()
		}
		err := fmt.Errorf("unexpected text starting with %q", lex.scanner.Rune())
		return lex.emit(token.INVALID, err.Error())
	}
}

// readHash handles booleans and a leading #! line.
func (lex *Lexer) readHash() []*token.Token {
	if lex.scanner.AcceptRune('!') {
		lex.lex = (*Lexer).readHashBang
		return lex.lex(lex)
	}
	lex.scanner.AcceptSeq(isWord)
	switch text := lex.scanner.Text(); text {
	case "#t", "#f", "#true", "#false":
		return lex.emitText(token.BOOL)
	default:
		return lex.errorf("invalid boolean literal: %s", text)
	}
}

func (lex *Lexer) readHashBang() []*token.Token {
	lex.lex = (*Lexer).readToken
	lex.scanner.AcceptSeq(func(c rune) bool { return c != '\n' })
	return lex.emitText(token.COMMENT)
}

func (lex *Lexer) readSymbol() []*token.Token {
	lex.scanner.AcceptSeq(isWord)
	return lex.emitText(token.SYMBOL)
}

// readNumber scans a real literal with an optional imaginary part.  The first
// rune (a sign, digit or '.') has already been scanned.
func (lex *Lexer) readNumber() []*token.Token {
	if !lex.readReal() {
		return lex.errorf("invalid number literal starting: %v", lex.scanner.Text())
	}
	if lex.scanner.AcceptAny("+-") {
		if !lex.readUnsigned() || !lex.scanner.AcceptRune('i') {
			return lex.errorf("invalid complex literal starting: %v", lex.scanner.Text())
		}
	} else {
		lex.scanner.AcceptRune('i')
	}
	if c, ok := lex.scanner.Peek(); ok && !isDelimiter(c) {
		lex.scanner.AcceptSeq(isWord)
		return lex.errorf("invalid number literal: %v", lex.scanner.Text())
	}
	// the text may not be representable (overflow) which is detected when it
	// is parsed.
	return lex.emitText(token.NUMBER)
}

// readReal finishes a real literal whose first rune was already scanned.
func (lex *Lexer) readReal() bool {
	var digits int
	switch c := lex.scanner.Rune(); {
	case isDigit(c):
		digits++
	case c == '.':
		return lex.scanner.AcceptSeqDigit() > 0 && lex.readExponent()
	}
	return lex.readMantissa(digits)
}

// readUnsigned reads a complete unsigned real literal.
func (lex *Lexer) readUnsigned() bool {
	return lex.readMantissa(0)
}

func (lex *Lexer) readMantissa(digits int) bool {
	digits += lex.scanner.AcceptSeqDigit()
	if lex.scanner.AcceptRune('.') {
		digits += lex.scanner.AcceptSeqDigit()
	}
	if digits == 0 {
		return false
	}
	return lex.readExponent()
}

func (lex *Lexer) readExponent() bool {
	if !lex.scanner.AcceptAny("eE") {
		return true
	}
	lex.scanner.AcceptAny("+-")
	return lex.scanner.AcceptSeqDigit() > 0
}

func (lex *Lexer) emit(typ token.Type, text string) []*token.Token {
	tok := []*token.Token{{
		Type:   typ,
		Text:   text,
		Source: lex.scanner.LocStart(),
	}}
	lex.scanner.Ignore()
	return tok
}

func (lex *Lexer) emitText(typ token.Type) []*token.Token {
	return []*token.Token{lex.scanner.EmitToken(typ)}
}

func (lex *Lexer) emitError(err error) []*token.Token {
	if err == io.EOF {
		return lex.emit(token.ERROR, "unexpected EOF")
	}
	return lex.emit(token.ERROR, err.Error())
}

func (lex *Lexer) errorf(format string, v ...interface{}) []*token.Token {
	return lex.emitError(fmt.Errorf(format, v...))
}

func (lex *Lexer) skipWhitespace() {
	if lex.scanner.AcceptSeqSpace() > 0 {
		lex.scanner.Ignore()
	}
}

func (lex *Lexer) peekRune() rune {
	r, _ := lex.scanner.Peek()
	return r
}

func isDelimiter(c rune) bool {
	return unicode.IsSpace(c) || strings.ContainsRune("()';\"", c)
}

func isWordStart(c rune) bool {
	return unicode.IsLetter(c) || strings.ContainsRune(miscWordSymbols, c)
}

func isWord(c rune) bool {
	return unicode.IsLetter(c) || strings.ContainsRune(miscWordRunes, c)
}

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}
