// Copyright © 2026 The LISPE authors

package token

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

var errInvalidUTF8 = errors.New("invalid utf-8 sequence in source text")

// Scanner facilitates construction of tokens from a byte stream (io.Reader).
// It tracks the line and column of every token it emits.
type Scanner struct {
	file string
	path string
	r    *bufio.Reader

	text []rune // runes scanned since the last EmitToken or Ignore
	c    rune   // last scanned rune

	// position of the next unscanned rune
	pos, line, col int
	// position of the first rune of the current token
	startPos, startLine, startCol int

	peeked  bool
	peek    rune
	peekErr error
}

// NewScanner initializes and returns a new Scanner.
func NewScanner(file string, r io.Reader) *Scanner {
	return &Scanner{
		file:      file,
		r:         bufio.NewReader(r),
		line:      1,
		col:       1,
		startLine: 1,
		startCol:  1,
	}
}

// SetPath associates a physical location (e.g. filesystem path) with s.
func (s *Scanner) SetPath(path string) {
	s.path = path
}

// EmitToken returns a token containing the text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) EmitToken(typ Type) *Token {
	tok := &Token{
		Type:   typ,
		Text:   s.Text(),
		Source: s.LocStart(),
	}
	s.Ignore()
	return tok
}

// Ignore causes the scanner to skip all text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) Ignore() {
	s.text = s.text[:0]
	s.startPos, s.startLine, s.startCol = s.pos, s.line, s.col
}

// Text returns the text scanned since the last call to either EmitToken or
// Ignore.
func (s *Scanner) Text() string {
	return string(s.text)
}

// Rune returns the most recently scanned rune.
func (s *Scanner) Rune() rune {
	return s.c
}

// Peek returns the next rune to be scanned.  It returns false at EOF or when
// the input cannot be decoded, in which case ScanRune reports the cause.
func (s *Scanner) Peek() (rune, bool) {
	if !s.peeked {
		c, n, err := s.r.ReadRune()
		if err == nil && c == utf8.RuneError && n == 1 {
			err = errInvalidUTF8
		}
		s.peek, s.peekErr, s.peeked = c, err, true
	}
	return s.peek, s.peekErr == nil
}

// ScanRune consumes the next rune into the current token.
func (s *Scanner) ScanRune() error {
	c, ok := s.Peek()
	if !ok {
		return s.peekErr
	}
	s.peeked = false
	s.c = c
	s.text = append(s.text, c)
	s.pos += utf8.RuneLen(c)
	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return nil
}

// EOF reports whether the input is exhausted.
func (s *Scanner) EOF() bool {
	_, ok := s.Peek()
	return !ok && s.peekErr == io.EOF
}

// Err returns the error preventing the next rune from being scanned, if it
// is not EOF.
func (s *Scanner) Err() error {
	if _, ok := s.Peek(); ok || s.peekErr == io.EOF {
		return nil
	}
	return s.peekErr
}

func (s *Scanner) Accept(fn func(rune) bool) bool {
	c, ok := s.Peek()
	if !ok || !fn(c) {
		return false
	}
	return s.ScanRune() == nil
}

func (s *Scanner) AcceptRune(c rune) bool {
	return s.Accept(func(r rune) bool { return r == c })
}

func (s *Scanner) AcceptAny(charset string) bool {
	return s.Accept(func(r rune) bool { return strings.ContainsRune(charset, r) })
}

func (s *Scanner) AcceptSeq(fn func(rune) bool) int {
	var n int
	for s.Accept(fn) {
		n++
	}
	return n
}

func (s *Scanner) AcceptSeqDigit() int {
	return s.AcceptSeq(func(c rune) bool { return '0' <= c && c <= '9' })
}

func (s *Scanner) AcceptSeqSpace() int {
	return s.AcceptSeq(unicode.IsSpace)
}

// LocStart returns a Location referencing the beginning of the current token.
func (s *Scanner) LocStart() *Location {
	return &Location{
		File: s.file,
		Path: s.path,
		Pos:  s.startPos,
		Line: s.startLine,
		Col:  s.startCol,
	}
}

// Loc returns a Location referencing the next unscanned rune.
func (s *Scanner) Loc() *Location {
	return &Location{
		File: s.file,
		Path: s.path,
		Pos:  s.pos,
		Line: s.line,
		Col:  s.col,
	}
}
