// Copyright © 2026 The LISPE authors

package lexer

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luthersystems/lispe/parser/token"
)

func TestLexer(t *testing.T) {
	tests := []struct {
		input  string
		tokens []*token.Token
	}{
		{``, []*token.Token{
			testToken(token.EOF, ""),
		}},
		{`abc`, []*token.Token{
			testToken(token.SYMBOL, "abc"),
			testToken(token.EOF, ""),
		}},
		{`(+ 1 -2)`, []*token.Token{
			testToken(token.PAREN_L, "("),
			testToken(token.SYMBOL, "+"),
			testToken(token.NUMBER, "1"),
			testToken(token.NUMBER, "-2"),
			testToken(token.PAREN_R, ")"),
			testToken(token.EOF, ""),
		}},
		{`- -x ... set-car! a.b`, []*token.Token{
			testToken(token.SYMBOL, "-"),
			testToken(token.SYMBOL, "-x"),
			testToken(token.SYMBOL, "..."),
			testToken(token.SYMBOL, "set-car!"),
			testToken(token.SYMBOL, "a.b"),
			testToken(token.EOF, ""),
		}},
		{`10 0.5 .5 -.5 12e12 12e-12 12.02E+5`, []*token.Token{
			testToken(token.NUMBER, "10"),
			testToken(token.NUMBER, "0.5"),
			testToken(token.NUMBER, ".5"),
			testToken(token.NUMBER, "-.5"),
			testToken(token.NUMBER, "12e12"),
			testToken(token.NUMBER, "12e-12"),
			testToken(token.NUMBER, "12.02E+5"),
			testToken(token.EOF, ""),
		}},
		{`2+3i 3i -1.5-2e3i 1e2+1e-2i`, []*token.Token{
			testToken(token.NUMBER, "2+3i"),
			testToken(token.NUMBER, "3i"),
			testToken(token.NUMBER, "-1.5-2e3i"),
			testToken(token.NUMBER, "1e2+1e-2i"),
			testToken(token.EOF, ""),
		}},
		{`'x '(a . b)`, []*token.Token{
			testToken(token.QUOTE, "'"),
			testToken(token.SYMBOL, "x"),
			testToken(token.QUOTE, "'"),
			testToken(token.PAREN_L, "("),
			testToken(token.SYMBOL, "a"),
			testToken(token.DOT, "."),
			testToken(token.SYMBOL, "b"),
			testToken(token.PAREN_R, ")"),
			testToken(token.EOF, ""),
		}},
		{`#t #f #true #false`, []*token.Token{
			testToken(token.BOOL, "#t"),
			testToken(token.BOOL, "#f"),
			testToken(token.BOOL, "#true"),
			testToken(token.BOOL, "#false"),
			testToken(token.EOF, ""),
		}},
		{"; comment\nx", []*token.Token{
			testToken(token.COMMENT, "; comment"),
			testToken(token.SYMBOL, "x"),
			testToken(token.EOF, ""),
		}},
		{"#!/usr/bin/env lispe\n(x)", []*token.Token{
			testToken(token.COMMENT, "#!/usr/bin/env lispe"),
			testToken(token.PAREN_L, "("),
			testToken(token.SYMBOL, "x"),
			testToken(token.PAREN_R, ")"),
			testToken(token.EOF, ""),
		}},
		{`(#x)`, []*token.Token{
			testToken(token.PAREN_L, "("),
			testToken(token.ERROR, "invalid boolean literal: #x"),
		}},
		{`"abc"`, []*token.Token{
			testToken(token.ERROR, "string literals are not supported"),
		}},
		{`12abc`, []*token.Token{
			testToken(token.ERROR, "invalid number literal: 12abc"),
		}},
		{`1+ 2`, []*token.Token{
			testToken(token.ERROR, "invalid complex literal starting: 1+"),
		}},
	}
testloop:
	for i, test := range tests {
		lex := New(token.NewScanner("", strings.NewReader(test.input)))
		var tokens []*token.Token
		numToken := 0
		for {
			toks := lex.ReadToken()
			if len(toks) != 1 {
				t.Fatalf("test %d: lexer returned %d tokens", i, len(toks))
			}
			tok := toks[0]
			tok.Source = nil
			tokens = append(tokens, tok)
			if tok.Type == token.EOF || tok.Type == token.ERROR {
				break
			}
			numToken++
			if numToken > 100000 {
				t.Errorf("test %d: apparent infinite scanning loop", i)
				continue testloop
			}
		}
		if !reflect.DeepEqual(tokens, test.tokens) {
			t.Errorf("test %d: unexpected tokens for input", i)
			t.Logf("source:\n\t%s", test.input)
			t.Logf("tokens:")
			for _, tok := range tokens {
				t.Logf("\t%v", tok)
			}
		}
	}
}

func TestLexerLocation(t *testing.T) {
	lex := New(token.NewScanner("test.lisp", strings.NewReader("(a\n  b)")))
	var toks []*token.Token
	for {
		tok := lex.ReadToken()[0]
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	require.Len(t, toks, 5)
	assert.Equal(t, "test.lisp:1:1", toks[0].Source.String())
	assert.Equal(t, "test.lisp:1:2", toks[1].Source.String())
	assert.Equal(t, "test.lisp:2:3", toks[2].Source.String())
	assert.Equal(t, "test.lisp:2:4", toks[3].Source.String())
	assert.Equal(t, 6, toks[3].Source.Pos)
}

func testToken(typ token.Type, text string) *token.Token {
	return &token.Token{
		Type: typ,
		Text: text,
	}
}
