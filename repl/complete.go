// Copyright © 2026 The LISPE authors

package repl

import (
	"strings"

	"github.com/luthersystems/lispe/lisp"
)

// symbolCompleter implements readline.AutoCompleter by enumerating the
// symbols bound in the global environment.
type symbolCompleter struct {
	in *lisp.Interpreter
}

func (c *symbolCompleter) Do(line []rune, pos int) ([][]rune, int) {
	// Extract the word being typed (backwards from cursor to whitespace,
	// open paren or quote).
	start := pos
	for start > 0 {
		ch := line[start-1]
		if ch == ' ' || ch == '\t' || ch == '(' || ch == '\'' || ch == '\n' {
			break
		}
		start--
	}
	prefix := string(line[start:pos])
	if prefix == "" {
		return nil, 0
	}

	var result [][]rune
	for _, name := range c.in.GlobalNames() {
		if strings.HasPrefix(name, prefix) {
			result = append(result, []rune(name[len(prefix):]))
		}
	}
	if len(result) == 0 {
		return nil, 0
	}
	return result, len(prefix)
}
