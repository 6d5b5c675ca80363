// Copyright © 2026 The LISPE authors

package repl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luthersystems/lispe/lisp"
	"github.com/luthersystems/lispe/parser"
)

func TestSymbolCompleter(t *testing.T) {
	in, err := lisp.New(lisp.WithReader(parser.NewReader()))
	require.NoError(t, err)
	_, err = in.LoadString("test", "(define set-counter 0)")
	require.NoError(t, err)

	c := &symbolCompleter{in: in}

	candidates, offset := c.Do([]rune("(set"), 4)
	assert.Equal(t, 3, offset)
	assert.Contains(t, candidates, []rune("-car!"))
	assert.Contains(t, candidates, []rune("-counter"))
	assert.Contains(t, candidates, []rune("!"))

	candidates, offset = c.Do([]rune("'con"), 4)
	assert.Equal(t, 3, offset)
	assert.Contains(t, candidates, []rune("s"))

	candidates, _ = c.Do([]rune("(zzz-nonexistent"), 16)
	assert.Empty(t, candidates)

	candidates, offset = c.Do([]rune("(car "), 5)
	assert.Empty(t, candidates)
	assert.Zero(t, offset)
}
