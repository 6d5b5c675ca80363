// Copyright © 2026 The LISPE authors

package lisplib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luthersystems/lispe/lisp"
	"github.com/luthersystems/lispe/parser"
)

func TestLoadLibrary(t *testing.T) {
	in, err := lisp.New(lisp.WithReader(parser.NewReader()), WithLibrary())
	require.NoError(t, err)
	v, err := in.LoadString("test", "(sqrt 16)")
	require.NoError(t, err)
	assert.Equal(t, "4", in.String(v))
	assert.Contains(t, in.GlobalNames(), "atan")
}
