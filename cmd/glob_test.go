// Copyright © 2026 The LISPE authors

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandArgs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.lisp", "a.scm", "notes.txt", "sub/c.lisp"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("()"), 0o600))
	}

	files, err := expandArgs([]string{"first.lisp", dir + "/..."})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"first.lisp",
		filepath.Join(dir, "a.scm"),
		filepath.Join(dir, "b.lisp"),
		filepath.Join(dir, "sub", "c.lisp"),
	}, files)

	_, err = expandArgs([]string{filepath.Join(dir, "missing") + "/..."})
	assert.Error(t, err)
}
