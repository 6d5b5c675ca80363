// Copyright © 2026 The LISPE authors

package cmd

import (
	"os"

	"github.com/luthersystems/lispe/diagnostic"
	"github.com/luthersystems/lispe/repl"
)

func colorMode() diagnostic.ColorMode {
	return diagnostic.ParseColorMode(colorFlag)
}

func newRenderer() *diagnostic.Renderer {
	return &diagnostic.Renderer{Color: colorMode()}
}

// renderError renders an evaluation, syntax or I/O error to stderr.
func renderError(err error) {
	_ = newRenderer().Render(os.Stderr, repl.ErrorDiagnostic(err))
}
