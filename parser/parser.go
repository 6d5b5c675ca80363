// Copyright © 2026 The LISPE authors

package parser

import (
	"fmt"

	"github.com/luthersystems/lispe/lisp"
	"github.com/luthersystems/lispe/parser/rdparser"
	"github.com/luthersystems/lispe/parser/regexparser"
)

// Reader implementations selectable by name.
const (
	KindRecursive = "rd"
	KindRegex     = "regex"
)

// NewReader returns a new lisp.Reader
func NewReader() lisp.Reader {
	return rdparser.NewReader()
}

// NewReaderKind returns the lisp.Reader named by kind.  The empty string
// selects the default reader.
func NewReaderKind(kind string) (lisp.Reader, error) {
	switch kind {
	case "", KindRecursive:
		return rdparser.NewReader(), nil
	case KindRegex:
		return regexparser.NewReader(), nil
	default:
		return nil, fmt.Errorf("unknown parser: %q", kind)
	}
}
