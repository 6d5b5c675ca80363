// Copyright © 2026 The LISPE authors

package profiler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/luthersystems/lispe/lisp"
)

func TestCleanLabel(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		expected string
	}{
		{
			name:     "empty",
			label:    "",
			expected: "",
		},
		{
			name:     "normal",
			label:    "@trace{ Add-It }",
			expected: "Add-It",
		},
		{
			name:     "mutator",
			label:    "Updates a pair. @trace{ set-car! }",
			expected: "set-car!",
		},
		{
			name:     "predicate",
			label:    "@trace { pair? }",
			expected: "pair?",
		},
		{
			name:     "spaces",
			label:    "@trace{Add  It}",
			expected: "Add_It",
		},
		{
			name:     "no label",
			label:    "@trace",
			expected: "",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			actual := cleanLabel(tc.label)
			assert.Equal(t, tc.expected, actual, "cleanLabel(%s)", tc.label)
		})
	}
}

func TestSkipFilters(t *testing.T) {
	traced := &lisp.Builtin{Name: "traced", Doc: "Does work. @trace"}
	plain := &lisp.Builtin{Name: "plain", Doc: "Does work."}
	frames := map[string]*lisp.CallFrame{
		"traced":  {Name: "traced", Kind: lisp.TagBuiltin, Builtin: traced},
		"plain":   {Name: "plain", Kind: lisp.TagBuiltin, Builtin: plain},
		"closure": {Name: "f", Kind: lisp.TagClosure},
		"special": {Name: "when", Kind: lisp.TagSpecialClosure},
		"invalid": {Name: "", Kind: lisp.TagNumber},
	}

	assert.True(t, defaultSkipFilter(frames["invalid"]))
	assert.False(t, defaultSkipFilter(frames["plain"]))
	assert.False(t, defaultSkipFilter(frames["closure"]))

	assert.False(t, docSkipFilter(frames["traced"]))
	assert.True(t, docSkipFilter(frames["plain"]))
	assert.True(t, docSkipFilter(frames["closure"]))

	p := &profiler{enabled: true}
	p.applyConfigs(WithClosureFilter())
	assert.True(t, p.skipTrace(frames["plain"]))
	assert.False(t, p.skipTrace(frames["closure"]))
	assert.False(t, p.skipTrace(frames["special"]))
	p.enabled = false
	assert.True(t, p.skipTrace(frames["closure"]))
}

func TestPrettyFunName(t *testing.T) {
	p := &profiler{}
	label, name := p.prettyFunName(&lisp.CallFrame{Name: "", Kind: lisp.TagClosure})
	assert.Equal(t, "lambda", label)
	assert.Equal(t, "lambda", name)

	p.applyConfigs(WithDocLabeler())
	b := &lisp.Builtin{Name: "square", Doc: "@trace{Square It}"}
	label, name = p.prettyFunName(&lisp.CallFrame{Name: "sq", Kind: lisp.TagBuiltin, Builtin: b})
	assert.Equal(t, "Square_It", label)
	assert.Equal(t, "sq", name)

	label, _ = p.prettyFunName(&lisp.CallFrame{Name: "f", Kind: lisp.TagClosure})
	assert.Equal(t, "f", label)

	label, name = p.prettyFunName(&lisp.CallFrame{Kind: lisp.TagNumber})
	assert.Empty(t, label)
	assert.Empty(t, name)
}
