// Copyright © 2026 The LISPE authors

package lisp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		text string
		num  Number
	}{
		{"0", BuildReal(0)},
		{"-12", BuildReal(-12)},
		{".5", BuildReal(0.5)},
		{"1e3", BuildReal(1000)},
		{"2+3i", BuildComplex(2, 3)},
		{"3i", BuildComplex(0, 3)},
		{"-3i", BuildComplex(0, -3)},
		{"1.5-2i", BuildComplex(1.5, -2)},
		{"1e2+1e-2i", BuildComplex(100, 0.01)},
		{"-1e-2-1e+2i", BuildComplex(-0.01, -100)},
	}
	for _, test := range tests {
		n, err := ParseNumber(test.text)
		if assert.NoError(t, err, test.text) {
			assert.Equal(t, test.num, n, test.text)
		}
	}
	_, err := ParseNumber("1e999")
	assert.EqualError(t, err, `invalid number "1e999": value out of range`)
}

func TestNumberString(t *testing.T) {
	assert.Equal(t, "3", BuildReal(3).String())
	assert.Equal(t, "0.25", BuildReal(0.25).String())
	assert.Equal(t, "+Inf", BuildReal(math.Inf(1)).String())
	assert.Equal(t, "1+2i", BuildComplex(1, 2).String())
	assert.Equal(t, "1-2i", BuildComplex(1, -2).String())
	assert.Equal(t, "-4+0i", BuildComplex(-4, 0).String())
}

func TestNumberPredicates(t *testing.T) {
	assert.True(t, BuildReal(2).IsInteger())
	assert.False(t, BuildReal(2.5).IsInteger())
	assert.False(t, BuildReal(math.Inf(1)).IsInteger())
	assert.False(t, BuildReal(math.NaN()).IsInteger())
	assert.True(t, BuildComplex(2, 0).IsInteger())
	assert.False(t, BuildComplex(2, 1).IsReal())
	assert.True(t, BuildReal(1<<52).IsExact())
	assert.False(t, BuildReal(1<<60).IsExact())
	assert.True(t, BuildReal(1).Eqv(BuildReal(1)))
	assert.False(t, BuildReal(1).Eqv(BuildComplex(1, 0)))
}

func TestApplyArith(t *testing.T) {
	tests := []struct {
		op     ArithOp
		a, b   Number
		result Number
	}{
		{OpAdd, BuildReal(1), BuildReal(2), BuildReal(3)},
		{OpSub, BuildReal(1), BuildReal(2), BuildReal(-1)},
		{OpMul, BuildReal(3), BuildReal(4), BuildReal(12)},
		{OpDiv, BuildReal(1), BuildReal(4), BuildReal(0.25)},
		{OpAdd, BuildReal(1), BuildComplex(2, 3), BuildComplex(3, 3)},
		{OpAdd, BuildComplex(2, 3), BuildReal(1), BuildComplex(3, 3)},
		{OpMul, BuildComplex(0, 2), BuildComplex(0, 2), BuildComplex(-4, 0)},
		{OpDiv, BuildReal(1), BuildReal(0), BuildReal(math.Inf(1))},
	}
	for i, test := range tests {
		n, err := ApplyArith(test.op, test.a, test.b)
		require.NoError(t, err, "test %d", i)
		assert.Equal(t, test.result, n, "test %d", i)
	}
	_, err := ApplyArith(arithOps, BuildReal(1), BuildReal(1))
	assert.Error(t, err)
}

func TestApplyLogic(t *testing.T) {
	ok, err := ApplyLogic(OpEqual, BuildReal(1), BuildComplex(1, 0))
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = ApplyLogic(OpLess, BuildReal(1), BuildComplex(2, 0))
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = ApplyLogic(OpGreaterEqual, BuildReal(2), BuildReal(2))
	require.NoError(t, err)
	assert.True(t, ok)
	_, err = ApplyLogic(OpLess, BuildReal(1), BuildComplex(0, 2))
	assert.Equal(t, CondDomain, ErrorCondition(err))
}
