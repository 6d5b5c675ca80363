// Copyright © 2026 The LISPE authors

package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func conserved(t *testing.T, a *Arena[int]) {
	t.Helper()
	assert.Equal(t, a.Cap(), a.Free()+a.Live())
}

func TestArenaAllocExhaust(t *testing.T) {
	a := New[int](3)
	conserved(t, a)
	for want := 0; want < 3; want++ {
		i, ok := a.Alloc()
		require.True(t, ok)
		assert.Equal(t, want, i)
		assert.True(t, a.Allocated(i))
		conserved(t, a)
	}
	_, ok := a.Alloc()
	assert.False(t, ok)
	assert.Equal(t, 0, a.Free())
	assert.Equal(t, 3, a.Live())
	// Failed allocations are not counted.
	assert.Equal(t, uint64(3), a.Allocs())
}

func TestArenaSweep(t *testing.T) {
	a := New[int](8)
	var idx []int
	for n := 0; n < 6; n++ {
		i, ok := a.Alloc()
		require.True(t, ok)
		a.Set(i, 100+n)
		idx = append(idx, i)
	}
	assert.True(t, a.Mark(idx[1]))
	assert.False(t, a.Mark(idx[1]), "second mark reports already marked")
	assert.True(t, a.Mark(idx[4]))
	assert.False(t, a.Mark(7), "free slots cannot be marked")

	var released []int
	live, freed := a.Sweep(func(i int, v int) { released = append(released, v) })
	assert.Equal(t, 2, live)
	assert.Equal(t, 4, freed)
	assert.ElementsMatch(t, []int{100, 102, 103, 105}, released)
	conserved(t, a)
	assert.Equal(t, 101, a.Get(idx[1]))
	assert.Equal(t, 0, a.Get(idx[0]))
	assert.False(t, a.Marked(idx[1]), "marks cleared after sweep")

	// Nothing is marked now, so a second sweep frees the survivors.
	live, freed = a.Sweep(nil)
	assert.Equal(t, 0, live)
	assert.Equal(t, 2, freed)
	assert.Equal(t, 8, a.Free())
	conserved(t, a)
}

func TestArenaReuseAfterSweep(t *testing.T) {
	a := New[string](2)
	i, _ := a.Alloc()
	j, _ := a.Alloc()
	a.Mark(j)
	a.Sweep(nil)
	k, ok := a.Alloc()
	require.True(t, ok)
	assert.Equal(t, i, k)
	_, ok = a.Alloc()
	assert.False(t, ok)
}

func TestBitmap(t *testing.T) {
	b := NewBitmap(130)
	assert.Len(t, b, 3)
	b.Set(0)
	b.Set(64)
	b.Set(129)
	assert.True(t, b.Test(64))
	assert.Equal(t, 3, b.Count())
	b.Clear(64)
	assert.False(t, b.Test(64))
	assert.True(t, b.TestAndSet(64))
	assert.False(t, b.TestAndSet(64))
	b.Reset()
	assert.Equal(t, 0, b.Count())
}
