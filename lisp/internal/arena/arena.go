// Copyright © 2026 The LISPE authors

// Package arena implements fixed-capacity typed slot pools with an embedded
// free list and the mark bits used by a mark-sweep collector.  Callers only
// ever hold integer slot indices; slot contents are copied in and out so no
// reference into the backing storage escapes the package.
package arena

const none = -1

// Arena is a fixed-capacity pool of T.  The free list is threaded through the
// next array.  Two bitmaps track which slots are allocated and which were
// reached during the current mark phase.
type Arena[T any] struct {
	slots []T
	next  []int32
	head  int32
	nfree int
	inuse Bitmap
	marks Bitmap
	// allocs counts successful calls to Alloc.
	allocs uint64
}

// New returns an arena holding capacity slots, all of them free.
func New[T any](capacity int) *Arena[T] {
	if capacity < 0 {
		capacity = 0
	}
	a := &Arena[T]{
		slots: make([]T, capacity),
		next:  make([]int32, capacity),
		inuse: NewBitmap(capacity),
		marks: NewBitmap(capacity),
		nfree: capacity,
		head:  none,
	}
	// Thread the list so that slot 0 is handed out first.
	for i := capacity - 1; i >= 0; i-- {
		a.next[i] = a.head
		a.head = int32(i)
	}
	return a
}

// Cap returns the total number of slots.
func (a *Arena[T]) Cap() int { return len(a.slots) }

// Free returns the number of slots on the free list.
func (a *Arena[T]) Free() int { return a.nfree }

// Live returns the number of allocated slots.
func (a *Arena[T]) Live() int { return len(a.slots) - a.nfree }

// Alloc pops the head of the free list.  It reports false when the arena is
// exhausted.
func (a *Arena[T]) Alloc() (int, bool) {
	if a.head == none {
		return 0, false
	}
	i := a.head
	a.head = a.next[i]
	a.next[i] = none
	a.nfree--
	a.inuse.Set(int(i))
	a.allocs++
	return int(i), true
}

// Allocs returns the number of allocations made over the arena's lifetime.
func (a *Arena[T]) Allocs() uint64 { return a.allocs }

// Get returns a copy of slot i.
func (a *Arena[T]) Get(i int) T { return a.slots[i] }

// Set overwrites slot i.
func (a *Arena[T]) Set(i int, v T) { a.slots[i] = v }

// Allocated reports whether slot i is currently handed out.
func (a *Arena[T]) Allocated(i int) bool {
	return i >= 0 && i < len(a.slots) && a.inuse.Test(i)
}

// Mark sets the mark bit of slot i and reports whether it was previously
// clear.  Marking a free slot is a no-op that returns false.
func (a *Arena[T]) Mark(i int) bool {
	if !a.Allocated(i) {
		return false
	}
	return a.marks.TestAndSet(i)
}

// Marked reports whether slot i carries a mark.
func (a *Arena[T]) Marked(i int) bool { return a.marks.Test(i) }

// Sweep returns every allocated but unmarked slot to the free list and
// clears all marks.  Release, when non-nil, observes each slot before it is
// zeroed.
func (a *Arena[T]) Sweep(release func(i int, v T)) (live, freed int) {
	var zero T
	for i := range a.slots {
		if !a.inuse.Test(i) {
			continue
		}
		if a.marks.Test(i) {
			live++
			continue
		}
		if release != nil {
			release(i, a.slots[i])
		}
		a.slots[i] = zero
		a.inuse.Clear(i)
		a.next[i] = a.head
		a.head = int32(i)
		a.nfree++
		freed++
	}
	a.marks.Reset()
	return live, freed
}
