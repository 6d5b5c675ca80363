// Copyright © 2026 The LISPE authors

package arena

// Bitmap is a fixed-size set of bits.
type Bitmap []uint64

// NewBitmap returns a bitmap able to hold n bits.
func NewBitmap(n int) Bitmap {
	return make(Bitmap, (n+63)/64)
}

func (b Bitmap) Test(i int) bool { return b[i>>6]&(1<<(uint(i)&63)) != 0 }

func (b Bitmap) Set(i int) { b[i>>6] |= 1 << (uint(i) & 63) }

func (b Bitmap) Clear(i int) { b[i>>6] &^= 1 << (uint(i) & 63) }

// TestAndSet sets bit i and reports whether it was clear before.
func (b Bitmap) TestAndSet(i int) bool {
	w, m := i>>6, uint64(1)<<(uint(i)&63)
	if b[w]&m != 0 {
		return false
	}
	b[w] |= m
	return true
}

// Reset clears every bit.
func (b Bitmap) Reset() {
	for i := range b {
		b[i] = 0
	}
}

// Count returns the number of set bits.
func (b Bitmap) Count() int {
	n := 0
	for _, w := range b {
		for ; w != 0; w &= w - 1 {
			n++
		}
	}
	return n
}
