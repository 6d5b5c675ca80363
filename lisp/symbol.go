// Copyright © 2026 The LISPE authors

package lisp

import "github.com/luthersystems/lispe/lisp/internal/arena"

const symbolsPerBucket = 8

var bucketPrimes = []int{
	53, 97, 193, 389, 769,
	1543, 3079, 6151, 12289, 24593,
	49157, 98387, 196613, 393241, 786433,
	1572869, 3145739, 6291469, 12582917, 25165843,
	50331653, 100663319, 201326611, 402653189, 805306457,
	1610612741,
}

// bucketCount picks the prime giving an average chain length closest to
// symbolsPerBucket.
func bucketCount(capacity int) int {
	best, bestDist := bucketPrimes[0], -1
	for _, p := range bucketPrimes {
		d := capacity/p - symbolsPerBucket
		if d < 0 {
			d = -d
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = p, d
		}
	}
	return best
}

type symbolNode struct {
	next int32
	name string
}

// symbolTable interns symbol names in an arena indexed by a chained hash
// table.
type symbolTable struct {
	nodes   *arena.Arena[symbolNode]
	buckets []int32
}

func newSymbolTable(capacity int) *symbolTable {
	t := &symbolTable{
		nodes:   arena.New[symbolNode](capacity),
		buckets: make([]int32, bucketCount(capacity)),
	}
	for i := range t.buckets {
		t.buckets[i] = -1
	}
	return t
}

func symbolHash(name string) uint32 {
	var h uint32
	for i := 0; i < len(name); i++ {
		h = 31*h + uint32(name[i])
	}
	return h
}

func (t *symbolTable) bucket(name string) int {
	return int(symbolHash(name) % uint32(len(t.buckets)))
}

func (t *symbolTable) find(name string) (int, bool) {
	for i := t.buckets[t.bucket(name)]; i >= 0; {
		n := t.nodes.Get(int(i))
		if n.name == name {
			return int(i), true
		}
		i = n.next
	}
	return 0, false
}

// insert links the allocated slot i into the chain for name.
func (t *symbolTable) insert(i int, name string) {
	b := t.bucket(name)
	t.nodes.Set(i, symbolNode{next: t.buckets[b], name: name})
	t.buckets[b] = int32(i)
}

func (t *symbolTable) name(i int) string { return t.nodes.Get(i).name }

// sweep unlinks unmarked symbols from their chains and returns their slots
// to the free list.
func (t *symbolTable) sweep() (live, freed int) {
	for b := range t.buckets {
		prev := int32(-1)
		for i := t.buckets[b]; i >= 0; {
			n := t.nodes.Get(int(i))
			if !t.nodes.Marked(int(i)) {
				if prev < 0 {
					t.buckets[b] = n.next
				} else {
					p := t.nodes.Get(int(prev))
					p.next = n.next
					t.nodes.Set(int(prev), p)
				}
			} else {
				prev = i
			}
			i = n.next
		}
	}
	return t.nodes.Sweep(nil)
}

// MakeSymbol returns the interned symbol for name.  Identical names always
// produce identical values while the symbol remains reachable.
func (in *Interpreter) MakeSymbol(name string) (Value, error) {
	if i, ok := in.symbols.find(name); ok {
		return makeValue(TagSymbol, i), nil
	}
	i, err := in.alloc(in.symbols.nodes, "symbols")
	if err != nil {
		return Nil, err
	}
	in.symbols.insert(i, name)
	return makeValue(TagSymbol, i), nil
}
