// Copyright © 2026 The LISPE authors

package lisp

import "github.com/sirupsen/logrus"

// ArenaStats describes the occupancy of one arena.
type ArenaStats struct {
	Capacity int
	Live     int
	Free     int
	// Freed is the number of slots reclaimed by the last collection.  It is
	// zero in a HeapStats snapshot.
	Freed int
	// Allocs counts every allocation since the interpreter was created.
	Allocs uint64
}

// HeapStats is a snapshot of every arena.
type HeapStats struct {
	Cells   ArenaStats
	Numbers ArenaStats
	Symbols ArenaStats
}

// GCStats reports the outcome of one collection.
type GCStats struct {
	Cycle   int
	Trigger string
	HeapStats
}

// Collect runs a full collection and returns its statistics.
func (in *Interpreter) Collect() GCStats {
	return in.collect("explicit")
}

// LastGC returns the statistics of the most recent collection.
func (in *Interpreter) LastGC() GCStats { return in.lastGC }

func (in *Interpreter) collect(trigger string) GCStats {
	in.markRoots()

	stats := GCStats{Trigger: trigger}
	in.gcCycles++
	stats.Cycle = in.gcCycles

	stats.Cells.Live, stats.Cells.Freed = in.cells.Sweep(nil)
	stats.Numbers.Live, stats.Numbers.Freed = in.numbers.Sweep(nil)
	stats.Symbols.Live, stats.Symbols.Freed = in.symbols.sweep()

	stats.Cells.Capacity, stats.Cells.Free = in.cells.Cap(), in.cells.Free()
	stats.Numbers.Capacity, stats.Numbers.Free = in.numbers.Cap(), in.numbers.Free()
	stats.Symbols.Capacity, stats.Symbols.Free = in.symbols.nodes.Cap(), in.symbols.nodes.Free()
	stats.Cells.Allocs = in.cells.Allocs()
	stats.Numbers.Allocs = in.numbers.Allocs()
	stats.Symbols.Allocs = in.symbols.nodes.Allocs()
	in.lastGC = stats

	in.Log.WithFields(logrus.Fields{
		"cycle":         stats.Cycle,
		"trigger":       trigger,
		"cells_live":    stats.Cells.Live,
		"cells_freed":   stats.Cells.Freed,
		"numbers_live":  stats.Numbers.Live,
		"numbers_freed": stats.Numbers.Freed,
		"symbols_live":  stats.Symbols.Live,
		"symbols_freed": stats.Symbols.Freed,
	}).Debug("gc")
	if in.gcHook != nil {
		in.gcHook(stats)
	}
	return stats
}

func (in *Interpreter) markRoots() {
	in.mark(in.hidden)
	in.mark(in.global)
	r := &in.reg
	for _, v := range [...]Value{r.env, r.expr, r.val, r.proc, r.args, r.unev, r.consCar, r.consCdr} {
		in.mark(v)
	}
	for _, v := range in.protect {
		in.mark(v)
	}
}

// mark recurses on car and iterates on cdr.  Cells already marked stop the
// walk, so shared and cyclic structure is visited once.
func (in *Interpreter) mark(v Value) {
	for {
		switch v.tag {
		case TagNumber:
			in.numbers.Mark(v.Index())
			return
		case TagSymbol:
			in.symbols.nodes.Mark(v.Index())
			return
		case TagPair, TagClosure, TagSpecialClosure:
			if !in.cells.Mark(v.Index()) {
				return
			}
			c := in.cells.Get(v.Index())
			in.mark(c.Car)
			v = c.Cdr
		default:
			return
		}
	}
}
