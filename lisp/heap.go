// Copyright © 2026 The LISPE authors

package lisp

import "github.com/luthersystems/lispe/lisp/internal/arena"

type allocator interface {
	Alloc() (int, bool)
}

// alloc takes a slot from a, collecting once if a is exhausted.  A second
// failure is fatal.
func (in *Interpreter) alloc(a allocator, what string) (int, error) {
	if i, ok := a.Alloc(); ok {
		return i, nil
	}
	in.collect("out of " + what)
	if i, ok := a.Alloc(); ok {
		return i, nil
	}
	in.Log.WithField("arena", what).Error("arena exhausted after collection")
	return 0, Errorf(CondResource, "out of %s", what)
}

// Cons allocates a pair.  The arguments are kept reachable while the
// allocation runs.
func (in *Interpreter) Cons(car, cdr Value) (Value, error) {
	in.reg.consCar, in.reg.consCdr = car, cdr
	i, err := in.alloc(in.cells, "cells")
	in.reg.consCar, in.reg.consCdr = Nil, Nil
	if err != nil {
		return Nil, err
	}
	in.cells.Set(i, Cell{Car: car, Cdr: cdr})
	return makeValue(TagPair, i), nil
}

// cell returns the payload of a value addressing the cell arena.
func (in *Interpreter) cell(v Value) Cell {
	return in.cells.Get(v.Index())
}

func (in *Interpreter) car(v Value) Value { return in.cells.Get(v.Index()).Car }
func (in *Interpreter) cdr(v Value) Value { return in.cells.Get(v.Index()).Cdr }

// Car returns the first element of a pair.
func (in *Interpreter) Car(v Value) (Value, error) {
	if !v.IsPair() {
		return Nil, typeErrorf("car of non-pair: %s", in.String(v))
	}
	return in.car(v), nil
}

// Cdr returns the rest of a pair.
func (in *Interpreter) Cdr(v Value) (Value, error) {
	if !v.IsPair() {
		return Nil, typeErrorf("cdr of non-pair: %s", in.String(v))
	}
	return in.cdr(v), nil
}

// SetCar replaces the first element of a pair.
func (in *Interpreter) SetCar(v, x Value) error {
	if !v.IsPair() {
		return typeErrorf("set-car! of non-pair: %s", in.String(v))
	}
	c := in.cell(v)
	c.Car = x
	in.cells.Set(v.Index(), c)
	return nil
}

// SetCdr replaces the rest of a pair.
func (in *Interpreter) SetCdr(v, x Value) error {
	if !v.IsPair() {
		return typeErrorf("set-cdr! of non-pair: %s", in.String(v))
	}
	c := in.cell(v)
	c.Cdr = x
	in.cells.Set(v.Index(), c)
	return nil
}

func (in *Interpreter) setCdr(v, x Value) {
	c := in.cell(v)
	c.Cdr = x
	in.cells.Set(v.Index(), c)
}

// MakeNumber boxes n in the number arena.
func (in *Interpreter) MakeNumber(n Number) (Value, error) {
	i, err := in.alloc(in.numbers, "numbers")
	if err != nil {
		return Nil, err
	}
	in.numbers.Set(i, n)
	return makeValue(TagNumber, i), nil
}

// MakeReal returns a boxed real number.
func (in *Interpreter) MakeReal(x float64) (Value, error) {
	return in.MakeNumber(BuildReal(x))
}

// MakeComplex returns a boxed complex number.
func (in *Interpreter) MakeComplex(re, im float64) (Value, error) {
	return in.MakeNumber(BuildComplex(re, im))
}

// NumberOf returns the payload of a number value.
func (in *Interpreter) NumberOf(v Value) (Number, error) {
	if !v.IsNumber() {
		return Number{}, typeErrorf("not a number: %s", in.String(v))
	}
	return in.numbers.Get(v.Index()), nil
}

// SymbolName returns the name of a symbol value.
func (in *Interpreter) SymbolName(v Value) (string, error) {
	if !v.IsSymbol() {
		return "", typeErrorf("not a symbol: %s", in.String(v))
	}
	return in.symbols.name(v.Index()), nil
}

// makeClosure wraps (params . body) and env in a procedure of the given kind.
func (in *Interpreter) makeClosure(kind Tag, lambda, env Value) (Value, error) {
	c, err := in.Cons(lambda, env)
	if err != nil {
		return Nil, err
	}
	return makeValue(kind, c.Index()), nil
}

// List builds a proper list of vals.
func (in *Interpreter) List(vals ...Value) (Value, error) {
	g := in.Protect(vals...)
	defer g.Release()
	list := Nil
	for i := len(vals) - 1; i >= 0; i-- {
		var err error
		list, err = in.Cons(vals[i], list)
		if err != nil {
			return Nil, err
		}
		g.Push(list)
	}
	return list, nil
}

// listLength returns the number of elements of a proper list.  It reports
// false for improper and cyclic lists.  No proper list has more pairs than
// the cell arena holds.
func (in *Interpreter) listLength(v Value) (int, bool) {
	n, limit := 0, in.cells.Cap()
	for ; v.IsPair(); v = in.cdr(v) {
		if n >= limit {
			return n, false
		}
		n++
	}
	return n, v.IsNil()
}

// listSlice copies the elements of a proper list.
func (in *Interpreter) listSlice(v Value) []Value {
	var vals []Value
	for ; v.IsPair(); v = in.cdr(v) {
		vals = append(vals, in.car(v))
	}
	return vals
}

// HeapStats returns the occupancy and allocation counts of each arena.
func (in *Interpreter) HeapStats() HeapStats {
	return HeapStats{
		Cells:   arenaStats(in.cells),
		Numbers: arenaStats(in.numbers),
		Symbols: arenaStats(in.symbols.nodes),
	}
}

func arenaStats[T any](a *arena.Arena[T]) ArenaStats {
	return ArenaStats{Capacity: a.Cap(), Live: a.Live(), Free: a.Free(), Allocs: a.Allocs()}
}
