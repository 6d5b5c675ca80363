// Copyright © 2026 The LISPE authors

package lisp

// Values held only in Go variables are invisible to the collector.  Any such
// value that must survive an allocating call is pushed on the protection
// stack first.

// Push protects v and returns it.
func (in *Interpreter) Push(v Value) Value {
	in.protect = append(in.protect, v)
	return v
}

// Pop removes the most recently protected value.
func (in *Interpreter) Pop() {
	in.PopN(1)
}

// PopN removes the n most recently protected values.
func (in *Interpreter) PopN(n int) {
	if n > len(in.protect) {
		panic("protection stack underflow")
	}
	in.protect = in.protect[:len(in.protect)-n]
}

// ProtectDepth returns the height of the protection stack.
func (in *Interpreter) ProtectDepth() int { return len(in.protect) }

// Guard is a scope on the protection stack.  Release restores the stack to
// its height when the Guard was created, discarding everything pushed since.
//
//	g := in.Protect(a, b)
//	defer g.Release()
type Guard struct {
	in     *Interpreter
	height int
}

// Protect pushes vals and returns a Guard scoped to them.
func (in *Interpreter) Protect(vals ...Value) Guard {
	g := Guard{in: in, height: len(in.protect)}
	in.protect = append(in.protect, vals...)
	return g
}

// Set replaces the i-th value protected by g.
func (g Guard) Set(i int, v Value) {
	g.in.protect[g.height+i] = v
}

// Push protects one more value within the scope of g.
func (g Guard) Push(v Value) Value {
	return g.in.Push(v)
}

// Release pops every value pushed since g was created.
func (g Guard) Release() {
	if g.height < len(g.in.protect) {
		g.in.protect = g.in.protect[:g.height]
	}
}
