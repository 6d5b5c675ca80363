// Copyright © 2026 The LISPE authors

package lisp

import (
	"bytes"
	"io"
)

// String returns the printed representation of v.
func (in *Interpreter) String(v Value) string {
	var buf bytes.Buffer
	p := printer{in: in, buf: &buf, budget: in.cells.Cap()}
	p.print(v)
	return buf.String()
}

// Fprint writes the printed representation of v to w.
func (in *Interpreter) Fprint(w io.Writer, v Value) error {
	_, err := io.WriteString(w, in.String(v))
	return err
}

// printer limits the number of cells it visits so that cyclic structure
// still prints in bounded space.
type printer struct {
	in     *Interpreter
	buf    *bytes.Buffer
	budget int
}

func (p *printer) print(v Value) {
	in := p.in
	switch v.tag {
	case TagNil:
		p.buf.WriteString("()")
	case TagTrue:
		p.buf.WriteString("#t")
	case TagFalse:
		p.buf.WriteString("#f")
	case TagNumber:
		p.buf.WriteString(in.numbers.Get(v.Index()).String())
	case TagSymbol:
		p.buf.WriteString(in.symbols.name(v.Index()))
	case TagBuiltin:
		p.buf.WriteString("#<builtin ")
		p.buf.WriteString(in.builtins[v.Index()].Name)
		p.buf.WriteString(">")
	case TagSpecial:
		p.buf.WriteString("#<special ")
		p.buf.WriteString(in.builtins[v.Index()].Name)
		p.buf.WriteString(">")
	case TagClosure, TagSpecialClosure:
		if v.tag == TagClosure {
			p.buf.WriteString("#<lambda ")
		} else {
			p.buf.WriteString("#<special-closure ")
		}
		p.print(in.car(in.car(v)))
		p.buf.WriteString(">")
	case TagPair:
		p.printList(v)
	default:
		p.buf.WriteString("#<invalid>")
	}
}

func (p *printer) printList(v Value) {
	in := p.in
	p.buf.WriteString("(")
	for first := true; ; first = false {
		if p.budget <= 0 {
			p.buf.WriteString(" ...)")
			return
		}
		p.budget--
		if !first {
			p.buf.WriteString(" ")
		}
		p.print(in.car(v))
		v = in.cdr(v)
		switch {
		case v.IsPair():
			continue
		case v.IsNil():
		default:
			p.buf.WriteString(" . ")
			p.print(v)
		}
		p.buf.WriteString(")")
		return
	}
}

// Equal reports whether a and b are structurally equal.  Numbers compare by
// value after coercion, so 1 and 1+0i are equal.  Comparing distinct cyclic
// structures is a type-error.
func (in *Interpreter) Equal(a, b Value) (bool, error) {
	budget := in.cells.Cap()
	return in.equal(a, b, &budget)
}

func (in *Interpreter) equal(a, b Value, budget *int) (bool, error) {
	for {
		if a == b {
			return true, nil
		}
		if a.tag != b.tag {
			return false, nil
		}
		switch a.tag {
		case TagNumber:
			eq, err := ApplyLogic(OpEqual, in.numbers.Get(a.Index()), in.numbers.Get(b.Index()))
			return err == nil && eq, nil
		case TagPair:
			if *budget <= 0 {
				return false, typeErrorf("cannot compare cyclic structure")
			}
			*budget--
			eq, err := in.equal(in.car(a), in.car(b), budget)
			if err != nil || !eq {
				return false, err
			}
			a, b = in.cdr(a), in.cdr(b)
		default:
			return false, nil
		}
	}
}

// Eqv is Eq extended to numbers of identical representation and value.
func (in *Interpreter) Eqv(a, b Value) bool {
	if a == b {
		return true
	}
	if a.IsNumber() && b.IsNumber() {
		return in.numbers.Get(a.Index()).Eqv(in.numbers.Get(b.Index()))
	}
	return false
}
