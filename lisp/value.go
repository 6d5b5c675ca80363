// Copyright © 2026 The LISPE authors

package lisp

import "math"

// Tag identifies the kind of a Value.
type Tag uint8

// Possible Tag values.  TagNil is zero so that the zero Value is nil.
const (
	TagNil Tag = iota
	TagTrue
	TagFalse
	TagPair
	TagSymbol
	TagNumber
	TagBuiltin
	TagSpecial
	TagClosure
	TagSpecialClosure
)

var tagStrings = []string{
	TagNil:            "nil",
	TagTrue:           "boolean",
	TagFalse:          "boolean",
	TagPair:           "pair",
	TagSymbol:         "symbol",
	TagNumber:         "number",
	TagBuiltin:        "builtin",
	TagSpecial:        "special-form",
	TagClosure:        "procedure",
	TagSpecialClosure: "special-procedure",
}

func (t Tag) String() string {
	if int(t) < len(tagStrings) {
		return tagStrings[t]
	}
	return "invalid"
}

// MaxArenaCapacity is the largest number of slots any arena may hold.  Every
// slot index must fit in a Value.
const MaxArenaCapacity = math.MaxInt32

// Value is a tagged reference into interpreter storage.  Values are small,
// copyable and compared with ==, which is the language's eq? relation.
//
// The index of a pair, closure or special closure addresses the cell arena.
// Numbers and symbols address their own arenas and builtins address the
// interpreter's builtin table.
type Value struct {
	tag   Tag
	index uint32
}

// The constant values.
var (
	Nil   = Value{}
	True  = Value{tag: TagTrue}
	False = Value{tag: TagFalse}
)

// Bool returns True or False.
func Bool(b bool) Value {
	if b {
		return True
	}
	return False
}

func makeValue(t Tag, i int) Value {
	return Value{tag: t, index: uint32(i)}
}

// Tag returns the kind of v.
func (v Value) Tag() Tag { return v.tag }

// Index returns the storage index of v.  It is meaningless for nil and the
// booleans.
func (v Value) Index() int { return int(v.index) }

func (v Value) IsNil() bool    { return v.tag == TagNil }
func (v Value) IsPair() bool   { return v.tag == TagPair }
func (v Value) IsSymbol() bool { return v.tag == TagSymbol }
func (v Value) IsNumber() bool { return v.tag == TagNumber }

// IsTrue reports whether v counts as true in a conditional.  Only #f and the
// empty list are false.
func (v Value) IsTrue() bool {
	return v.tag != TagFalse && v.tag != TagNil
}

// IsProcedure reports whether v may appear in operator position.
func (v Value) IsProcedure() bool {
	switch v.tag {
	case TagBuiltin, TagSpecial, TagClosure, TagSpecialClosure:
		return true
	}
	return false
}

// isCellRef reports whether the index of v addresses the cell arena.
func (v Value) isCellRef() bool {
	switch v.tag {
	case TagPair, TagClosure, TagSpecialClosure:
		return true
	}
	return false
}

// Eq is identity comparison.
func Eq(a, b Value) bool { return a == b }

// Cell is the payload of a pair.  Closures reuse it with the parameter list
// and body in Car and the captured environment in Cdr.
type Cell struct {
	Car Value
	Cdr Value
}
