// Copyright © 2026 The LISPE authors

package lisp

import (
	"fmt"
	"io"
)

// CallStack records the procedure applications in progress.  Tail calls do
// not push frames; they are counted in TailCalls instead.
type CallStack struct {
	Frames []CallFrame
	// MaxHeight bounds len(Frames).  Zero means unbounded.
	MaxHeight int
	// Peak is the greatest height observed since the last Reset.
	Peak int
	// TailCalls counts trampoline iterations since the last Reset.
	TailCalls int
}

// CallFrame is one frame in the CallStack
type CallFrame struct {
	Name string
	Kind Tag
	// Builtin is the table entry of a builtin or special form application.
	Builtin *Builtin
}

// FunName returns the name of the procedure in f.
func (f *CallFrame) FunName() string {
	if f == nil {
		return ""
	}
	return f.Name
}

func (f *CallFrame) String() string {
	switch f.Kind {
	case TagBuiltin, TagSpecial:
		return fmt.Sprintf("%s [%s]", f.Name, f.Kind)
	}
	return f.Name
}

// Push adds a frame.  It fails with a stack-overflow error when the stack is
// full.
func (s *CallStack) Push(name string, kind Tag) error {
	if s.MaxHeight > 0 && len(s.Frames) >= s.MaxHeight {
		return Errorf(CondStackOverflow, "stack height exceeded maximum: %d", len(s.Frames)+1)
	}
	s.Frames = append(s.Frames, CallFrame{Name: name, Kind: kind})
	if len(s.Frames) > s.Peak {
		s.Peak = len(s.Frames)
	}
	return nil
}

// Pop removes the top CallFrame from the stack and returns it.
func (s *CallStack) Pop() CallFrame {
	if len(s.Frames) < 1 {
		panic("pop called on an empty stack")
	}
	f := s.Frames[len(s.Frames)-1]
	s.Frames[len(s.Frames)-1] = CallFrame{}
	s.Frames = s.Frames[:len(s.Frames)-1]
	return f
}

// Top returns the CallFrame at the top of the stack or nil if none exists.
func (s *CallStack) Top() *CallFrame {
	if s == nil || len(s.Frames) == 0 {
		return nil
	}
	return &s.Frames[len(s.Frames)-1]
}

// Height returns the number of frames.
func (s *CallStack) Height() int { return len(s.Frames) }

// Reset discards all frames and counters but keeps MaxHeight.
func (s *CallStack) Reset() {
	s.Frames = s.Frames[:0]
	s.Peak = 0
	s.TailCalls = 0
}

// Copy creates a copy of the current stack so that it can be attached to a
// runtime error.
func (s *CallStack) Copy() *CallStack {
	frames := make([]CallFrame, len(s.Frames))
	copy(frames, s.Frames)
	return &CallStack{
		Frames:    frames,
		MaxHeight: s.MaxHeight,
		Peak:      s.Peak,
		TailCalls: s.TailCalls,
	}
}

// DebugPrint prints s
func (s *CallStack) DebugPrint(w io.Writer) (int, error) {
	n, err := fmt.Fprintf(w, "Stack Trace [%d frames -- entrypoint last]:\n", len(s.Frames))
	if err != nil {
		return n, err
	}
	for i := len(s.Frames) - 1; i >= 0; i-- {
		_n, err := fmt.Fprintf(w, "  height %d: %s\n", i, s.Frames[i].String())
		n += _n
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
