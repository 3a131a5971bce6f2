package lisp

import (
	"fmt"
	"io"
	"log"
)

// DefaultMaxStackHeight is the maximum call stack height of a Runtime that
// was not configured using WithMaximumStackHeight.
const DefaultMaxStackHeight = 10000

// CallStack is a function call stack.
type CallStack struct {
	Frames    []CallFrame
	MaxHeight int // zero means unlimited
}

// CallFrame is one frame in the CallStack
type CallFrame struct {
	Name    string
	Builtin bool
	NArg    int
}

// Copy creates a copy of the current stack so that it can be attach to a
// runtime error.
func (s *CallStack) Copy() *CallStack {
	if s == nil {
		return nil
	}
	frames := make([]CallFrame, len(s.Frames))
	copy(frames, s.Frames)
	return &CallStack{Frames: frames, MaxHeight: s.MaxHeight}
}

// Height returns the number of frames on the stack.
func (s *CallStack) Height() int {
	if s == nil {
		return 0
	}
	return len(s.Frames)
}

// Top returns the CallFrame at the top of the stack or nil if none exists.
func (s *CallStack) Top() *CallFrame {
	if s == nil || len(s.Frames) == 0 {
		return nil
	}
	return &s.Frames[len(s.Frames)-1]
}

// Push pushes a new frame onto s.  Push returns a StackOverflow error if the
// push would exceed s.MaxHeight.
func (s *CallStack) Push(f CallFrame) error {
	if s.MaxHeight > 0 && len(s.Frames) >= s.MaxHeight {
		return Errorf(StackOverflow, "maximum stack height exceeded: %d (calling %s)", s.MaxHeight, f.Name)
	}
	s.Frames = append(s.Frames, f)
	return nil
}

// Pop removes the top CallFrame from the stack and returns it.
func (s *CallStack) Pop() CallFrame {
	if len(s.Frames) < 1 {
		log.Panicf("pop called on an empty stack")
	}
	f := s.Frames[len(s.Frames)-1]
	s.Frames[len(s.Frames)-1] = CallFrame{}
	s.Frames = s.Frames[:len(s.Frames)-1]
	return f
}

// DebugPrint prints s
func (s *CallStack) DebugPrint(w io.Writer) (int, error) {
	n, err := fmt.Fprintf(w, "Stack Trace [%d frames -- entrypoint last]:\n", s.Height())
	if err != nil {
		return n, err
	}
	indent := "  "
	for i := s.Height() - 1; i >= 0; i-- {
		f := s.Frames[i]
		mod := ""
		if f.Builtin {
			mod = " [builtin]"
		}
		_n, err := fmt.Fprintf(w, "%sheight %d: %s (%d args)%s\n", indent, i, f.Name, f.NArg, mod)
		n += _n
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
