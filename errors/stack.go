package errors

import (
	"bytes"
	"fmt"
	"runtime"
	"strconv"
)

// Callers captures the current program-counter stack, mirroring the
// capture in github.com/pkg/errors but with a customizable skip depth.
func Callers(skip int) *Stack {
	var st Stack = captureStacktrace(skip)

	return &st
}

func captureStacktrace(skip int) []uintptr {
	// Unlike other "skip"-based APIs, skip=0 identifies runtime.Callers
	// itself. +2 to skip captureStacktrace and runtime.Callers.
	selfSkip := 2
	numFrames := 64
	pcs := make([]uintptr, numFrames)
	numFrames = runtime.Callers(skip+selfSkip, pcs)
	// runtime.Callers truncates when the slice is too small; keep growing
	// storage until there are fewer frames than there is room.
	for numFrames == len(pcs) {
		pcs = make([]uintptr, len(pcs)*2)
		numFrames = runtime.Callers(skip+selfSkip, pcs)
	}
	return pcs[:numFrames]
}

// Stack is a stack of program counters, recorded at the throw site. This
// mirrors the (non-exported) type of the same name in github.com/pkg/errors.
type Stack []uintptr

// Format implements fmt.Formatter for %+v.
func (s *Stack) Format(st fmt.State, verb rune) {
	switch verb {
	case 'v':
		_, _ = fmt.Fprintf(st, "\n%+v", s.StackTrace().String())
	}
}

// StackTrace resolves the recorded counters into frames.
func (s *Stack) StackTrace() *StackTrace {
	pcs := []uintptr(*s)

	return (*StackTrace)(runtime.CallersFrames(pcs))
}

// StackTrace is a stack of frames from innermost (newest) to outermost
// (oldest).
type StackTrace runtime.Frames

// Next returns the next frame in the trace, and a boolean indicating
// whether there are more after it.
func (st *StackTrace) Next() (_ runtime.Frame, more bool) {
	return (*runtime.Frames)(st).Next()
}

func (st *StackTrace) String() string {
	buffer := bytes.Buffer{}
	defer buffer.Reset()

	stackFmt := stackTraceFormatter{b: &buffer}
	stackFmt.FormatStack(st)
	return buffer.String()
}

// stackTraceFormatter renders a stack trace as readable text.
type stackTraceFormatter struct {
	b        *bytes.Buffer
	nonEmpty bool // whether we've written at least one frame already
}

// FormatStack formats all remaining frames in the provided stacktrace,
// minus the final runtime.main/runtime.goexit frame.
func (sf *stackTraceFormatter) FormatStack(stack *StackTrace) {
	// Note: on the last iteration, frames.Next() returns false with a
	// valid frame, and we ignore that frame. It is only ever runtime.main
	// or runtime.goexit, which adds noise.
	for frame, more := stack.Next(); more; frame, more = stack.Next() {
		sf.FormatFrame(frame)
	}
}

var detailSep = []byte("\n  | ")

// FormatFrame formats the given frame.
func (sf *stackTraceFormatter) FormatFrame(frame runtime.Frame) {
	if sf.nonEmpty {
		sf.b.WriteRune('\n')
	}
	sf.nonEmpty = true
	sf.b.WriteString(frame.Function)
	sf.b.WriteRune('\n')
	sf.b.WriteRune('\t')
	sf.b.WriteString(frame.File)
	sf.b.WriteRune(':')
	sf.b.WriteString(strconv.Itoa(frame.Line))
}
