package errors

import (
	"fmt"
	"runtime"
	"strings"
)

// ThrowSite is best-effort source metadata captured at the raise point:
// file, line, and the enclosing function. Function may be empty when the
// runtime cannot resolve a name for the program counter; capture never
// fails the raise over it.
type ThrowSite struct {
	File     string
	Line     int
	Function string
	stack    *Stack
}

// captureThrowSite records the raise frame, along with the full
// program-counter stack for reportable output. skip zero identifies the
// caller of captureThrowSite itself. Returns nil when the requested frame
// does not exist.
func captureThrowSite(skip int) *ThrowSite {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return nil
	}
	site := &ThrowSite{File: file, Line: line, stack: Callers(skip + 2)}
	if fn := runtime.FuncForPC(pc); fn != nil {
		name := fn.Name()
		// Trim the import-path prefix; package.Func reads better in a
		// one-line header than a full path.
		if idx := strings.LastIndex(name, "/"); idx != -1 {
			name = name[idx+1:]
		}
		site.Function = name
	}
	return site
}

// String renders the site as a single header line. A nil or empty site
// renders as the fixed unknown-location line.
func (ts *ThrowSite) String() string {
	if ts == nil || ts.File == "" {
		return "Thrown at unknown location"
	}
	if ts.Function == "" {
		return fmt.Sprintf("Thrown at %s:%d", ts.File, ts.Line)
	}
	return fmt.Sprintf("Thrown at %s:%d in %s", ts.File, ts.Line, ts.Function)
}

// Stack returns the program-counter stack recorded at the raise point, or
// nil when no stack was captured.
func (ts *ThrowSite) Stack() *Stack {
	if ts == nil {
		return nil
	}
	return ts.stack
}
